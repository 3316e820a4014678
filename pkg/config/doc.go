// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the agent configuration.
//
// Configuration is read from an optional YAML file. ${VAR} references in the
// file are expanded from the environment before parsing. Missing values take
// the defaults from Default, then the PORT and LOG_LEVEL environment
// variables override the file. The result is validated before use.
//
// The file path comes from the ODS_CONFIG environment variable; when it is
// unset the defaults are used as-is.
//
// Example:
//
//	server:
//	  port: 8080
//	  publicDir: /opt/ods/public
//	probes:
//	  timeout: 3s
//	  overrides:
//	    cpu_temp:
//	      command: {name: vcgencmd, args: [measure_temp]}
//	heartbeat:
//	  schedule: "@every 15m"
//	  urls: ["${ODS_HEARTBEAT_URL}"]
//
// Watch reloads the file when it changes and hands each valid configuration
// to a callback. Invalid edits are logged and ignored.
package config
