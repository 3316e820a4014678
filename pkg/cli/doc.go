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

// Package cli implements odsctl, the command-line interface of the ODS Player agent.
//
// # Overview
//
// odsctl runs the same probes and device actions as the HTTP API directly on
// the player, which is useful over SSH or from provisioning scripts when the
// agent is not running.
//
// # Commands
//
// serve - Run the agent HTTP server:
//
//	odsctl serve
//
// report - Collect the system report:
//
//	odsctl report [--format json|yaml|table] [--output FILE]
//
// status - Show network connectivity:
//
//	odsctl status [--format json|yaml|table]
//
// logs - Print the tail of the agent logs:
//
//	odsctl logs [--lines 100]
//
// qr - Render the setup page QR code in the terminal or to a PNG file:
//
//	odsctl qr [--host 192.168.1.20] [--port 8080] [--png setup.png]
//
// # Global Flags
//
//	--config       Config file (env ODS_CONFIG)
//	--log-level    Log level: debug, info, warn, error (env LOG_LEVEL)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// The default output format is table when stdout is a terminal and json otherwise.
package cli
