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

// Package defaults centralizes timeout, delay, and limit constants used across
// the agent so related values can be reasoned about together.
//
// Probe timeouts must stay below the report handler timeout, and the server
// write timeout must exceed the report handler timeout, otherwise a slow probe
// could cause the connection to be cut before the aggregated reply is written.
package defaults
