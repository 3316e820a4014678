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

// Package api exposes the ODS Player agent over HTTP.
//
// This package is a thin layer on top of pkg/server: it resolves the
// configuration, builds the probe aggregator, system reporter, device
// controller and heartbeat, and registers their handlers with the server.
//
// # Usage
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - GET  /api/status              - Network status (wifi, ethernet, ssid)
//   - GET  /api/system/info         - System report
//   - POST /api/wifi/configure      - Join a wifi network
//   - GET  /api/qr                  - Setup page QR code as a data URL
//   - POST /api/enroll              - Run device enrollment
//   - GET  /api/loader-ready        - Signal that the boot loader may quit
//   - POST /api/system/reboot       - Reboot after a short delay
//   - POST /api/system/shutdown     - Power off after a short delay
//   - POST /api/system/factory-reset - Remove the browser profile and reboot
//   - POST /api/system/cache-clear  - Empty the browser caches
//   - GET  /api/system/logs?lines=N - Tail of the agent logs
//
// System endpoints (no rate limiting):
//   - GET /health  - Liveness
//   - GET /ready   - Readiness
//   - GET /metrics - Prometheus metrics
//
// Every other path is served from the configured public directory, which
// holds the setup page and its assets.
//
// # Configuration
//
// The config file is named by ODS_CONFIG; PORT and LOG_LEVEL override it.
// When a file is used it is watched, and probe overrides and the log level
// take effect without a restart.
package api
