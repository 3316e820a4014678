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

package defaults

import "time"

// Probe timeouts for report aggregation.
const (
	// ProbeTimeout is the uniform per-probe deadline applied to every
	// system report probe that does not set its own.
	ProbeTimeout = 3 * time.Second

	// ReportHandlerTimeout bounds a report request end to end.
	// Must exceed ProbeTimeout so every probe can settle before the handler gives up.
	ReportHandlerTimeout = 10 * time.Second
)

// Device action timeouts and delays.
const (
	// CommandTimeout is the default timeout for one-shot device commands.
	CommandTimeout = 30 * time.Second

	// EnrollTimeout is the timeout for the enrollment script.
	EnrollTimeout = 60 * time.Second

	// RebootDelay is how long reboot and shutdown wait after acknowledging the request.
	RebootDelay = 3 * time.Second

	// FactoryResetDelay is how long a factory reset waits after acknowledging the request.
	FactoryResetDelay = 2 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Heartbeat and config settings.
const (
	// HeartbeatSchedule is the default cron spec for telemetry pushes.
	HeartbeatSchedule = "@every 15m"

	// HeartbeatTimeout bounds a single heartbeat (report plus delivery).
	HeartbeatTimeout = 30 * time.Second

	// ConfigReloadDebounce coalesces bursts of file events into one reload.
	ConfigReloadDebounce = 500 * time.Millisecond
)

// Log tail limits.
const (
	// LogTailLines is the default number of log lines returned.
	LogTailLines = 100

	// LogTailMaxLines caps the number of lines a caller may request.
	LogTailMaxLines = 1000
)
