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

// Package logging provides structured logging utilities for the ODS agent.
//
// # Overview
//
// This package wraps the standard library slog package with agent defaults so
// the daemon, the CLI, and every library package log the same way. It
// supports environment-based level configuration, module/version context
// injection, and source location tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Potentially problematic situations
//   - ERROR: Failures requiring attention
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("odsd", version)
//	    slog.Info("probe run complete", "run", runID, "probes", 13)
//	}
//
// Setting an explicit level (the CLI does this after flags are parsed):
//
//	logging.SetDefaultStructuredLoggerWithLevel("odsctl", version, "warn")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls verbosity when no explicit
// level is given:
//
//	LOG_LEVEL=debug odsd
//
// # Output Format
//
// All logs are JSON on stderr:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "probe run complete",
//	    "module": "odsd",
//	    "version": "v1.0.0",
//	    "run": "6f1c..."
//	}
package logging
