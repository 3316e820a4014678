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

// Package server provides the HTTP server that hosts the agent API.
//
// The server wraps net/http with the concerns every route shares:
//
//   - Middleware: metrics, API version header, request IDs, panic recovery,
//     rate limiting and request logging, applied in that order
//   - Health endpoints: /health (liveness) and /ready (readiness)
//   - Metrics: Prometheus exposition on /metrics
//   - Structured errors: a stable JSON error body with request ID and a
//     retryable hint, derived from pkg/errors codes
//   - Lifecycle: graceful shutdown on SIGINT/SIGTERM and systemd readiness
//     notification when running under a Type=notify unit
//
// Usage:
//
//	s := server.New(
//	    server.WithName("odsd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/api/status": h.status,
//	    }),
//	    server.WithFallback(http.FileServer(http.Dir("public"))),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Error responses have the form:
//
//	{
//	  "code": "INVALID_REQUEST",
//	  "message": "invalid wifi credentials",
//	  "details": {"error": "..."},
//	  "requestId": "6f0c...",
//	  "timestamp": "2025-06-01T12:00:00Z",
//	  "retryable": false
//	}
//
// Configuration defaults come from pkg/defaults; PORT and
// SHUTDOWN_TIMEOUT_SECONDS override the listen port and the shutdown grace
// period.
package server
