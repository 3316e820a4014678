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

package server

import (
	"net/http"
	"time"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/serializer"
)

// HealthResponse is the body of /health and /ready.
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Service   string    `json:"service" yaml:"service"`
	Version   string    `json:"version" yaml:"version"`
	Uptime    string    `json:"uptime" yaml:"uptime"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func (s *Server) healthResponse(status, reason string) HealthResponse {
	now := time.Now()
	return HealthResponse{
		Status:    status,
		Service:   s.config.Name,
		Version:   s.config.Version,
		Uptime:    now.Sub(s.started).Truncate(time.Second).String(),
		Timestamp: now,
		Reason:    reason,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, s.healthResponse("healthy", ""))
}

// handleReady reports 503 until Start has bound the listener.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()

	if !ready {
		serializer.RespondJSON(w, http.StatusServiceUnavailable,
			s.healthResponse("not_ready", "listener not bound"))
		return
	}
	serializer.RespondJSON(w, http.StatusOK, s.healthResponse("ready", ""))
}
