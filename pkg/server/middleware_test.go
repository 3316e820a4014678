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
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func newTestServer() *Server {
	return &Server{
		config:      NewConfig(),
		rateLimiter: rate.NewLimiter(100, 200),
	}
}

func TestRequestIDMiddleware_GeneratesNewID(t *testing.T) {
	s := newTestServer()

	var capturedRequestID string
	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		capturedRequestID = RequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if _, err := uuid.Parse(capturedRequestID); err != nil {
		t.Errorf("expected valid UUID, got: %s", capturedRequestID)
	}

	if rec.Header().Get("X-Request-Id") != capturedRequestID {
		t.Errorf("expected X-Request-Id header to be %s, got %s",
			capturedRequestID, rec.Header().Get("X-Request-Id"))
	}
}

func TestRequestIDMiddleware_UsesProvidedID(t *testing.T) {
	s := newTestServer()

	providedID := uuid.New().String()
	var capturedRequestID string
	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		capturedRequestID = RequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-Id", providedID)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if capturedRequestID != providedID {
		t.Errorf("expected request ID %s, got %s", providedID, capturedRequestID)
	}
}

func TestRequestIDMiddleware_ReplacesInvalidID(t *testing.T) {
	s := newTestServer()

	var capturedRequestID string
	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		capturedRequestID = RequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-Id", "not-a-uuid")
	handler(httptest.NewRecorder(), req)

	if capturedRequestID == "not-a-uuid" {
		t.Error("expected invalid request ID to be replaced")
	}
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	s := newTestServer()

	handler := s.panicRecoveryMiddleware(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
}

func TestVersionMiddleware(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{"no header", "", "v1"},
		{"vendor v1", "application/vnd.ods.player.v1+json", "v1"},
		{"unsupported version", "application/vnd.ods.player.v9+json", "v1"},
		{"list", "text/html, application/vnd.ods.player.v1+json", "v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := s.versionMiddleware(func(_ http.ResponseWriter, r *http.Request) {
				got, _ = r.Context().Value(contextKeyAPIVersion).(string)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if got != tt.want {
				t.Errorf("expected version %s, got %s", tt.want, got)
			}
			if rec.Header().Get("X-API-Version") != tt.want {
				t.Errorf("expected header %s, got %s", tt.want, rec.Header().Get("X-API-Version"))
			}
		})
	}
}

func TestResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusInternalServerError)

	if rw.Status() != http.StatusCreated {
		t.Errorf("expected first status to stick, got %d", rw.Status())
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected recorder status 201, got %d", rec.Code)
	}
	if rw.Unwrap() != rec {
		t.Error("expected Unwrap to return the underlying writer")
	}
}
