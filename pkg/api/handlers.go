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

package api

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/defaults"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/device"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/errors"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/serializer"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/server"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/system"
)

// maxBodyBytes bounds request bodies; the largest is a wifi request.
const maxBodyBytes = 4 << 10

// Reporter produces the status documents.
type Reporter interface {
	SystemReport(ctx context.Context) (*system.Report, error)
	NetworkStatus(ctx context.Context) (*system.NetworkStatus, error)
}

// Device performs the one-shot device actions.
type Device interface {
	ConfigureWifi(ctx context.Context, req device.WifiRequest) error
	Reboot(ctx context.Context) string
	Shutdown(ctx context.Context) string
	FactoryReset(ctx context.Context) string
	ClearCache(ctx context.Context) (string, error)
	TailLogs(ctx context.Context, n int) string
	Enroll(ctx context.Context) (string, error)
	LoaderReady() error
}

// ActionResponse acknowledges a device action.
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Output  string `json:"output,omitempty"`
}

// QRResponse carries the setup QR code.
type QRResponse struct {
	QRCode string `json:"qrCode"`
}

// LogsResponse carries a log tail.
type LogsResponse struct {
	Logs string `json:"logs"`
}

// Handlers serves the /api routes.
type Handlers struct {
	reporter Reporter
	device   Device
	port     int
}

// NewHandlers returns handlers backed by reporter and dev. port is the
// public port advertised in the setup QR code.
func NewHandlers(reporter Reporter, dev Device, port int) *Handlers {
	return &Handlers{reporter: reporter, device: dev, port: port}
}

// Routes returns the handler map keyed by path.
func (h *Handlers) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/api/status":               h.handleStatus,
		"/api/system/info":          h.handleSystemInfo,
		"/api/wifi/configure":       h.handleWifiConfigure,
		"/api/qr":                   h.handleQR,
		"/api/enroll":               h.handleEnroll,
		"/api/loader-ready":         h.handleLoaderReady,
		"/api/system/reboot":        h.handleReboot,
		"/api/system/shutdown":      h.handleShutdown,
		"/api/system/factory-reset": h.handleFactoryReset,
		"/api/system/cache-clear":   h.handleCacheClear,
		"/api/system/logs":          h.handleLogs,
	}
}

func (h *Handlers) handleStatus(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodGet) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.ReportHandlerTimeout)
	defer cancel()

	status, err := h.reporter.NetworkStatus(ctx)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to read network status", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, status)
}

func (h *Handlers) handleSystemInfo(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodGet) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.ReportHandlerTimeout)
	defer cancel()

	report, err := h.reporter.SystemReport(ctx)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to collect system info", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, report)
}

func (h *Handlers) handleWifiConfigure(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req device.WifiRequest
	if err := serializer.DecodeJSON(r, &req, maxBodyBytes); err != nil {
		server.WriteErrorFromErr(w, r,
			errors.Wrap(errors.ErrCodeInvalidRequest, "Invalid request body", err), "", nil)
		return
	}

	if err := h.device.ConfigureWifi(r.Context(), req); err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to configure WiFi", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, ActionResponse{Success: true})
}

func (h *Handlers) handleQR(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodGet) {
		return
	}

	qr, err := device.SetupQR(requestHost(r), h.port)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to generate QR code", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, QRResponse{QRCode: qr})
}

func (h *Handlers) handleEnroll(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodPost) {
		return
	}

	out, err := h.device.Enroll(r.Context())
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Enrollment failed", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, ActionResponse{Success: true, Output: out})
}

func (h *Handlers) handleLoaderReady(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodGet) {
		return
	}

	if err := h.device.LoaderReady(); err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to signal loader", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, ActionResponse{Success: true})
}

func (h *Handlers) handleReboot(w http.ResponseWriter, r *http.Request) {
	h.power(w, r, h.device.Reboot)
}

func (h *Handlers) handleShutdown(w http.ResponseWriter, r *http.Request) {
	h.power(w, r, h.device.Shutdown)
}

func (h *Handlers) handleFactoryReset(w http.ResponseWriter, r *http.Request) {
	h.power(w, r, h.device.FactoryReset)
}

// power acknowledges a delayed action. The action itself runs after the
// response is written.
func (h *Handlers) power(w http.ResponseWriter, r *http.Request, action func(context.Context) string) {
	if !server.RequireMethod(w, r, http.MethodPost) {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, ActionResponse{Success: true, Message: action(r.Context())})
}

func (h *Handlers) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodPost) {
		return
	}

	msg, err := h.device.ClearCache(r.Context())
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to clear cache", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, ActionResponse{Success: true, Message: msg})
}

func (h *Handlers) handleLogs(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodGet) {
		return
	}

	// Unparseable values fall back to the default line count.
	n, _ := strconv.Atoi(r.URL.Query().Get("lines"))
	serializer.RespondJSON(w, http.StatusOK, LogsResponse{Logs: h.device.TailLogs(r.Context(), n)})
}

// requestHost returns the host the client used to reach us, without a port.
func requestHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.Host); err == nil {
		return host
	}
	return strings.Trim(r.Host, "[]")
}
