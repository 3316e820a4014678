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

package device

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/command"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/defaults"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/errors"
)

// WifiRequest holds the credentials of the network to join.
type WifiRequest struct {
	SSID     string `json:"ssid" validate:"required,max=32"`
	Password string `json:"password" validate:"required,min=8,max=63,printascii"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the request before anything is written.
func (r WifiRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid wifi credentials", err)
	}
	if len(r.SSID) > 32 {
		return errors.New(errors.ErrCodeInvalidRequest, "invalid wifi credentials: ssid longer than 32 bytes")
	}
	if strings.ContainsRune(r.Password, '"') {
		return errors.New(errors.ErrCodeInvalidRequest, "invalid wifi credentials: password may not contain '\"'")
	}
	return nil
}

// ConfigureWifi appends a network block for req to the wpa_supplicant file
// and asks wpa_supplicant to reload it.
func (c *Controller) ConfigureWifi(ctx context.Context, req WifiRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := appendNetwork(c.cfg.WpaSupplicantPath, req); err != nil {
		deviceActions.WithLabelValues("wifi", outcomeFailed).Inc()
		return errors.WrapWithContext(errors.ErrCodeInternal, "Failed to configure WiFi", err,
			map[string]any{"path": c.cfg.WpaSupplicantPath})
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.CommandTimeout)
	defer cancel()

	res := c.exec.Execute(ctx, command.New("wpa_cli", "-i", c.cfg.WifiInterface, "reconfigure"))
	if res.Failed {
		deviceActions.WithLabelValues("wifi", outcomeFailed).Inc()
		return errors.WrapWithContext(errors.ErrCodeInternal, "Failed to restart WiFi", res.Err,
			map[string]any{"interface": c.cfg.WifiInterface})
	}

	deviceActions.WithLabelValues("wifi", outcomeSuccess).Inc()
	slog.Info("wifi network configured", slog.String("interface", c.cfg.WifiInterface))
	return nil
}

func appendNetwork(path string, req WifiRequest) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(networkBlock(req)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// networkBlock renders a wpa_supplicant network entry. SSIDs that cannot be
// quoted verbatim are written in hex form.
func networkBlock(req WifiRequest) string {
	return fmt.Sprintf("\nnetwork={\n    ssid=%s\n    psk=\"%s\"\n}\n", ssidValue(req.SSID), req.Password)
}

func ssidValue(ssid string) string {
	for _, r := range ssid {
		if r == '"' || r == '\\' || r < 0x20 || r > 0x7e {
			return hex.EncodeToString([]byte(ssid))
		}
	}
	return `"` + ssid + `"`
}
