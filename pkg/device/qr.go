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
	"encoding/base64"
	"fmt"
	"net"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/errors"
)

// QRSize is the edge length of the setup QR code in pixels.
const QRSize = 400

// SetupURL returns the address of the setup page served on host:port.
func SetupURL(host string, port int) string {
	return fmt.Sprintf("http://%s/setup.html", net.JoinHostPort(host, strconv.Itoa(port)))
}

// SetupQR renders the setup page URL as a PNG data URL.
func SetupQR(host string, port int) (string, error) {
	png, err := qrcode.Encode(SetupURL(host, port), qrcode.Medium, QRSize)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to generate QR code", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// SetupQRText renders the setup page URL as half-block text for a terminal.
func SetupQRText(host string, port int) (string, error) {
	q, err := qrcode.New(SetupURL(host, port), qrcode.Medium)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to generate QR code", err)
	}
	return q.ToSmallString(false), nil
}

// WriteSetupQR writes the setup page QR code to path as a PNG.
func WriteSetupQR(host string, port int, path string) error {
	if err := qrcode.WriteFile(SetupURL(host, port), qrcode.Medium, QRSize, path); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to write QR code", err,
			map[string]any{"path": path})
	}
	return nil
}
