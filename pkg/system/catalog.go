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

package system

import (
	"fmt"
	"slices"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/command"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/config"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/errors"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/normalize"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/probe"
)

// System report probe keys.
const (
	KeyHostname          = "hostname"
	KeyCPUTemp           = "cpu_temp"
	KeyUptime            = "uptime"
	KeyRAMUsage          = "ram_usage"
	KeyRAMPercent        = "ram_percent"
	KeyStorageUsage      = "storage_usage"
	KeyStoragePercent    = "storage_percent"
	KeyOSVersion         = "os_version"
	KeyIPAddress         = "ip_address"
	KeyDNS               = "dns"
	KeyInterfaces        = "interfaces"
	KeyDisplayResolution = "display_resolution"
	KeyDisplayScale      = "display_scale"
)

// Network status probe keys.
const (
	KeySSID         = "ssid"
	KeyDefaultRoute = "default_route"
)

// Catalog is the set of probes and normalization rules behind the reports.
type Catalog struct {
	System          []probe.Spec
	Network         []probe.Spec
	Rules           normalize.Rules
	WiredInterfaces []string
}

// DefaultCatalog returns the built-in probes with cfg's timeout, wired
// interfaces and per-key overrides applied. An override for an unknown key
// is a configuration error.
func DefaultCatalog(cfg config.ProbesConfig) (*Catalog, error) {
	c := &Catalog{
		System:          systemSpecs(),
		Network:         networkSpecs(),
		Rules:           defaultRules(),
		WiredInterfaces: slices.Clone(cfg.WiredInterfaces),
	}
	if len(c.WiredInterfaces) == 0 {
		c.WiredInterfaces = []string{"eth0", "end0"}
	}

	for i := range c.System {
		c.System[i].Timeout = cfg.Timeout
	}
	for i := range c.Network {
		c.Network[i].Timeout = cfg.Timeout
	}

	for key, ov := range cfg.Overrides {
		spec := c.lookup(key)
		if spec == nil {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidConfiguration,
				fmt.Sprintf("override for unknown probe %q", key),
				map[string]any{"key": key})
		}
		if ov.Command != nil {
			spec.Command = *ov.Command
			spec.Fallbacks = nil
		}
		if len(ov.Fallbacks) > 0 {
			spec.Fallbacks = slices.Clone(ov.Fallbacks)
		}
		if ov.Timeout > 0 {
			spec.Timeout = ov.Timeout
		}
	}

	if err := probe.Validate(c.System); err != nil {
		return nil, err
	}
	if err := probe.Validate(c.Network); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) lookup(key string) *probe.Spec {
	for i := range c.System {
		if c.System[i].Key == key {
			return &c.System[i]
		}
	}
	for i := range c.Network {
		if c.Network[i].Key == key {
			return &c.Network[i]
		}
	}
	return nil
}

func systemSpecs() []probe.Spec {
	return []probe.Spec{
		{Key: KeyHostname, Command: command.New("hostname")},
		{Key: KeyCPUTemp, Command: command.New("cat", "/sys/class/thermal/thermal_zone0/temp")},
		{Key: KeyUptime, Command: command.New("uptime", "-p")},
		{Key: KeyRAMUsage, Command: command.Shell(`free -h | awk '/^Mem:/ {print $3 "/" $2}'`)},
		{Key: KeyRAMPercent, Command: command.Shell(`free | awk '/^Mem:/ {printf "%.0f", $3/$2*100}'`)},
		{Key: KeyStorageUsage, Command: command.Shell(`df -h / | awk 'NR==2 {print $3 "/" $2}'`)},
		{Key: KeyStoragePercent, Command: command.Shell(`df / | awk 'NR==2 {print $5}'`)},
		{
			Key:       KeyOSVersion,
			Command:   command.Shell(`grep VERSION= /etc/armbian-release | cut -d= -f2`),
			Fallbacks: []command.Command{command.New("lsb_release", "-d", "-s")},
		},
		{Key: KeyIPAddress, Command: command.Shell(`hostname -I | awk '{print $1}'`)},
		{Key: KeyDNS, Command: command.Shell(`grep nameserver /etc/resolv.conf | head -1 | awk '{print $2}'`)},
		{Key: KeyInterfaces, Command: command.New("ip", "-br", "addr", "show")},
		{
			Key:     KeyDisplayResolution,
			Command: command.Shell(`xrandr | grep '[*]' | head -1 | awk '{print $1}'`).WithEnv("DISPLAY=:0"),
		},
		{Key: KeyDisplayScale, Command: command.New("printenv", "ODS_SCALE")},
	}
}

func networkSpecs() []probe.Spec {
	return []probe.Spec{
		{Key: KeySSID, Command: command.New("iwgetid", "-r")},
		{Key: KeyDefaultRoute, Command: command.New("ip", "route", "show", "default")},
	}
}

func defaultRules() normalize.Rules {
	return normalize.Rules{
		KeyCPUTemp:        normalize.Scaled{Factor: 0.001, Precision: 1, Unit: "°C"},
		KeyRAMPercent:     normalize.Percentage{},
		KeyStoragePercent: normalize.Percentage{},
		KeyDisplayScale:   normalize.Default{Value: "1"},
		KeySSID:           normalize.Default{},
		KeyDefaultRoute:   normalize.Default{},
	}
}
