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

package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/a8m/envsubst"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/command"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/defaults"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/errors"
)

const (
	// EnvConfigPath names the configuration file.
	EnvConfigPath = "ODS_CONFIG"

	// EnvPort overrides Server.Port.
	EnvPort = "PORT"

	// EnvLogLevel overrides LogLevel.
	EnvLogLevel = "LOG_LEVEL"
)

// Config is the complete agent configuration.
type Config struct {
	LogLevel  string          `yaml:"logLevel" validate:"omitempty,oneof=debug info warn warning error"`
	Server    ServerConfig    `yaml:"server"`
	Probes    ProbesConfig    `yaml:"probes"`
	Device    DeviceConfig    `yaml:"device"`
	Heartbeat HeartbeatConfig `yaml:"heartbeat"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address   string `yaml:"address"`
	Port      int    `yaml:"port" validate:"min=1,max=65535"`
	PublicDir string `yaml:"publicDir" validate:"required"`
}

// ProbesConfig configures the status probes.
type ProbesConfig struct {
	// Timeout applies to every probe without its own timeout. It must stay
	// below defaults.ReportHandlerTimeout.
	Timeout time.Duration `yaml:"timeout" validate:"gt=0,lt=10s"`

	// WiredInterfaces are the interface names that count as ethernet.
	WiredInterfaces []string `yaml:"wiredInterfaces" validate:"min=1,dive,required"`

	// Overrides replace the built-in probe for a key.
	Overrides map[string]ProbeOverride `yaml:"overrides" validate:"dive"`
}

// ProbeOverride replaces a built-in probe's commands or timeout.
type ProbeOverride struct {
	Command   *command.Command  `yaml:"command" validate:"omitempty"`
	Fallbacks []command.Command `yaml:"fallbacks" validate:"dive"`
	Timeout   time.Duration     `yaml:"timeout" validate:"gte=0,lt=10s"`
}

// DeviceConfig holds paths and parameters for the one-shot device operations.
type DeviceConfig struct {
	WifiInterface     string   `yaml:"wifiInterface" validate:"required"`
	WpaSupplicantPath string   `yaml:"wpaSupplicantPath" validate:"required"`
	BrowserProfileDir string   `yaml:"browserProfileDir" validate:"required"`
	LogUnits          []string `yaml:"logUnits" validate:"dive,required"`
	LogFile           string   `yaml:"logFile"`
	LoaderSignalFile  string   `yaml:"loaderSignalFile" validate:"required"`
	EnrollScript      string   `yaml:"enrollScript" validate:"required"`
	EnrollHost        string   `yaml:"enrollHost" validate:"required"`
	EnrollPort        int      `yaml:"enrollPort" validate:"min=1,max=65535"`
	UseSystemd        bool     `yaml:"useSystemd"`
}

// HeartbeatConfig configures scheduled telemetry pushes.
type HeartbeatConfig struct {
	Schedule string `yaml:"schedule" validate:"required"`

	// URLs are shoutrrr service URLs. Heartbeats are disabled when empty.
	URLs []string `yaml:"urls" validate:"dive,required"`

	// Template renders the report. Empty uses the built-in template.
	Template string `yaml:"template"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerConfig{
			Port:      8080,
			PublicDir: "public",
		},
		Probes: ProbesConfig{
			Timeout:         defaults.ProbeTimeout,
			WiredInterfaces: []string{"eth0", "end0"},
		},
		Device: DeviceConfig{
			WifiInterface:     "wlan0",
			WpaSupplicantPath: "/etc/wpa_supplicant/wpa_supplicant.conf",
			BrowserProfileDir: "/home/signage/.config/chromium",
			LogUnits:          []string{"ods-kiosk", "ods-webserver"},
			LogFile:           "/var/log/ods-kiosk.log",
			LoaderSignalFile:  "/tmp/ods-loader-ready",
			EnrollScript:      "/usr/local/bin/device_uuid_generator.py",
			EnrollHost:        "209.38.118.127",
			EnrollPort:        9999,
			UseSystemd:        true,
		},
		Heartbeat: HeartbeatConfig{
			Schedule: defaults.HeartbeatSchedule,
		},
	}
}

// Resolve loads the file named by ODS_CONFIG, or the defaults when unset,
// and applies environment overrides.
func Resolve() (*Config, string, error) {
	path := strings.TrimSpace(os.Getenv(EnvConfigPath))
	if path == "" {
		cfg := Default()
		cfg.applyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, "", err
		}
		return cfg, "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Load reads, expands, parses and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfiguration,
			"reading config", err, map[string]any{"path": path})
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse builds a Config from YAML bytes layered on Default.
func Parse(data []byte) (*Config, error) {
	expanded, err := envsubst.Bytes(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "expanding env vars", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(expanded, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "parsing config", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", flatten(err))
	}
	return nil
}

// flatten renders validator errors as one readable error.
func flatten(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return stderrors.New(strings.Join(msgs, "; "))
}
