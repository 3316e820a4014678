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
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/command"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/config"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/defaults"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/errors"
)

// recorder is an Executor that records invocations and replies by name.
type recorder struct {
	mu        sync.Mutex
	calls     []command.Command
	deadlines []time.Time
	replies   map[string]command.Result
}

func (r *recorder) Execute(ctx context.Context, c command.Command) command.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
	deadline, _ := ctx.Deadline()
	r.deadlines = append(r.deadlines, deadline)
	if res, ok := r.replies[c.Name]; ok {
		return res
	}
	return command.Result{Failed: true, ExitCode: 127}
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.Name)
	}
	return out
}

// powerSpy records power actions on a channel.
type powerSpy struct {
	actions chan string
	err     error
}

func newPowerSpy() *powerSpy {
	return &powerSpy{actions: make(chan string, 4)}
}

func (p *powerSpy) Reboot(context.Context) error {
	p.actions <- "reboot"
	return p.err
}

func (p *powerSpy) PowerOff(context.Context) error {
	p.actions <- "poweroff"
	return p.err
}

func (p *powerSpy) wait(t *testing.T) string {
	t.Helper()
	select {
	case a := <-p.actions:
		return a
	case <-time.After(2 * time.Second):
		t.Fatal("power action was not invoked")
		return ""
	}
}

func testConfig(t *testing.T) config.DeviceConfig {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default().Device
	cfg.WpaSupplicantPath = filepath.Join(dir, "wpa_supplicant.conf")
	cfg.BrowserProfileDir = filepath.Join(dir, "chromium")
	cfg.LoaderSignalFile = filepath.Join(dir, "ods-loader-ready")
	cfg.LogFile = filepath.Join(dir, "ods-kiosk.log")
	return cfg
}

func TestConfigureWifi(t *testing.T) {
	cfg := testConfig(t)
	exec := &recorder{replies: map[string]command.Result{"wpa_cli": {Stdout: "OK\n"}}}
	c := NewController(cfg, exec, WithPowerManager(newPowerSpy()))

	err := c.ConfigureWifi(context.Background(), WifiRequest{SSID: "Lobby", Password: "s3cretpass"})
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.WpaSupplicantPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "network={")
	assert.Contains(t, string(data), `ssid="Lobby"`)
	assert.Contains(t, string(data), `psk="s3cretpass"`)

	require.Len(t, exec.calls, 1)
	assert.Equal(t, []string{"-i", "wlan0", "reconfigure"}, exec.calls[0].Args)
}

func TestDeviceCommands_Bounded(t *testing.T) {
	tests := []struct {
		name string
		run  func(c *Controller)
	}{
		{"wifi reconfigure", func(c *Controller) {
			_ = c.ConfigureWifi(context.Background(), WifiRequest{SSID: "Lobby", Password: "s3cretpass"})
		}},
		{"tail logs", func(c *Controller) {
			_ = c.TailLogs(context.Background(), 10)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &recorder{}
			c := NewController(testConfig(t), exec, WithPowerManager(newPowerSpy()))

			start := time.Now()
			tt.run(c)

			require.NotEmpty(t, exec.deadlines)
			for _, d := range exec.deadlines {
				require.False(t, d.IsZero(), "command ran without a deadline")
				assert.WithinDuration(t, start.Add(defaults.CommandTimeout), d, 5*time.Second)
			}
		})
	}
}

func TestConfigureWifi_Appends(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.WpaSupplicantPath, []byte("ctrl_interface=/run/wpa_supplicant\n"), 0o600))
	exec := &recorder{replies: map[string]command.Result{"wpa_cli": {Stdout: "OK"}}}
	c := NewController(cfg, exec, WithPowerManager(newPowerSpy()))

	require.NoError(t, c.ConfigureWifi(context.Background(), WifiRequest{SSID: "A", Password: "password1"}))
	require.NoError(t, c.ConfigureWifi(context.Background(), WifiRequest{SSID: "B", Password: "password2"}))

	data, err := os.ReadFile(cfg.WpaSupplicantPath)
	require.NoError(t, err)
	s := string(data)
	assert.True(t, strings.HasPrefix(s, "ctrl_interface="))
	assert.Equal(t, 2, strings.Count(s, "network={"))
}

func TestConfigureWifi_HexSSID(t *testing.T) {
	assert.Equal(t, `"Lobby"`, ssidValue("Lobby"))
	assert.Equal(t, "6122", ssidValue(`a"`))
	assert.Equal(t, "636166c3a9", ssidValue("café"))
}

func TestConfigureWifi_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  WifiRequest
	}{
		{"empty ssid", WifiRequest{Password: "password1"}},
		{"short password", WifiRequest{SSID: "Lobby", Password: "short"}},
		{"long password", WifiRequest{SSID: "Lobby", Password: strings.Repeat("x", 64)}},
		{"ssid over 32 bytes", WifiRequest{SSID: strings.Repeat("é", 17), Password: "password1"}},
		{"quote in password", WifiRequest{SSID: "Lobby", Password: `pass"word`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			exec := &recorder{}
			c := NewController(cfg, exec, WithPowerManager(newPowerSpy()))

			err := c.ConfigureWifi(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
			assert.Empty(t, exec.calls)
			assert.NoFileExists(t, cfg.WpaSupplicantPath)
		})
	}
}

func TestConfigureWifi_Failures(t *testing.T) {
	t.Run("write failure", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.WpaSupplicantPath = filepath.Join(cfg.WpaSupplicantPath, "missing", "wpa.conf")
		exec := &recorder{}
		c := NewController(cfg, exec, WithPowerManager(newPowerSpy()))

		err := c.ConfigureWifi(context.Background(), WifiRequest{SSID: "Lobby", Password: "password1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Failed to configure WiFi")
		assert.Empty(t, exec.calls, "restart must not run after a failed write")
	})

	t.Run("restart failure", func(t *testing.T) {
		cfg := testConfig(t)
		c := NewController(cfg, &recorder{}, WithPowerManager(newPowerSpy()))

		err := c.ConfigureWifi(context.Background(), WifiRequest{SSID: "Lobby", Password: "password1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Failed to restart WiFi")
		assert.True(t, errors.IsCode(err, errors.ErrCodeInternal))
	})
}

func TestPowerActions(t *testing.T) {
	tests := []struct {
		name    string
		act     func(c *Controller) string
		wantMsg string
		want    string
	}{
		{"reboot", func(c *Controller) string { return c.Reboot(context.Background()) }, "Rebooting in 0 seconds...", "reboot"},
		{"shutdown", func(c *Controller) string { return c.Shutdown(context.Background()) }, "Shutting down in 0 seconds...", "poweroff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spy := newPowerSpy()
			c := NewController(testConfig(t), &recorder{}, WithPowerManager(spy), WithDelays(0, 0))

			assert.Equal(t, tt.wantMsg, tt.act(c))
			assert.Equal(t, tt.want, spy.wait(t))
		})
	}
}

func TestPowerActions_DefaultMessage(t *testing.T) {
	spy := newPowerSpy()
	c := NewController(testConfig(t), &recorder{}, WithPowerManager(spy), WithDelays(time.Hour, time.Hour))

	assert.Equal(t, "Rebooting in 3600 seconds...", c.Reboot(context.Background()))
	assert.Empty(t, spy.actions, "action must wait for the delay")
}

func TestFactoryReset(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.BrowserProfileDir, "Default"), 0o755))
	spy := newPowerSpy()
	c := NewController(cfg, &recorder{}, WithPowerManager(spy), WithDelays(0, 0))

	assert.Equal(t, "Factory reset initiated...", c.FactoryReset(context.Background()))
	assert.Equal(t, "reboot", spy.wait(t))
	assert.NoDirExists(t, cfg.BrowserProfileDir)
}

func TestClearCache(t *testing.T) {
	cfg := testConfig(t)
	c := NewController(cfg, &recorder{}, WithPowerManager(newPowerSpy()))

	for _, dir := range c.cacheDirs() {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "data_0"), []byte("x"), 0o600))
	}
	prefs := filepath.Join(cfg.BrowserProfileDir, "Default", "Preferences")
	require.NoError(t, os.WriteFile(prefs, []byte("{}"), 0o600))

	msg, err := c.ClearCache(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Browser cache cleared. Restart to take effect.", msg)

	for _, dir := range c.cacheDirs() {
		assert.DirExists(t, dir)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	}
	assert.FileExists(t, prefs, "only cache contents are removed")
}

func TestClearCache_MissingDirs(t *testing.T) {
	c := NewController(testConfig(t), &recorder{}, WithPowerManager(newPowerSpy()))

	_, err := c.ClearCache(context.Background())
	assert.NoError(t, err)
}

func TestTailLogs(t *testing.T) {
	t.Run("journal", func(t *testing.T) {
		exec := &recorder{replies: map[string]command.Result{"journalctl": {Stdout: "line1\nline2\n"}}}
		c := NewController(testConfig(t), exec, WithPowerManager(newPowerSpy()))

		assert.Equal(t, "line1\nline2\n", c.TailLogs(context.Background(), 50))
		require.Len(t, exec.calls, 1)
		assert.Equal(t,
			[]string{"-n", "50", "--no-pager", "-u", "ods-kiosk", "-u", "ods-webserver"},
			exec.calls[0].Args)
	})

	t.Run("file fallback", func(t *testing.T) {
		exec := &recorder{replies: map[string]command.Result{"tail": {Stdout: "from file\n"}}}
		c := NewController(testConfig(t), exec, WithPowerManager(newPowerSpy()))

		assert.Equal(t, "from file\n", c.TailLogs(context.Background(), 0))
		assert.Equal(t, []string{"journalctl", "tail"}, exec.names())
		assert.Equal(t, "100", exec.calls[1].Args[1])
	})

	t.Run("nothing available", func(t *testing.T) {
		c := NewController(testConfig(t), &recorder{}, WithPowerManager(newPowerSpy()))
		assert.Equal(t, NoLogs, c.TailLogs(context.Background(), 10))
	})
}

func TestClampLines(t *testing.T) {
	assert.Equal(t, 100, ClampLines(0))
	assert.Equal(t, 100, ClampLines(-5))
	assert.Equal(t, 1, ClampLines(1))
	assert.Equal(t, 1000, ClampLines(5000))
}

func TestEnroll(t *testing.T) {
	exec := &recorder{replies: map[string]command.Result{"python3": {Stdout: "enrolled abc-123\n"}}}
	c := NewController(testConfig(t), exec, WithPowerManager(newPowerSpy()))

	out, err := c.Enroll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "enrolled abc-123\n", out)
	assert.Equal(t,
		[]string{"/usr/local/bin/device_uuid_generator.py", "209.38.118.127", "9999"},
		exec.calls[0].Args)

	failing := NewController(testConfig(t), &recorder{}, WithPowerManager(newPowerSpy()))
	_, err = failing.Enroll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Enrollment failed")
}

func TestLoaderReady(t *testing.T) {
	cfg := testConfig(t)
	now := time.UnixMilli(1718000000123)
	c := NewController(cfg, &recorder{}, WithPowerManager(newPowerSpy()), WithClock(func() time.Time { return now }))

	require.NoError(t, c.LoaderReady())

	data, err := os.ReadFile(cfg.LoaderSignalFile)
	require.NoError(t, err)
	assert.Equal(t, "1718000000123", string(data))
}

func TestSetupQR(t *testing.T) {
	assert.Equal(t, "http://192.168.1.20:8080/setup.html", SetupURL("192.168.1.20", 8080))

	url, err := SetupQR("kiosk.local", 8080)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	png, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func TestSetupQRText(t *testing.T) {
	text, err := SetupQRText("kiosk.local", 8080)
	require.NoError(t, err)
	assert.Greater(t, strings.Count(text, "\n"), 10)
}

func TestWriteSetupQR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.png")
	require.NoError(t, WriteSetupQR("kiosk.local", 8080, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])

	err = WriteSetupQR("kiosk.local", 8080, filepath.Join(t.TempDir(), "missing", "setup.png"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeInternal))
}
