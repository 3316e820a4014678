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

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/command"
)

// fakeExec answers by executable name; unknown commands fail.
type fakeExec struct {
	mu      sync.Mutex
	replies map[string]command.Result
	calls   []command.Command
}

func (f *fakeExec) Execute(_ context.Context, c command.Command) command.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	if r, ok := f.replies[c.Name]; ok {
		return r
	}
	return command.Result{Failed: true, ExitCode: 127}
}

func useExec(t *testing.T, f *fakeExec) {
	t.Helper()
	prev := newExecutor
	newExecutor = func() command.Executor { return f }
	t.Cleanup(func() { newExecutor = prev })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ODS_CONFIG", "")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")

	var out bytes.Buffer
	root := newRootCmd()
	root.Writer = &out
	root.ErrWriter = &out
	err := root.Run(context.Background(), append([]string{name}, args...))
	return out.String(), err
}

func TestRootCmd(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, "odsctl", root.Name)

	var names []string
	for _, c := range root.Commands {
		names = append(names, c.Name)
		assert.NotNil(t, c.Action, c.Name)
	}
	assert.Equal(t, []string{"serve", "report", "status", "logs", "qr"}, names)
}

func TestStatus(t *testing.T) {
	useExec(t, &fakeExec{replies: map[string]command.Result{
		"iwgetid": {Stdout: "Lobby\n"},
		"ip":      {Stdout: "default via 10.0.0.1 dev end0 proto dhcp\n"},
	}})

	out, err := run(t, "status", "--format", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, true, got["wifi_connected"])
	assert.Equal(t, true, got["ethernet_connected"])
	assert.Equal(t, "Lobby", got["ssid"])
}

func TestReport_YAML(t *testing.T) {
	useExec(t, &fakeExec{replies: map[string]command.Result{
		"hostname": {Stdout: "kiosk-01\n"},
	}})

	out, err := run(t, "report", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "hostname: kiosk-01")
}

func TestReport_OutputFile(t *testing.T) {
	useExec(t, &fakeExec{replies: map[string]command.Result{
		"hostname": {Stdout: "kiosk-01\n"},
	}})
	path := filepath.Join(t.TempDir(), "report.json")

	out, err := run(t, "report", "--format", "json", "--output", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"hostname": "kiosk-01"`)
}

func TestReport_InvalidFormat(t *testing.T) {
	useExec(t, &fakeExec{})

	_, err := run(t, "report", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestReport_ConfigFile(t *testing.T) {
	f := &fakeExec{replies: map[string]command.Result{
		"cat": {Stdout: "kiosk-from-file\n"},
	}}
	useExec(t, f)

	path := filepath.Join(t.TempDir(), "ods.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
probes:
  overrides:
    hostname:
      command:
        name: cat
        args: ["/etc/hostname"]
`), 0o600))

	out, err := run(t, "--config", path, "report", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"hostname": "kiosk-from-file"`)
}

func TestLogs(t *testing.T) {
	f := &fakeExec{replies: map[string]command.Result{
		"journalctl": {Stdout: "line a\nline b\n"},
	}}
	useExec(t, f)

	out, err := run(t, "logs", "--lines", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "line a\nline b")

	require.NotEmpty(t, f.calls)
	assert.Equal(t, "journalctl", f.calls[0].Name)
	assert.Equal(t, []string{"-n", "20", "--no-pager"}, f.calls[0].Args[:3])
}

func TestLogs_NothingAvailable(t *testing.T) {
	useExec(t, &fakeExec{})

	out, err := run(t, "logs")
	require.NoError(t, err)
	assert.Equal(t, "No logs available\n", out)
}

func TestQR(t *testing.T) {
	out, err := run(t, "qr", "--host", "kiosk.local", "--port", "8080")
	require.NoError(t, err)
	assert.Contains(t, out, "http://kiosk.local:8080/setup.html")
	assert.Greater(t, strings.Count(out, "\n"), 10)
}

func TestQR_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.png")

	out, err := run(t, "qr", "--host", "10.0.0.5", "--png", path)
	require.NoError(t, err)
	assert.Contains(t, out, "http://10.0.0.5:8080/setup.html")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}

func TestLocalAddress(t *testing.T) {
	assert.NotEmpty(t, localAddress())
}
