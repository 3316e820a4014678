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
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatch_ReloadsValidChanges(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "ods.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o600))

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	reloaded := make(chan *Config, 4)
	errCh := make(chan error, 1)
	go func() {
		errCh <- watch(ctx, path, 20*time.Millisecond, func(c *Config) {
			reloaded <- c
		})
	}()

	// Let the watcher register before writing.
	time.Sleep(100 * time.Millisecond)

	// An invalid edit is ignored.
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 0\n"), 0o600))
	time.Sleep(100 * time.Millisecond)
	require.Empty(t, reloaded)

	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9191\n"), 0o600))

	deadline := time.After(3 * time.Second)
	for done := false; !done; {
		select {
		case cfg := <-reloaded:
			done = cfg.Server.Port == 9191
		case <-deadline:
			t.Fatal("config was not reloaded")
		}
	}

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
