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
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/defaults"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/errors"
)

// Watch reloads the config file at path whenever it changes and passes each
// valid result to onChange. It blocks until ctx is done. The parent directory
// is watched so that editors replacing the file by rename are seen.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	return watch(ctx, path, defaults.ConfigReloadDebounce, onChange)
}

func watch(ctx context.Context, path string, debounce time.Duration, onChange func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "creating file watcher", err)
	}
	defer w.Close()

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "watching config directory", err,
			map[string]any{"path": path})
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	reload := func() {
		cfg, err := Load(target)
		if err != nil {
			slog.Warn("config reload rejected, keeping previous config",
				slog.String("path", target),
				slog.String("error", err.Error()))
			return
		}
		slog.Info("config reloaded", slog.String("path", target))
		onChange(cfg)
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, reload)
			mu.Unlock()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("config watcher error", slog.String("error", err.Error()))
		}
	}
}
