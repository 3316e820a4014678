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
	"log/slog"
	"net/http"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/command"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/config"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/device"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/heartbeat"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/logging"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/probe"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/server"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/system"
)

const (
	name           = "odsd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/rob-jonesdevlab/ods-player-atlas/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the agent's HTTP server and blocks until shutdown.
// It resolves the configuration, wires the collaborators, and runs the
// heartbeat and config watcher alongside the server.
func Serve() error {
	return ServeContext(context.Background())
}

// ServeContext is Serve with a caller-supplied context.
func ServeContext(ctx context.Context) error {
	cfg, path, err := config.Resolve()
	if err != nil {
		return err
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"config", path,
	)

	a, err := newAgent(cfg)
	if err != nil {
		slog.Error("failed to initialize agent", "error", err)
		return err
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithListen(cfg.Server.Address, cfg.Server.Port),
		server.WithHandler(a.handlers.Routes()),
		server.WithFallback(http.FileServer(http.Dir(cfg.Server.PublicDir))),
	)

	tasks := []func(context.Context) error{a.heartbeat.Start}
	if path != "" {
		tasks = append(tasks, func(ctx context.Context) error {
			return config.Watch(ctx, path, a.reload)
		})
	}

	if err := s.Run(ctx, tasks...); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// agent holds the wired collaborators behind the HTTP surface.
type agent struct {
	reporter  *system.Reporter
	handlers  *Handlers
	heartbeat *heartbeat.Heartbeat
}

func newAgent(cfg *config.Config) (*agent, error) {
	exec := command.NewExecutor()

	agg := probe.NewAggregator(exec,
		probe.WithDefaultTimeout(cfg.Probes.Timeout),
		probe.WithCompletionHook(func(runID string, results probe.Results) {
			failed := 0
			for _, r := range results {
				if r.Failed {
					failed++
				}
			}
			slog.Debug("probe run complete",
				slog.String("run", runID),
				slog.Int("probes", len(results)),
				slog.Int("failed", failed))
		}),
	)

	catalog, err := system.DefaultCatalog(cfg.Probes)
	if err != nil {
		return nil, err
	}
	reporter := system.NewReporter(agg, catalog)

	ctrl := device.NewController(cfg.Device, exec)

	hb, err := heartbeat.New(cfg.Heartbeat, reporter, heartbeat.WithVersion(version))
	if err != nil {
		return nil, err
	}

	return &agent{
		reporter:  reporter,
		handlers:  NewHandlers(reporter, ctrl, cfg.Server.Port),
		heartbeat: hb,
	}, nil
}

// reload applies the parts of a changed config that do not need a restart.
func (a *agent) reload(cfg *config.Config) {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)

	catalog, err := system.DefaultCatalog(cfg.Probes)
	if err != nil {
		slog.Warn("ignoring probe changes", "error", err)
		return
	}
	a.reporter.SetCatalog(catalog)
	slog.Info("configuration reloaded")
}
