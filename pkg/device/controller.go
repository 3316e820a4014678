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
	"log/slog"
	"time"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/command"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/config"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/defaults"
)

// Option configures a Controller.
type Option func(*Controller)

// WithPowerManager replaces the power backend.
func WithPowerManager(p PowerManager) Option {
	return func(c *Controller) {
		c.power = p
	}
}

// WithDelays overrides the reboot/shutdown and factory reset delays.
func WithDelays(power, reset time.Duration) Option {
	return func(c *Controller) {
		c.powerDelay = power
		c.resetDelay = reset
	}
}

// WithClock overrides the wall clock used for the loader signal.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// Controller runs device operations against the host.
type Controller struct {
	cfg        config.DeviceConfig
	exec       command.Executor
	power      PowerManager
	powerDelay time.Duration
	resetDelay time.Duration
	now        func() time.Time
}

// NewController returns a Controller for the device described by cfg.
func NewController(cfg config.DeviceConfig, exec command.Executor, opts ...Option) *Controller {
	c := &Controller{
		cfg:        cfg,
		exec:       exec,
		powerDelay: defaults.RebootDelay,
		resetDelay: defaults.FactoryResetDelay,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.power == nil {
		c.power = NewPowerManager(exec, cfg.UseSystemd)
	}
	return c
}

// later runs fn after d in the background with a fresh bounded context, so
// the action outlives the request that scheduled it.
func (c *Controller) later(action string, d time.Duration, fn func(ctx context.Context) error) {
	time.AfterFunc(d, func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaults.CommandTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			deviceActions.WithLabelValues(action, outcomeFailed).Inc()
			slog.Error("device action failed",
				slog.String("action", action),
				slog.String("error", err.Error()))
			return
		}
		deviceActions.WithLabelValues(action, outcomeSuccess).Inc()
	})
}
