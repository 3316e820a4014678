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
	"fmt"
	"log/slog"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/command"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/errors"
)

// PowerManager reboots or powers off the host.
type PowerManager interface {
	Reboot(ctx context.Context) error
	PowerOff(ctx context.Context) error
}

// NewPowerManager returns the systemd backend with the command backend as
// fallback, or only the command backend when useSystemd is false.
func NewPowerManager(exec command.Executor, useSystemd bool) PowerManager {
	cmd := &CommandPower{exec: exec}
	if !useSystemd {
		return cmd
	}
	return &fallbackPower{managers: []PowerManager{&SystemdPower{}, cmd}}
}

// SystemdPower starts reboot.target or poweroff.target over D-Bus.
type SystemdPower struct{}

// Reboot implements PowerManager.
func (p *SystemdPower) Reboot(ctx context.Context) error {
	return p.start(ctx, "reboot.target")
}

// PowerOff implements PowerManager.
func (p *SystemdPower) PowerOff(ctx context.Context) error {
	return p.start(ctx, "poweroff.target")
}

func (p *SystemdPower) start(ctx context.Context, unit string) error {
	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to systemd: %w", err)
	}
	defer conn.Close()

	if _, err := conn.StartUnitContext(ctx, unit, "replace-irreversibly", nil); err != nil {
		return fmt.Errorf("failed to start %s: %w", unit, err)
	}
	return nil
}

// CommandPower runs the reboot and shutdown commands.
type CommandPower struct {
	exec command.Executor
}

// Reboot implements PowerManager.
func (p *CommandPower) Reboot(ctx context.Context) error {
	return p.run(ctx, command.New("reboot"))
}

// PowerOff implements PowerManager.
func (p *CommandPower) PowerOff(ctx context.Context) error {
	return p.run(ctx, command.New("shutdown", "-h", "now"))
}

func (p *CommandPower) run(ctx context.Context, c command.Command) error {
	if res := p.exec.Execute(ctx, c); res.Failed {
		return errors.WrapWithContext(errors.ErrCodeInternal, "power command failed", res.Err,
			map[string]any{"command": c.String(), "exitCode": res.ExitCode})
	}
	return nil
}

// fallbackPower tries each manager in order until one succeeds.
type fallbackPower struct {
	managers []PowerManager
}

func (f *fallbackPower) Reboot(ctx context.Context) error {
	return f.try(ctx, "reboot", PowerManager.Reboot)
}

func (f *fallbackPower) PowerOff(ctx context.Context) error {
	return f.try(ctx, "poweroff", PowerManager.PowerOff)
}

func (f *fallbackPower) try(ctx context.Context, action string, fn func(PowerManager, context.Context) error) error {
	var err error
	for _, m := range f.managers {
		if err = fn(m, ctx); err == nil {
			return nil
		}
		slog.Warn("power backend failed, trying next",
			slog.String("action", action),
			slog.String("error", err.Error()))
	}
	return err
}
