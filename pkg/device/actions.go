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
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/command"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/defaults"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/errors"
)

// NoLogs is returned by TailLogs when no source produced output.
const NoLogs = "No logs available"

// Reboot schedules a reboot and returns the acknowledgement message.
func (c *Controller) Reboot(_ context.Context) string {
	slog.Info("reboot requested", slog.Duration("delay", c.powerDelay))
	c.later("reboot", c.powerDelay, c.power.Reboot)
	return fmt.Sprintf("Rebooting in %d seconds...", int(c.powerDelay.Seconds()))
}

// Shutdown schedules a power off and returns the acknowledgement message.
func (c *Controller) Shutdown(_ context.Context) string {
	slog.Info("shutdown requested", slog.Duration("delay", c.powerDelay))
	c.later("shutdown", c.powerDelay, c.power.PowerOff)
	return fmt.Sprintf("Shutting down in %d seconds...", int(c.powerDelay.Seconds()))
}

// FactoryReset schedules removal of the browser profile followed by a reboot.
// The reboot is skipped when the profile cannot be removed.
func (c *Controller) FactoryReset(_ context.Context) string {
	slog.Warn("factory reset requested", slog.String("profile", c.cfg.BrowserProfileDir))
	c.later("factory-reset", c.resetDelay, func(ctx context.Context) error {
		if err := os.RemoveAll(c.cfg.BrowserProfileDir); err != nil {
			return fmt.Errorf("failed to remove browser profile: %w", err)
		}
		return c.power.Reboot(ctx)
	})
	return "Factory reset initiated..."
}

// ClearCache empties the browser's Cache and Code Cache directories.
func (c *Controller) ClearCache(_ context.Context) (string, error) {
	for _, dir := range c.cacheDirs() {
		if err := emptyDir(dir); err != nil {
			deviceActions.WithLabelValues("cache-clear", outcomeFailed).Inc()
			return "", errors.WrapWithContext(errors.ErrCodeInternal, "Failed to clear cache", err,
				map[string]any{"dir": dir})
		}
	}
	deviceActions.WithLabelValues("cache-clear", outcomeSuccess).Inc()
	slog.Info("browser cache cleared")
	return "Browser cache cleared. Restart to take effect.", nil
}

func (c *Controller) cacheDirs() []string {
	base := filepath.Join(c.cfg.BrowserProfileDir, "Default")
	return []string{
		filepath.Join(base, "Cache"),
		filepath.Join(base, "Code Cache"),
	}
}

// emptyDir removes everything inside dir. A missing dir is already empty.
func emptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// ClampLines bounds a requested log line count to 1..LogTailMaxLines.
// Zero or negative means the default.
func ClampLines(n int) int {
	switch {
	case n <= 0:
		return defaults.LogTailLines
	case n > defaults.LogTailMaxLines:
		return defaults.LogTailMaxLines
	default:
		return n
	}
}

// TailLogs returns the last n lines of the agent's journal, falling back to
// the log file. It never fails; when nothing is available it returns NoLogs.
func (c *Controller) TailLogs(ctx context.Context, n int) string {
	lines := strconv.Itoa(ClampLines(n))

	journal := []string{"-n", lines, "--no-pager"}
	for _, u := range c.cfg.LogUnits {
		journal = append(journal, "-u", u)
	}
	cmds := []command.Command{command.New("journalctl", journal...)}
	if c.cfg.LogFile != "" {
		cmds = append(cmds, command.New("tail", "-n", lines, c.cfg.LogFile))
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.CommandTimeout)
	defer cancel()

	res := command.Chain(ctx, c.exec, cmds...)
	if res.Failed || strings.TrimSpace(res.Stdout) == "" {
		return NoLogs
	}
	return res.Stdout
}

// Enroll runs the enrollment script against the configured server and
// returns its output.
func (c *Controller) Enroll(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.EnrollTimeout)
	defer cancel()

	res := c.exec.Execute(ctx, command.New("python3",
		c.cfg.EnrollScript, c.cfg.EnrollHost, strconv.Itoa(c.cfg.EnrollPort)))
	if res.Failed {
		deviceActions.WithLabelValues("enroll", outcomeFailed).Inc()
		return "", errors.WrapWithContext(errors.ErrCodeInternal, "Enrollment failed", res.Err,
			map[string]any{"exitCode": res.ExitCode})
	}
	deviceActions.WithLabelValues("enroll", outcomeSuccess).Inc()
	slog.Info("device enrolled", slog.String("server", c.cfg.EnrollHost))
	return res.Stdout, nil
}

// LoaderReady records that the boot loader screen may be dismissed by writing
// the current unix millisecond timestamp to the signal file.
func (c *Controller) LoaderReady() error {
	ts := strconv.FormatInt(c.now().UnixMilli(), 10)
	if err := os.WriteFile(c.cfg.LoaderSignalFile, []byte(ts), 0o644); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to write loader signal", err,
			map[string]any{"path": c.cfg.LoaderSignalFile})
	}
	slog.Info("loader ready signal received", slog.String("path", c.cfg.LoaderSignalFile))
	return nil
}
