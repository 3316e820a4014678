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

package command

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	utilexec "k8s.io/utils/exec"
)

// ErrEmptyCommand is returned in Result.Err for a Command without a Name.
var ErrEmptyCommand = errors.New("command has no executable")

// Result is the outcome of one execution.
type Result struct {
	// Stdout is the captured standard output. Empty when Failed.
	Stdout string

	// Failed is set for non-zero exits, missing executables, and expired contexts.
	Failed bool

	// ExitCode is the process exit status, or -1 when the process never exited normally.
	ExitCode int

	// Err is the underlying error for failed executions.
	Err error
}

// Executor runs a single command and reports its outcome.
type Executor interface {
	Execute(ctx context.Context, cmd Command) Result
}

// Option configures a Runner.
type Option func(*Runner)

// WithInterface replaces the exec implementation, typically with a FakeExec in tests.
func WithInterface(e utilexec.Interface) Option {
	return func(r *Runner) {
		r.exec = e
	}
}

// WithBaseEnv sets the environment that per-command Env entries extend.
func WithBaseEnv(env []string) Option {
	return func(r *Runner) {
		r.baseEnv = env
	}
}

// Runner is the production Executor.
type Runner struct {
	exec    utilexec.Interface
	baseEnv []string
}

// NewExecutor creates a Runner backed by the host's process execution.
func NewExecutor(opts ...Option) *Runner {
	r := &Runner{
		exec:    utilexec.New(),
		baseEnv: os.Environ(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute runs c and captures its stdout. The context bounds the process lifetime.
func (r *Runner) Execute(ctx context.Context, c Command) Result {
	if c.IsZero() {
		commandExecutions.WithLabelValues("", outcomeFailed).Inc()
		return Result{Failed: true, ExitCode: -1, Err: ErrEmptyCommand}
	}
	if err := ctx.Err(); err != nil {
		commandExecutions.WithLabelValues(c.Name, outcomeFailed).Inc()
		return Result{Failed: true, ExitCode: -1, Err: err}
	}

	cmd := r.exec.CommandContext(ctx, c.Name, c.Args...)
	if len(c.Env) > 0 {
		env := make([]string, 0, len(r.baseEnv)+len(c.Env))
		env = append(env, r.baseEnv...)
		env = append(env, c.Env...)
		cmd.SetEnv(env)
	}

	out, err := cmd.Output()
	if err != nil {
		res := Result{Failed: true, ExitCode: -1, Err: err}

		var exitErr utilexec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitStatus()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			res.Err = ctxErr
		}

		commandExecutions.WithLabelValues(c.Name, outcomeFailed).Inc()
		slog.Debug("command failed",
			"command", c.String(),
			"exitCode", res.ExitCode,
			"error", res.Err)
		return res
	}

	commandExecutions.WithLabelValues(c.Name, outcomeSuccess).Inc()
	return Result{Stdout: string(out)}
}

// Chain executes cmds in order and returns the first result that succeeded
// with non-blank output. When none does, the last result is returned. A
// cancelled context stops the chain.
func Chain(ctx context.Context, e Executor, cmds ...Command) Result {
	last := Result{Failed: true, ExitCode: -1, Err: ErrEmptyCommand}
	for i, c := range cmds {
		if err := ctx.Err(); err != nil {
			return Result{Failed: true, ExitCode: -1, Err: err}
		}
		res := e.Execute(ctx, c)
		if !res.Failed && strings.TrimSpace(res.Stdout) != "" {
			return res
		}
		if i < len(cmds)-1 {
			slog.Debug("falling back to next command",
				"command", c.String(),
				"failed", res.Failed)
		}
		last = res
	}
	return last
}
