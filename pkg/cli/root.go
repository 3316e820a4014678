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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/command"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/config"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/logging"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/serializer"
)

const (
	name           = "odsctl"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"

	// newExecutor builds the process executor used by local commands.
	newExecutor = func() command.Executor { return command.NewExecutor() }
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.DetectFormat(os.Stdout)),
		Usage:   fmt.Sprintf("Output format (supported values: %v)", serializer.SupportedFormats()),
	}
}

// Execute runs the CLI with the process arguments and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "ODS Player provisioning and telemetry agent",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Agent config file",
				Sources: cli.EnvVars(config.EnvConfigPath),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars(config.EnvLogLevel),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if path := cmd.String("config"); path != "" {
				// serve resolves its config from the environment.
				if err := os.Setenv(config.EnvConfigPath, path); err != nil {
					return ctx, fmt.Errorf("failed to set %s: %w", config.EnvConfigPath, err)
				}
			}
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			serveCmd(),
			reportCmd(),
			statusCmd(),
			logsCmd(),
			qrCmd(),
		},
	}
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	return serializer.ParseFormat(cmd.String("format"))
}

// newWriter returns a serializer for --output, or the root command's writer.
func newWriter(cmd *cli.Command, format serializer.Format) *serializer.Writer {
	if path := cmd.String("output"); path != "" {
		return serializer.NewFileWriterOrStdout(format, path)
	}
	return serializer.NewWriter(format, cmd.Root().Writer)
}

// loadConfig returns the config named by --config, or the defaults.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		return config.Load(path)
	}
	cfg, _, err := config.Resolve()
	return cfg, err
}
