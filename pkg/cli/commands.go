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
	"log/slog"
	"net"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/api"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/config"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/defaults"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/device"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/probe"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/system"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the agent HTTP server",
		Description: `Run the HTTP API, static setup page, heartbeat and config watcher
until interrupted. Equivalent to running odsd.`,
		Action: func(ctx context.Context, _ *cli.Command) error {
			return api.ServeContext(ctx)
		},
	}
}

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Collect the system report",
		Description: `Run every system probe concurrently and print the normalized report:
hostname, temperature, uptime, memory, storage, OS, addresses and display.
Probes that fail or time out are shown as "—".`,
		Flags: []cli.Flag{outputFlag(), formatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return writeReport(ctx, cmd, func(ctx context.Context, r *system.Reporter) (any, error) {
				return r.SystemReport(ctx)
			})
		},
	}
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show network connectivity",
		Flags: []cli.Flag{outputFlag(), formatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return writeReport(ctx, cmd, func(ctx context.Context, r *system.Reporter) (any, error) {
				return r.NetworkStatus(ctx)
			})
		},
	}
}

func logsCmd() *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "Print the tail of the agent logs",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "lines",
				Aliases: []string{"n"},
				Value:   defaults.LogTailLines,
				Usage:   fmt.Sprintf("Number of lines (1-%d)", defaults.LogTailMaxLines),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctrl := device.NewController(cfg.Device, newExecutor())
			_, err = fmt.Fprintln(cmd.Root().Writer, ctrl.TailLogs(ctx, cmd.Int("lines")))
			return err
		},
	}
}

func qrCmd() *cli.Command {
	return &cli.Command{
		Name:  "qr",
		Usage: "Render the setup page QR code",
		Description: `Print the setup page QR code to the terminal, or write it as a PNG with --png.
The host defaults to the first non-loopback IPv4 address of this device.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host encoded in the setup URL",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port encoded in the setup URL (default: configured server port)",
			},
			&cli.StringFlag{
				Name:  "png",
				Usage: "Write a PNG to this path instead of printing",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			host := cmd.String("host")
			if host == "" {
				host = localAddress()
			}
			port := cmd.Int("port")
			if port == 0 {
				port = cfg.Server.Port
			}

			out := cmd.Root().Writer
			if path := cmd.String("png"); path != "" {
				if err := device.WriteSetupQR(host, port, path); err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "%s -> %s\n", device.SetupURL(host, port), path)
				return err
			}

			text, err := device.SetupQRText(host, port)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%s\n%s\n", text, device.SetupURL(host, port))
			return err
		},
	}
}

// writeReport builds a reporter from config, runs fn and serializes its result.
func writeReport(ctx context.Context, cmd *cli.Command, fn func(context.Context, *system.Reporter) (any, error)) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	reporter, err := newReporter(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ReportHandlerTimeout)
	defer cancel()

	v, err := fn(ctx, reporter)
	if err != nil {
		return err
	}

	w := newWriter(cmd, format)
	defer func() {
		if err := w.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return w.Serialize(ctx, v)
}

func newReporter(cfg *config.Config) (*system.Reporter, error) {
	catalog, err := system.DefaultCatalog(cfg.Probes)
	if err != nil {
		return nil, err
	}
	agg := probe.NewAggregator(newExecutor(), probe.WithDefaultTimeout(cfg.Probes.Timeout))
	return system.NewReporter(agg, catalog), nil
}

// localAddress returns the first non-loopback IPv4 address, or the hostname.
func localAddress() string {
	if addrs, err := net.InterfaceAddrs(); err == nil {
		for _, a := range addrs {
			if ipn, ok := a.(*net.IPNet); ok && !ipn.IP.IsLoopback() && ipn.IP.To4() != nil {
				return ipn.IP.String()
			}
		}
	}
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "localhost"
}
