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

package heartbeat

import (
	"context"
	stderrors "errors"
	"log/slog"
	"text/template"
	"time"

	"github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/types"
	"github.com/robfig/cron/v3"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/config"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/defaults"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/errors"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/system"
)

// ReportSource produces the report a heartbeat carries.
type ReportSource interface {
	SystemReport(ctx context.Context) (*system.Report, error)
}

// Sender delivers a rendered message.
type Sender interface {
	Send(message string, params *types.Params) []error
}

// SenderFactory creates a Sender for a set of service URLs.
type SenderFactory func(urls ...string) (Sender, error)

func shoutrrrSender(urls ...string) (Sender, error) {
	return shoutrrr.CreateSender(urls...)
}

// Option configures a Heartbeat.
type Option func(*Heartbeat)

// WithSenderFactory replaces the shoutrrr sender.
func WithSenderFactory(f SenderFactory) Option {
	return func(h *Heartbeat) {
		h.newSender = f
	}
}

// WithVersion sets the version reported in messages.
func WithVersion(v string) Option {
	return func(h *Heartbeat) {
		h.version = v
	}
}

// WithTimeout bounds a single heartbeat.
func WithTimeout(d time.Duration) Option {
	return func(h *Heartbeat) {
		h.timeout = d
	}
}

// Heartbeat sends scheduled status summaries.
type Heartbeat struct {
	source    ReportSource
	schedule  string
	urls      []string
	tmpl      *template.Template
	version   string
	timeout   time.Duration
	newSender SenderFactory
	sender    Sender
	now       func() time.Time
}

// New validates cfg and returns a Heartbeat reading reports from source.
func New(cfg config.HeartbeatConfig, source ReportSource, opts ...Option) (*Heartbeat, error) {
	tmpl, err := Parse(cfg.Template)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid heartbeat template", err)
	}

	schedule := cfg.Schedule
	if schedule == "" {
		schedule = defaults.HeartbeatSchedule
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfiguration, "invalid heartbeat schedule", err,
			map[string]any{"schedule": schedule})
	}

	h := &Heartbeat{
		source:    source,
		schedule:  schedule,
		urls:      cfg.URLs,
		tmpl:      tmpl,
		version:   "dev",
		timeout:   defaults.HeartbeatTimeout,
		newSender: shoutrrrSender,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}

	if h.Enabled() {
		s, err := h.newSender(h.urls...)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid heartbeat URL", err)
		}
		h.sender = s
	}
	return h, nil
}

// Enabled reports whether any destination is configured.
func (h *Heartbeat) Enabled() bool {
	return len(h.urls) > 0
}

// Beat collects one report and sends it to every destination.
func (h *Heartbeat) Beat(ctx context.Context) error {
	if !h.Enabled() {
		return nil
	}

	report, err := h.source.SystemReport(ctx)
	if err != nil {
		heartbeats.WithLabelValues(outcomeReportFailed).Inc()
		return errors.Wrap(errors.ErrCodeInternal, "heartbeat report failed", err)
	}

	msg, err := Render(h.tmpl, Data{Report: report, Version: h.version, Time: h.now()})
	if err != nil {
		heartbeats.WithLabelValues(outcomeReportFailed).Inc()
		return errors.Wrap(errors.ErrCodeInternal, "heartbeat render failed", err)
	}

	params := types.Params{}
	if err := stderrors.Join(h.sender.Send(msg, &params)...); err != nil {
		heartbeats.WithLabelValues(outcomeSendFailed).Inc()
		return errors.Wrap(errors.ErrCodeUnavailable, "heartbeat delivery failed", err)
	}

	heartbeats.WithLabelValues(outcomeSent).Inc()
	slog.Debug("heartbeat sent", slog.Int("destinations", len(h.urls)))
	return nil
}

// Start runs the schedule until ctx is done. It returns immediately when the
// heartbeat is disabled.
func (h *Heartbeat) Start(ctx context.Context) error {
	if !h.Enabled() {
		slog.Debug("heartbeat disabled, no destinations configured")
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(h.schedule, func() { h.tick(ctx) }); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid heartbeat schedule", err)
	}

	slog.Info("heartbeat scheduled",
		slog.String("schedule", h.schedule),
		slog.Int("destinations", len(h.urls)))

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

func (h *Heartbeat) tick(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := h.Beat(ctx); err != nil {
		slog.Warn("heartbeat failed", slog.String("error", err.Error()))
	}
}
