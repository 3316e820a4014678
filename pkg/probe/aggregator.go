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

package probe

import (
	"context"
	stderrors "errors"
	"log/slog"
	"maps"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/command"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/defaults"
)

// CompletionHook is called once per run after every probe has settled.
type CompletionHook func(runID string, results Results)

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithDefaultTimeout sets the timeout applied to specs without one.
func WithDefaultTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.defaultTimeout = d
		}
	}
}

// WithCompletionHook registers a hook fired exactly once per run.
func WithCompletionHook(h CompletionHook) Option {
	return func(a *Aggregator) {
		a.onComplete = h
	}
}

// Aggregator launches probe runs. It holds no per-run state and is safe for
// concurrent use.
type Aggregator struct {
	exec           command.Executor
	defaultTimeout time.Duration
	onComplete     CompletionHook
}

// NewAggregator returns an Aggregator that executes probes through exec.
func NewAggregator(exec command.Executor, opts ...Option) *Aggregator {
	a := &Aggregator{
		exec:           exec,
		defaultTimeout: defaults.ProbeTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run starts a run for specs and waits for it to complete. Cancelling ctx
// still yields a full result set, with the unfinished probes marked failed.
func (a *Aggregator) Run(ctx context.Context, specs []Spec) (Results, error) {
	run, err := a.Start(ctx, specs)
	if err != nil {
		return nil, err
	}
	return run.Wait(context.WithoutCancel(ctx))
}

// Start validates specs and launches every probe concurrently. The returned
// Run completes once all probes have settled. Cancelling ctx settles the
// outstanding probes as failed.
func (a *Aggregator) Start(ctx context.Context, specs []Spec) (*Run, error) {
	if err := Validate(specs); err != nil {
		return nil, err
	}

	run := &Run{
		id:    uuid.NewString(),
		specs: make([]Spec, len(specs)),
		slots: make([]Result, len(specs)),
		done:  make(chan struct{}),
	}
	for i, s := range specs {
		if s.Timeout == 0 {
			s.Timeout = a.defaultTimeout
		}
		run.specs[i] = s
	}

	runsInFlight.Inc()
	slog.Debug("starting aggregation run",
		slog.String("run", run.id),
		slog.Int("probes", len(specs)))

	go a.execute(ctx, run)

	return run, nil
}

// execute waits on every probe of run, then publishes the results.
func (a *Aggregator) execute(ctx context.Context, run *Run) {
	start := time.Now()

	// Probe goroutines never return an error, so the group is a plain barrier
	// and one failed probe never cancels the others.
	var g errgroup.Group
	for i := range run.specs {
		g.Go(func() error {
			run.slots[i] = a.probe(ctx, run.specs[i])
			return nil
		})
	}
	_ = g.Wait()

	results := make(Results, len(run.slots))
	failed := 0
	for _, r := range run.slots {
		results[r.Key] = r
		if r.Failed {
			failed++
		}
	}
	run.results = results

	elapsed := time.Since(start)
	runDuration.Observe(elapsed.Seconds())
	runsInFlight.Dec()
	slog.Info("aggregation run complete",
		slog.String("run", run.id),
		slog.Int("probes", len(results)),
		slog.Int("failed", failed),
		slog.Duration("duration", elapsed))

	if a.onComplete != nil {
		a.onComplete(run.id, maps.Clone(results))
	}
	close(run.done)
}

// probe settles one spec. The executor's reply races the probe deadline;
// a reply that arrives after the deadline is dropped into the buffered channel.
func (a *Aggregator) probe(ctx context.Context, s Spec) Result {
	start := time.Now()

	pctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	reply := make(chan command.Result, 1)
	go func() {
		reply <- command.Chain(pctx, a.exec, s.commands()...)
	}()

	res := Result{Key: s.Key}
	select {
	case out := <-reply:
		if out.Failed {
			res.Failed = true
			res.TimedOut = expired(ctx, pctx)
		} else {
			res.Output = out.Stdout
		}
	case <-pctx.Done():
		res.Failed = true
		res.TimedOut = expired(ctx, pctx)
	}
	res.Duration = time.Since(start)

	probeDuration.WithLabelValues(s.Key).Observe(res.Duration.Seconds())
	probeOutcomes.WithLabelValues(s.Key, outcomeOf(res)).Inc()
	slog.Debug("probe settled",
		slog.String("key", s.Key),
		slog.String("outcome", outcomeOf(res)),
		slog.Duration("duration", res.Duration))

	return res
}

// expired reports whether the probe's own deadline elapsed while its parent
// context was still live.
func expired(parent, probe context.Context) bool {
	return parent.Err() == nil && stderrors.Is(probe.Err(), context.DeadlineExceeded)
}
