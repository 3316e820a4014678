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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeFailed  = "failed"
	outcomeTimeout = "timeout"
)

var (
	probeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ods_probe_duration_seconds",
			Help:    "Time taken by individual probes to settle",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 3, 5},
		},
		[]string{"key"},
	)

	probeOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ods_probe_outcomes_total",
			Help: "Total number of settled probes by outcome",
		},
		[]string{"key", "outcome"}, // success, failed or timeout
	)

	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ods_aggregation_run_duration_seconds",
			Help:    "Time taken for every probe of a run to settle",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 3, 5, 10},
		},
	)

	runsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ods_aggregation_runs_in_flight",
			Help: "Number of aggregation runs waiting on probes",
		},
	)
)

func outcomeOf(r Result) string {
	switch {
	case r.TimedOut:
		return outcomeTimeout
	case r.Failed:
		return outcomeFailed
	default:
		return outcomeSuccess
	}
}
