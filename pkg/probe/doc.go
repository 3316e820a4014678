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

// Package probe runs a set of independent probes concurrently and joins
// their results into one keyed collection.
//
// A probe is a Spec: a unique key, a command with optional ordered
// fallbacks, and a timeout. The Aggregator launches every probe of a run at
// once, bounds each by its own timeout, and waits until every probe has
// settled. A probe that fails or exceeds its deadline settles as failed and
// never delays or cancels its siblings.
//
// Usage:
//
//	agg := probe.NewAggregator(command.NewExecutor())
//	results, err := agg.Run(ctx, []probe.Spec{
//	    {Key: "hostname", Command: command.New("hostname")},
//	    {Key: "uptime", Command: command.New("uptime", "-p")},
//	})
//
// Run and Start reject invalid spec sets (empty, duplicate or empty keys,
// negative timeouts, missing commands) with an INVALID_CONFIGURATION error
// before anything is launched.
//
// Each run is independent: concurrent runs share no mutable state, and a
// probe's late reply after its deadline is discarded.
package probe
