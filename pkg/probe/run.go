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
	"maps"
)

// Run is one execution of a spec set. Slots are written once each by the
// probe goroutines; results and done are published once by the coordinator.
type Run struct {
	id      string
	specs   []Spec
	slots   []Result
	results Results
	done    chan struct{}
}

// ID returns the run's unique identifier.
func (r *Run) ID() string {
	return r.id
}

// Done is closed once every probe of the run has settled.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the run completes or ctx is done. The returned map holds
// exactly one entry per spec and is owned by the caller.
func (r *Run) Wait(ctx context.Context) (Results, error) {
	select {
	case <-r.done:
		return maps.Clone(r.results), nil
	case <-ctx.Done():
		// Probes settle quickly once the parent is cancelled; prefer the
		// completed run if it is already there.
		select {
		case <-r.done:
			return maps.Clone(r.results), nil
		default:
			return nil, ctx.Err()
		}
	}
}
