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

package normalize

import (
	"fmt"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/probe"
)

// Rules maps probe keys to the rule that normalizes them.
type Rules map[string]Rule

// Fields holds normalized values keyed by probe key.
type Fields map[string]any

// Apply normalizes every result and every key with a rule. Keys without a
// rule use Trim; keys with a rule but no result are treated as failed.
func (rs Rules) Apply(results probe.Results) Fields {
	out := make(Fields, len(results)+len(rs))
	for key, r := range results {
		out[key] = rs.rule(key).Apply(r)
	}
	for key := range rs {
		if _, ok := results[key]; !ok {
			out[key] = rs.rule(key).Apply(probe.Result{Key: key, Failed: true})
		}
	}
	return out
}

func (rs Rules) rule(key string) Rule {
	if r, ok := rs[key]; ok && r != nil {
		return r
	}
	return Trim{}
}

// String returns the textual value for key, or Sentinel when absent.
func (f Fields) String(key string) string {
	v, ok := f[key]
	if !ok || v == nil {
		return Sentinel
	}
	switch t := v.(type) {
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// Int returns the numeric value for key, or 0 when absent or not numeric.
func (f Fields) Int(key string) int {
	if v, ok := f[key].(int); ok {
		return v
	}
	return 0
}
