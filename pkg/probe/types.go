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
	"time"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/command"
)

// Spec describes one probe.
type Spec struct {
	// Key identifies the probe's result. Unique within a run.
	Key string `json:"key" yaml:"key"`

	// Command is the primary invocation.
	Command command.Command `json:"command" yaml:"command"`

	// Fallbacks run in order when the previous command failed or printed
	// only whitespace. They share the probe's timeout.
	Fallbacks []command.Command `json:"fallbacks,omitempty" yaml:"fallbacks,omitempty"`

	// Timeout bounds the whole probe. Zero uses the aggregator default.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

func (s Spec) commands() []command.Command {
	cmds := make([]command.Command, 0, 1+len(s.Fallbacks))
	cmds = append(cmds, s.Command)
	return append(cmds, s.Fallbacks...)
}

// Result is the settled outcome of one probe.
type Result struct {
	Key string `json:"key" yaml:"key"`

	// Output is the captured stdout. Empty whenever Failed is set.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	Failed bool `json:"failed" yaml:"failed"`

	// TimedOut is set when the probe's own deadline elapsed. Implies Failed.
	TimedOut bool `json:"timedOut" yaml:"timedOut"`

	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Results maps probe keys to their settled outcome.
type Results map[string]Result
