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
	"fmt"
	"strings"
)

// Command describes one external invocation.
type Command struct {
	// Name is the executable, looked up in PATH when not absolute.
	Name string `json:"name" yaml:"name" validate:"required"`

	// Args are passed verbatim, without shell interpretation.
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`

	// Env entries (KEY=VALUE) are appended to the executor's base environment.
	Env []string `json:"env,omitempty" yaml:"env,omitempty"`
}

// New returns a Command for name with args.
func New(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// Shell returns a Command that runs script with sh -c.
func Shell(script string) Command {
	return Command{Name: "sh", Args: []string{"-c", script}}
}

// WithEnv returns a copy of c with env appended.
func (c Command) WithEnv(env ...string) Command {
	out := c
	out.Args = append([]string(nil), c.Args...)
	out.Env = append(append([]string(nil), c.Env...), env...)
	return out
}

// IsZero reports whether c has no executable.
func (c Command) IsZero() bool {
	return strings.TrimSpace(c.Name) == ""
}

// String renders c for logs.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, a := range c.Args {
		if strings.ContainsAny(a, " \t'\"|") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
