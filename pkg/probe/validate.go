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
	"fmt"
	"strings"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/errors"
)

// Validate checks a spec set before any probe is launched.
func Validate(specs []Spec) error {
	if len(specs) == 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "probe set is empty")
	}

	seen := make(map[string]int, len(specs))
	for i, s := range specs {
		if strings.TrimSpace(s.Key) == "" {
			return errors.NewWithContext(errors.ErrCodeInvalidConfiguration,
				fmt.Sprintf("probe at index %d has no key", i),
				map[string]any{"index": i})
		}
		if prev, dup := seen[s.Key]; dup {
			return errors.NewWithContext(errors.ErrCodeInvalidConfiguration,
				fmt.Sprintf("duplicate probe key %q", s.Key),
				map[string]any{"key": s.Key, "first": prev, "second": i})
		}
		seen[s.Key] = i

		if s.Timeout < 0 {
			return errors.NewWithContext(errors.ErrCodeInvalidConfiguration,
				fmt.Sprintf("probe %q has a negative timeout", s.Key),
				map[string]any{"key": s.Key, "timeout": s.Timeout.String()})
		}
		if s.Command.IsZero() {
			return errors.NewWithContext(errors.ErrCodeInvalidConfiguration,
				fmt.Sprintf("probe %q has no command", s.Key),
				map[string]any{"key": s.Key})
		}
		for j, fb := range s.Fallbacks {
			if fb.IsZero() {
				return errors.NewWithContext(errors.ErrCodeInvalidConfiguration,
					fmt.Sprintf("probe %q fallback %d has no command", s.Key, j),
					map[string]any{"key": s.Key, "fallback": j})
			}
		}
	}
	return nil
}
