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
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/probe"
)

// Sentinel is the placeholder for a textual field whose probe produced nothing usable.
const Sentinel = "—"

// Rule converts one probe result into a field value. Implementations never
// panic and never return an error.
type Rule interface {
	Apply(r probe.Result) any
}

// Trim passes the trimmed output through.
type Trim struct {
	// Fallback replaces empty or failed output. Empty means Sentinel.
	Fallback string
}

// Apply implements Rule.
func (t Trim) Apply(r probe.Result) any {
	if v := text(r); v != "" {
		return v
	}
	return orSentinel(t.Fallback)
}

// Scaled parses the output as a number and renders value*Factor with
// Precision decimals followed by Unit.
type Scaled struct {
	Factor    float64
	Precision int
	Unit      string
	Fallback  string
}

// Apply implements Rule.
func (s Scaled) Apply(r probe.Result) any {
	v := text(r)
	if v == "" {
		return orSentinel(s.Fallback)
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return orSentinel(s.Fallback)
	}
	factor := s.Factor
	if factor == 0 {
		factor = 1
	}
	return strconv.FormatFloat(n*factor, 'f', max(s.Precision, 0), 64) + s.Unit
}

// Percentage extracts the leading integer of the output. Anything else is 0.
type Percentage struct{}

// Apply implements Rule.
func (Percentage) Apply(r probe.Result) any {
	v := text(r)
	end := 0
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(v[:end])
	if err != nil {
		return 0
	}
	return n
}

// Default passes the trimmed output through, substituting Value when empty.
type Default struct {
	Value string
}

// Apply implements Rule.
func (d Default) Apply(r probe.Result) any {
	if v := text(r); v != "" {
		return v
	}
	return d.Value
}

// text returns the trimmed output of a successful probe.
func text(r probe.Result) string {
	if r.Failed {
		return ""
	}
	return strings.TrimFunc(r.Output, unicode.IsSpace)
}

func orSentinel(s string) string {
	if s == "" {
		return Sentinel
	}
	return s
}
