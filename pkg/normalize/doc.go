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

// Package normalize turns raw probe results into display-ready field values.
//
// Every probe key is paired with a Rule. Rules never fail: a failed, timed
// out, or unparseable probe produces the rule's fallback. Textual fields fall
// back to Sentinel ("—"), numeric percentage fields fall back to 0.
//
// Rules:
//   - Trim: trimmed output, or the fallback when empty.
//   - Scaled: output parsed as a number, multiplied by a factor and rendered
//     with fixed precision and a unit suffix ("45000" -> "45.0°C").
//   - Percentage: leading integer of the output ("42%" -> 42).
//   - Default: trimmed output, or a fixed value when empty ("" -> "1").
//
// Fields are recomputed from the results of every run; nothing is cached.
package normalize
