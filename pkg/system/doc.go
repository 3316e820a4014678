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

// Package system composes the device status reports served by the agent.
//
// A Catalog lists the probes behind each report and the rules that
// normalize their output. DefaultCatalog returns the built-in probes with
// any configured overrides applied. A Reporter runs a catalog through the
// probe aggregator and shapes the normalized fields into a Report or a
// NetworkStatus.
//
// Every report is computed from a fresh aggregation run. A probe that fails
// or times out degrades to a placeholder value; it never fails the report.
package system
