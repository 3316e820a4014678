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

// Package errors provides structured errors with machine-readable codes.
//
// Probe-level failures never become errors: they are absorbed by the
// aggregator and surface as sentinel values in the report. Only run-level
// problems, such as an invalid probe set, propagate to callers, and they do so
// as a *StructuredError whose Code the HTTP layer maps to a status:
//
//	if err := probe.Validate(specs); err != nil {
//	    if errors.IsCode(err, errors.ErrCodeInvalidConfiguration) {
//	        // reject before any probe launches
//	    }
//	}
package errors
