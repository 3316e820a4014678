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

// Package serializer renders values as JSON, YAML or an aligned table.
//
// The package supports three output formats:
//   - JSON: indented, machine-readable
//   - YAML: human-readable, field names from yaml tags
//   - Table: one FIELD/VALUE row per leaf, keys flattened with dots and
//     named after the json tags
//
// Usage:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatTable, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, report); err != nil {
//		return err
//	}
//
// For HTTP handlers:
//
//	serializer.RespondJSON(w, http.StatusOK, report)
//	if err := serializer.DecodeJSON(r, &req, 1<<16); err != nil { ... }
//
// DetectFormat picks table output for terminals and JSON otherwise.
package serializer
