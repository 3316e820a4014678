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

// Package device implements the one-shot device operations exposed by the
// agent: wifi provisioning, power actions, browser cache and profile
// maintenance, log tailing, enrollment, loader signalling and the setup QR
// code.
//
// Each operation is a single call and return. Power actions acknowledge
// immediately and act after a short delay so the caller can receive the
// acknowledgement before the device goes down.
package device
