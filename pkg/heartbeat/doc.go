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

// Package heartbeat pushes a periodic status summary to notification
// services.
//
// On every tick of a cron schedule the heartbeat collects a fresh system
// report, renders it with a Go text/template (Sprig functions available) and
// sends the message to each configured shoutrrr service URL. Delivery
// failures are logged and counted; they never stop the schedule.
//
// A heartbeat with no URLs is disabled and Start returns immediately.
package heartbeat
