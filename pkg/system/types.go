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

package system

// Report is the system information snapshot.
type Report struct {
	Hostname          string `json:"hostname" yaml:"hostname"`
	CPUTemp           string `json:"cpu_temp" yaml:"cpu_temp"`
	Uptime            string `json:"uptime" yaml:"uptime"`
	RAMUsage          string `json:"ram_usage" yaml:"ram_usage"`
	RAMPercent        int    `json:"ram_percent" yaml:"ram_percent"`
	StorageUsage      string `json:"storage_usage" yaml:"storage_usage"`
	StoragePercent    int    `json:"storage_percent" yaml:"storage_percent"`
	OSVersion         string `json:"os_version" yaml:"os_version"`
	IPAddress         string `json:"ip_address" yaml:"ip_address"`
	DNS               string `json:"dns" yaml:"dns"`
	Interfaces        string `json:"interfaces" yaml:"interfaces"`
	DisplayResolution string `json:"display_resolution" yaml:"display_resolution"`
	DisplayScale      string `json:"display_scale" yaml:"display_scale"`
}

// NetworkStatus reports connectivity. SSID is nil when no wifi network is joined.
type NetworkStatus struct {
	WifiConnected     bool    `json:"wifi_connected" yaml:"wifi_connected"`
	EthernetConnected bool    `json:"ethernet_connected" yaml:"ethernet_connected"`
	SSID              *string `json:"ssid" yaml:"ssid"`
}
