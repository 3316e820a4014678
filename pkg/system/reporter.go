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

import (
	"context"
	"slices"
	"strings"
	"sync/atomic"

	"k8s.io/utils/ptr"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/normalize"
	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/probe"
)

// ProbeRunner runs one aggregation over a spec set.
type ProbeRunner interface {
	Run(ctx context.Context, specs []probe.Spec) (probe.Results, error)
}

// Reporter builds reports from fresh probe runs.
type Reporter struct {
	runner  ProbeRunner
	catalog atomic.Pointer[Catalog]
}

// NewReporter returns a Reporter that runs catalog probes through runner.
func NewReporter(runner ProbeRunner, catalog *Catalog) *Reporter {
	r := &Reporter{runner: runner}
	r.catalog.Store(catalog)
	return r
}

// SetCatalog replaces the catalog used by subsequent reports. Reports already
// in progress finish with the catalog they started with.
func (r *Reporter) SetCatalog(c *Catalog) {
	r.catalog.Store(c)
}

// Catalog returns the current catalog.
func (r *Reporter) Catalog() *Catalog {
	return r.catalog.Load()
}

// SystemReport runs the system probes and returns the normalized report.
func (r *Reporter) SystemReport(ctx context.Context) (*Report, error) {
	c := r.catalog.Load()
	results, err := r.runner.Run(ctx, c.System)
	if err != nil {
		return nil, err
	}
	f := c.Rules.Apply(results)

	return &Report{
		Hostname:          f.String(KeyHostname),
		CPUTemp:           f.String(KeyCPUTemp),
		Uptime:            f.String(KeyUptime),
		RAMUsage:          f.String(KeyRAMUsage),
		RAMPercent:        f.Int(KeyRAMPercent),
		StorageUsage:      f.String(KeyStorageUsage),
		StoragePercent:    f.Int(KeyStoragePercent),
		OSVersion:         f.String(KeyOSVersion),
		IPAddress:         f.String(KeyIPAddress),
		DNS:               f.String(KeyDNS),
		Interfaces:        f.String(KeyInterfaces),
		DisplayResolution: f.String(KeyDisplayResolution),
		DisplayScale:      f.String(KeyDisplayScale),
	}, nil
}

// NetworkStatus runs the connectivity probes.
func (r *Reporter) NetworkStatus(ctx context.Context) (*NetworkStatus, error) {
	c := r.catalog.Load()
	results, err := r.runner.Run(ctx, c.Network)
	if err != nil {
		return nil, err
	}
	f := c.Rules.Apply(results)

	status := &NetworkStatus{
		EthernetConnected: routesVia(f.String(KeyDefaultRoute), c.WiredInterfaces),
	}
	if ssid := f.String(KeySSID); ssid != "" && ssid != normalize.Sentinel {
		status.WifiConnected = true
		status.SSID = ptr.To(ssid)
	}
	return status, nil
}

// routesVia reports whether the route table output names any of ifaces.
func routesVia(routes string, ifaces []string) bool {
	for _, line := range strings.Split(routes, "\n") {
		for _, field := range strings.Fields(line) {
			if slices.Contains(ifaces, field) {
				return true
			}
		}
	}
	return false
}
