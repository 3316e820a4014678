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

package heartbeat

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/system"
)

// DefaultTemplate is used when no template is configured.
const DefaultTemplate = `ODS {{ .Report.Hostname }} ({{ .Version }})
uptime: {{ .Report.Uptime }}
cpu: {{ .Report.CPUTemp }}  ram: {{ .Report.RAMPercent }}%  disk: {{ .Report.StoragePercent }}%
ip: {{ .Report.IPAddress }}  display: {{ .Report.DisplayResolution }}
os: {{ .Report.OSVersion | trunc 60 }}
at: {{ .Time | date "2006-01-02T15:04:05Z07:00" }}`

// Data is the value templates are executed against.
type Data struct {
	Report  *system.Report
	Version string
	Time    time.Time
}

// Parse compiles a heartbeat template with the Sprig function map.
func Parse(text string) (*template.Template, error) {
	if text == "" {
		text = DefaultTemplate
	}
	t, err := template.New("heartbeat").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return t, nil
}

// Render executes t against data.
func Render(t *template.Template, data Data) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}
