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

package serializer

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondJSON(rec, http.StatusCreated, map[string]bool{"success": true})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestRespondJSON_EncodingError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondJSON(rec, http.StatusOK, map[string]float64{"bad": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDecodeJSON(t *testing.T) {
	type req struct {
		SSID string `json:"ssid"`
	}

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"valid", `{"ssid":"Lobby"}`, "Lobby", false},
		{"extra fields ignored", `{"ssid":"Lobby","band":"5g"}`, "Lobby", false},
		{"empty", ``, "", true},
		{"malformed", `{"ssid":`, "", true},
		{"trailing data", `{"ssid":"a"}{"ssid":"b"}`, "", true},
		{"over limit", `{"ssid":"` + strings.Repeat("x", 200) + `"}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var got req

			err := DecodeJSON(r, &got, 128)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.SSID)
		})
	}
}
