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

package device

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rob-jonesdevlab/ods-player-atlas/pkg/command"
)

func TestCommandPower(t *testing.T) {
	exec := &recorder{replies: map[string]command.Result{
		"reboot":   {},
		"shutdown": {},
	}}
	p := &CommandPower{exec: exec}

	require.NoError(t, p.Reboot(context.Background()))
	require.NoError(t, p.PowerOff(context.Background()))

	require.Len(t, exec.calls, 2)
	assert.Equal(t, "reboot", exec.calls[0].Name)
	assert.Equal(t, []string{"-h", "now"}, exec.calls[1].Args)
}

func TestCommandPower_Failure(t *testing.T) {
	p := &CommandPower{exec: &recorder{}}
	assert.Error(t, p.Reboot(context.Background()))
}

func TestFallbackPower(t *testing.T) {
	broken := &powerSpy{actions: make(chan string, 1), err: stderrors.New("no bus")}
	working := newPowerSpy()
	p := &fallbackPower{managers: []PowerManager{broken, working}}

	require.NoError(t, p.Reboot(context.Background()))
	assert.Equal(t, "reboot", <-broken.actions)
	assert.Equal(t, "reboot", <-working.actions)
}

func TestFallbackPower_AllFail(t *testing.T) {
	a := &powerSpy{actions: make(chan string, 1), err: stderrors.New("a")}
	b := &powerSpy{actions: make(chan string, 1), err: stderrors.New("b")}
	p := &fallbackPower{managers: []PowerManager{a, b}}

	err := p.PowerOff(context.Background())
	assert.EqualError(t, err, "b")
}

func TestNewPowerManager(t *testing.T) {
	exec := &recorder{}

	_, ok := NewPowerManager(exec, false).(*CommandPower)
	assert.True(t, ok)

	fb, ok := NewPowerManager(exec, true).(*fallbackPower)
	require.True(t, ok)
	require.Len(t, fb.managers, 2)
	assert.IsType(t, &SystemdPower{}, fb.managers[0])
}
