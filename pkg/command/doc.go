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

// Package command runs external commands on behalf of probes and device actions.
//
// A Command is an argv descriptor; nothing is passed through a shell unless
// the caller asks for one with Shell. Execution goes through the
// k8s.io/utils/exec abstraction so tests can substitute
// k8s.io/utils/exec/testing.FakeExec.
//
// Every outcome of running a command is a Result: a missing executable, a
// non-zero exit, and an expired context all set Failed and never panic.
//
//	exec := command.NewExecutor()
//	res := exec.Execute(ctx, command.New("hostname"))
//	if !res.Failed {
//	    fmt.Println(strings.TrimSpace(res.Stdout))
//	}
//
// Chain runs an explicit ordered fallback list, returning the first command
// that succeeds with non-blank output:
//
//	res := command.Chain(ctx, exec,
//	    command.Shell("grep VERSION= /etc/armbian-release | cut -d= -f2"),
//	    command.New("lsb_release", "-d", "-s"),
//	)
package command
