// Copyright 2026 Dolthub, Inc.
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

package main

import (
	"context"
	"os"

	"github.com/moltab/moltab/cmd/moltab/cli"
	"github.com/moltab/moltab/cmd/moltab/commands"
	"github.com/moltab/moltab/cmd/moltab/errhand"
	"github.com/moltab/moltab/libraries/utils/filesys"
)

func main() {
	os.Exit(runMain())
}

func runMain() int {
	cmd := commands.CompareCmd{}
	status := commands.ExitSuccess

	verr := errhand.PanicToVError("moltab finished with an unexpected error", func() errhand.VerboseError {
		status = cmd.Exec(context.Background(), "moltab", os.Args[1:], filesys.LocalFS)
		return nil
	})

	if verr != nil {
		cli.PrintErrln(verr.Verbose())
		return 9
	}

	return status
}
