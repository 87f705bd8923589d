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

package commands

import (
	"github.com/moltab/moltab/cmd/moltab/cli"
	"github.com/moltab/moltab/cmd/moltab/errhand"
)

// HandleVErrAndExitCode prints verr, in its verbose form when verbose is set, followed by the usage when the error
// asks for it. It returns exitCode, or 0 when verr is nil.
func HandleVErrAndExitCode(verr errhand.VerboseError, verbose bool, usage cli.UsagePrinter, exitCode int) int {
	if verr == nil {
		return 0
	}

	msg := verr.Error()
	if verbose {
		msg = verr.Verbose()
	}

	if len(msg) > 0 {
		cli.PrintErrln(msg)
	}

	if verr.ShouldPrintUsage() && usage != nil {
		usage()
	}

	return exitCode
}
