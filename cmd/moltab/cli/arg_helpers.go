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

package cli

import (
	"github.com/moltab/moltab/libraries/utils/argparser"
)

type UsagePrinter func()

// ParseArgs parses args with ap. When help was asked for the help text is printed and terminate is true with a
// status of 0. When the args do not parse the error and usage are printed and terminate is true with a status of 1.
func ParseArgs(ap *argparser.ArgParser, args []string, helpPrinter, usagePrinter UsagePrinter) (apr *argparser.ArgParseResults, terminate bool, status int) {
	apr, err := ap.Parse(args)

	if err == argparser.ErrHelp {
		helpPrinter()
		return nil, true, 0
	} else if err != nil {
		PrintErrln(err.Error())
		usagePrinter()
		return nil, true, 1
	}

	return apr, false, 0
}

func HelpAndUsagePrinters(commandStr string, docs CommandDocumentationContent, ap *argparser.ArgParser) (UsagePrinter, UsagePrinter) {
	return func() {
			PrintHelpText(commandStr, docs.ShortDesc, docs.LongDesc, docs.Synopsis, ap)
		}, func() {
			PrintUsage(commandStr, docs.Synopsis, ap)
		}
}
