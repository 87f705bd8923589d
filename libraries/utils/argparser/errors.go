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

package argparser

import "errors"

// ErrHelp is returned by Parse when --help or -h is among the arguments.
var ErrHelp = errors.New("Help")

// UnknownArgumentParam is returned by Parse for an option that was never registered with the parser.
type UnknownArgumentParam struct {
	name string
}

func (unkn UnknownArgumentParam) Error() string {
	return "error: unknown option `" + unkn.name + "'"
}
