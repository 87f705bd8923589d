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

const (
	ConfigFileFlag  = "config"
	ExtensionsFlag  = "extensions"
	DelimFlag       = "delim"
	KeyColFlag      = "key-col"
	NameColFlag     = "name-col"
	FloatColsFlag   = "float-cols"
	StringColsFlag  = "string-cols"
	InferKindsFlag  = "infer-kinds"
	SkipBadRowsFlag = "skip-bad-rows"
	OpsFlag         = "op"
	FormatFlag      = "result-format"
	VerboseFlag     = "verbose"
	LogLevelFlag    = "log-level"
	NoColorFlag     = "no-color"
)
