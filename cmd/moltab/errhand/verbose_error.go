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

package errhand

// VerboseError is an error that has a short message to print by default and a longer form, with details and the
// chain of causes, to print when the user asks for it.
type VerboseError interface {
	error
	Verbose() string
	ShouldPrintUsage() bool
}

// VerboseErrorFromError returns err if it already is a VerboseError, and otherwise a VerboseError whose message is
// err's message.
func VerboseErrorFromError(err error) VerboseError {
	if err == nil {
		return nil
	}

	if verr, ok := err.(VerboseError); ok {
		return verr
	}

	return BuildDError("%s", err.Error()).Build()
}
