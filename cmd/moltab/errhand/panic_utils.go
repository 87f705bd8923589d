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

// PanicToVError calls f, turning a panic inside it into a VerboseError with errMsg as its display message.
func PanicToVError(errMsg string, f func() VerboseError) VerboseError {
	var err VerboseError

	func() {
		defer func() {
			if r := recover(); r != nil {
				bdr := BuildDError("%s", errMsg)

				if recErr, ok := r.(error); ok {
					bdr.AddCause(recErr)
				} else {
					bdr.AddDetails("%v", r)
				}

				err = bdr.Build()
			}
		}()
		err = f()
	}()

	return err
}
