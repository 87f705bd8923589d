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

package iohelp

import (
	"errors"
	"io"
)

// ErrShortWrite is returned when a writer accepts fewer bytes than it was given without returning an error.
var ErrShortWrite = errors.New("short write")

// WriteAll writes all of data to wr, returning an error if it could not.
func WriteAll(wr io.Writer, data []byte) error {
	for len(data) > 0 {
		n, err := wr.Write(data)

		if err != nil {
			return err
		}

		if n == 0 {
			return ErrShortWrite
		}

		data = data[n:]
	}

	return nil
}

// WriteLine writes line followed by a newline.
func WriteLine(wr io.Writer, line string) error {
	return WriteAll(wr, []byte(line+"\n"))
}

// WriteLines writes each line followed by a newline.
func WriteLines(wr io.Writer, lines ...string) error {
	for _, line := range lines {
		if err := WriteLine(wr, line); err != nil {
			return err
		}
	}

	return nil
}

type nopWrCloser struct {
	io.Writer
}

func (nopWrCloser) Close() error {
	return nil
}

// NopWrCloser returns an io.WriteCloser whose Close does nothing, for handing writers such as os.Stdout to code that
// closes what it writes to.
func NopWrCloser(wr io.Writer) io.WriteCloser {
	return nopWrCloser{wr}
}
