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

import (
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestDError(t *testing.T) {
	cause := errors.New("file not found")
	verr := BuildDError("Failed to load table from %s", "a.csv").
		AddDetails("tried %d times", 2).
		AddDetails("gave up").
		AddCause(cause).
		Build()

	assert.Equal(t, "Failed to load table from a.csv", verr.Error())
	assert.Equal(t, "Failed to load table from a.csv\ntried 2 times\ngave up\ncause:\n\t\tfile not found", verr.Verbose())
	assert.False(t, verr.ShouldPrintUsage())
	assert.True(t, errors.Is(verr, cause))

	nested := BuildDError("outer").AddCause(BuildDError("inner").AddDetails("line1\nline2").Build()).Build()
	assert.Equal(t, "outer\ncause:\n\t\tinner\n\t\tline1\n\t\tline2", nested.Verbose())

	usage := BuildDError("bad args").SetPrintUsage().Build()
	assert.True(t, usage.ShouldPrintUsage())
	assert.Equal(t, "bad args", usage.Verbose())
}

func TestBuildIf(t *testing.T) {
	assert.Nil(t, BuildIf(nil, "never").AddDetails("x").AddCause(errors.New("y")).SetPrintUsage().Build())

	verr := BuildIf(errors.New("boom"), "it failed").Build()
	require.NotNil(t, verr)
	assert.True(t, strings.HasSuffix(verr.Verbose(), "boom"))
}

func TestVerboseErrorFromError(t *testing.T) {
	assert.Nil(t, VerboseErrorFromError(nil))

	verr := BuildDError("already verbose").Build()
	assert.Equal(t, verr, VerboseErrorFromError(verr))

	converted := VerboseErrorFromError(errors.New("plain"))
	assert.Equal(t, "plain", converted.Error())
}

func TestPanicToVError(t *testing.T) {
	verr := PanicToVError("panicked", func() VerboseError {
		panic("something bad")
	})
	require.NotNil(t, verr)
	assert.Equal(t, "panicked\nsomething bad", verr.Verbose())

	cause := errors.New("an error value")
	verr = PanicToVError("panicked", func() VerboseError {
		panic(cause)
	})
	assert.True(t, errors.Is(verr, cause))

	assert.Nil(t, PanicToVError("unused", func() VerboseError {
		return nil
	}))
}

func TestPanicToVErrorKeepsPercentLiteral(t *testing.T) {
	verr := PanicToVError("loaded 100% of %s", func() VerboseError {
		panic("50% done %d")
	})
	require.NotNil(t, verr)
	assert.Equal(t, "loaded 100% of %s", verr.Error())
	assert.Equal(t, "loaded 100% of %s\n50% done %d", verr.Verbose())

	verr = PanicToVError("panicked", func() VerboseError {
		panic(42)
	})
	assert.Equal(t, "panicked\n42", verr.Verbose())
}
