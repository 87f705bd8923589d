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

package datatable

import (
	"fmt"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// InvalidKind is the Kind of the zero Value.
	InvalidKind Kind = iota
	// FloatKind values hold a float64.
	FloatKind
	// StringKind values hold a UTF-8 string.
	StringKind
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	case InvalidKind:
		return "invalid"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is the value of a Property. It is a closed sum type: either a float64 (FloatKind) or a string (StringKind).
// Code consuming a Value should switch over Kind and handle both variants; the zero Value has InvalidKind and is
// never stored in a Record built by this package.
type Value struct {
	kind Kind
	f    float64
	s    string
}

// NewFloat returns a FloatKind Value.
func NewFloat(f float64) Value {
	return Value{kind: FloatKind, f: f}
}

// NewString returns a StringKind Value.
func NewString(s string) Value {
	return Value{kind: StringKind, s: s}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// AsFloat returns the float held by v. ok is false if v is not a FloatKind value.
func (v Value) AsFloat() (f float64, ok bool) {
	if v.kind != FloatKind {
		return 0, false
	}

	return v.f, true
}

// AsString returns the string held by v. ok is false if v is not a StringKind value.
func (v Value) AsString() (s string, ok bool) {
	if v.kind != StringKind {
		return "", false
	}

	return v.s, true
}

// Equals reports whether v and other hold the same variant and the same value. Floats are compared with ==, so NaN
// is never equal to itself.
func (v Value) Equals(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case FloatKind:
		return v.f == other.f
	case StringKind:
		return v.s == other.s
	case InvalidKind:
		return true
	default:
		panic(fmt.Sprintf("unknown value kind: %v", v.kind))
	}
}

// String implements fmt.Stringer using FormatValue.
func (v Value) String() string {
	return FormatValue(v)
}

// FormatValue returns the display text for a value. Strings are returned unchanged. Floats use a fixed, locale
// independent rendering with six digits after the decimal point, e.g. 180.16 becomes "180.160000".
func FormatValue(v Value) string {
	switch v.kind {
	case FloatKind:
		return strconv.FormatFloat(v.f, 'f', 6, 64)
	case StringKind:
		return v.s
	default:
		panic(fmt.Sprintf("cannot format value of kind %v", v.kind))
	}
}
