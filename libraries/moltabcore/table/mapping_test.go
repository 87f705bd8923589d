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

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moltab/moltab/libraries/moltabcore/datatable"
)

func strs(vals ...interface{}) []*string {
	row := make([]*string, len(vals))
	for i, v := range vals {
		if s, ok := v.(string); ok {
			row[i] = &s
		}
	}

	return row
}

func props(kvs ...interface{}) datatable.Properties {
	var ps []datatable.Property
	for i := 0; i < len(kvs); i += 2 {
		switch v := kvs[i+1].(type) {
		case float64:
			ps = append(ps, datatable.NewProperty(kvs[i].(string), datatable.NewFloat(v)))
		case string:
			ps = append(ps, datatable.NewProperty(kvs[i].(string), datatable.NewString(v)))
		}
	}

	return datatable.NewProperties(ps...)
}

func TestDefaultMapping(t *testing.T) {
	header := []string{"Molecule", "Solubility", "Molecular Weight", "Notes"}
	rc, err := DefaultRecordMapping().BindHeader(header)
	require.NoError(t, err)

	tests := []struct {
		name       string
		row        []*string
		expected   datatable.Record
		expectsBad bool
	}{
		{
			"full row",
			strs("Aspirin", "3.3", "180.16", "pain"),
			datatable.MustNewRecord("Aspirin", "Aspirin", props("Solubility", 3.3, "Molecular Weight", 180.16)),
			false,
		},
		{
			"whitespace around floats",
			strs("Caffeine", " 21.6 ", "194.19"),
			datatable.MustNewRecord("Caffeine", "Caffeine", props("Solubility", 21.6, "Molecular Weight", 194.19)),
			false,
		},
		{
			"missing and empty fields",
			strs("Ibuprofen", nil, ""),
			datatable.MustNewRecord("Ibuprofen", "Ibuprofen", datatable.Properties{}),
			false,
		},
		{
			"missing key",
			strs(nil, "1", "2"),
			datatable.Record{},
			true,
		},
		{
			"empty key",
			strs("", "1", "2"),
			datatable.Record{},
			true,
		},
		{
			"bad float",
			strs("Aspirin", "very", "180.16"),
			datatable.Record{},
			true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r, err := rc.Convert(test.row)
			if test.expectsBad {
				assert.True(t, IsBadRow(err))
				return
			}

			require.NoError(t, err)
			assert.True(t, test.expected.Equals(r), "expected %v, got %v", test.expected, r)
		})
	}
}

func TestBindHeader(t *testing.T) {
	_, err := DefaultRecordMapping().BindHeader([]string{"Name", "Solubility"})
	assert.ErrorIs(t, err, ErrKeyColumnMissing)

	m := RecordMapping{
		KeyCol:     "ID",
		NameCol:    "Name",
		FloatCols:  []string{"Weight", "Absent"},
		StringCols: []string{"Formula"},
	}
	rc, err := m.BindHeader([]string{"Weight", "ID", "Name", "Formula", "Weight", "Ignored"})
	require.NoError(t, err)

	r, err := rc.Convert(strs("12.5", "id1", "First", "C2H6O", "99", "x"))
	require.NoError(t, err)
	assert.True(t, datatable.MustNewRecord("id1", "First", props("Weight", 12.5, "Formula", "C2H6O")).Equals(r))

	// name falls back to the key
	r, err = rc.Convert(strs("1", "id2", nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "id2", r.Name)

	// a name column that is not in the header uses the key
	rc, err = m.BindHeader([]string{"ID"})
	require.NoError(t, err)
	r, err = rc.Convert(strs("id3"))
	require.NoError(t, err)
	assert.Equal(t, "id3", r.Name)
}

func TestInferKinds(t *testing.T) {
	m := RecordMapping{KeyCol: "Molecule", InferKinds: true, StringCols: []string{"CAS"}}
	rc, err := m.BindHeader([]string{"Molecule", "Solubility", "Formula", "CAS", "Blank"})
	require.NoError(t, err)

	r, err := rc.Convert(strs("Aspirin", "3.3", "C9H8O4", "50-78-2", "  "))
	require.NoError(t, err)
	assert.True(t, datatable.MustNewRecord("Aspirin", "Aspirin", props(
		"Solubility", 3.3,
		"Formula", "C9H8O4",
		"CAS", "50-78-2",
	)).Equals(r))

	// inference is per value
	r, err = rc.Convert(strs("Mystery", "unknown", "42", "1"))
	require.NoError(t, err)
	assert.True(t, datatable.MustNewRecord("Mystery", "Mystery", props(
		"Solubility", "unknown",
		"Formula", 42.0,
		"CAS", "1",
	)).Equals(r))
}

func TestConvertFields(t *testing.T) {
	m := DefaultRecordMapping()
	m.StringCols = []string{"Approved"}

	r, err := m.ConvertFields(map[string]interface{}{
		"Molecule":         "Aspirin",
		"Solubility":       3.3,
		"Molecular Weight": "180.16",
		"Approved":         true,
		"Extra":            nil,
	})
	require.NoError(t, err)
	assert.True(t, datatable.MustNewRecord("Aspirin", "Aspirin", props(
		"Solubility", 3.3,
		"Molecular Weight", 180.16,
		"Approved", "true",
	)).Equals(r))

	_, err = m.ConvertFields(map[string]interface{}{"Solubility": 1.0})
	assert.True(t, IsBadRow(err))

	_, err = m.ConvertFields(map[string]interface{}{"Molecule": "x", "Solubility": []interface{}{1.0}})
	assert.True(t, IsBadRow(err))

	_, err = m.ConvertFields(map[string]interface{}{"Molecule": nil})
	assert.True(t, IsBadRow(err))
}
