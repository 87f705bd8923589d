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

package csv

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moltab/moltab/libraries/moltabcore/datatable"
	"github.com/moltab/moltab/libraries/moltabcore/table"
	"github.com/moltab/moltab/libraries/utils/iohelp"
)

func testTable() *datatable.Table {
	return datatable.NewTable(
		datatable.MustNewRecord("Aspirin", "Aspirin", datatable.NewProperties(
			datatable.NewProperty("Solubility", datatable.NewFloat(3.3)),
			datatable.NewProperty("Molecular Weight", datatable.NewFloat(180.16)),
		)),
		datatable.MustNewRecord("2,4-Dinitrophenol", "DNP \"yellow\"", datatable.NewProperties(
			datatable.NewProperty("Molecular Weight", datatable.NewFloat(184.11)),
			datatable.NewProperty("Formula", datatable.NewString("")),
		)),
	)
}

func TestCSVWriter(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	cols := WriterColumns{KeyCol: "Molecule", NameCol: "Name", PropCols: []string{"Solubility", "Molecular Weight", "Formula"}}
	wr, err := NewCSVWriter(iohelp.NopWrCloser(&buf), NewCSVInfo(), cols)
	require.NoError(t, err)

	_, _, err = table.PipeRecords(ctx, table.NewInMemTableReader(testTable()), wr, false)
	require.NoError(t, err)
	require.NoError(t, wr.Close(ctx))
	assert.Error(t, wr.Close(ctx))

	expected := "Molecule,Name,Solubility,Molecular Weight,Formula\n" +
		`"2,4-Dinitrophenol","DNP ""yellow""",,184.11,""` + "\n" +
		"Aspirin,Aspirin,3.3,180.16,\n"
	assert.Equal(t, expected, buf.String())

	m := table.RecordMapping{
		KeyCol:     "Molecule",
		NameCol:    "Name",
		FloatCols:  []string{"Solubility", "Molecular Weight"},
		StringCols: []string{"Formula"},
	}
	rd, err := NewCSVReader(io.NopCloser(&buf), NewCSVInfo(), m)
	require.NoError(t, err)

	tbl, _, err := table.ReadTable(ctx, rd, false)
	require.NoError(t, err)

	// the empty Formula is written quoted but empty values never become properties when read
	dnp, ok := tbl.Get("2,4-Dinitrophenol")
	require.True(t, ok)
	assert.Equal(t, `DNP "yellow"`, dnp.Name)
	assert.Equal(t, []string{"Molecular Weight"}, dnp.Props.Keys())

	aspirin, ok := tbl.Get("Aspirin")
	require.True(t, ok)
	expectedAspirin, _ := testTable().Get("Aspirin")
	assert.True(t, expectedAspirin.Equals(aspirin))
}

func TestCSVWriterWithoutNameOrHeader(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	info := NewCSVInfo().SetDelim("|").SetHasHeaderLine(false)
	wr, err := NewCSVWriter(iohelp.NopWrCloser(&buf), info, WriterColumns{KeyCol: "Molecule", PropCols: []string{"Solubility"}})
	require.NoError(t, err)

	require.NoError(t, wr.WriteRecord(ctx, datatable.MustNewRecord("a|b", "ignored", datatable.NewProperties(
		datatable.NewProperty("Solubility", datatable.NewFloat(0.021)),
	))))
	require.NoError(t, wr.WriteRecord(ctx, datatable.MustNewRecord(" padded", "", datatable.Properties{})))
	require.NoError(t, wr.Close(ctx))

	assert.Equal(t, "\"a|b\"|0.021\n\" padded\"|\n", buf.String())

	_, err = NewCSVWriter(iohelp.NopWrCloser(&buf), NewCSVInfo().SetDelim("\n"), WriterColumns{KeyCol: "k"})
	assert.Error(t, err)
}
