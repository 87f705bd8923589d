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

package datasource

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/moltab/moltab/libraries/moltabcore/moltabcfg"
	"github.com/moltab/moltab/libraries/moltabcore/table"
	"github.com/moltab/moltab/libraries/utils/config"
	"github.com/moltab/moltab/libraries/utils/filesys"
)

const (
	dataDir = "/data"

	moleculesA = `Molecule,Solubility,Molecular Weight
Caffeine,21.6,194.19
Aspirin,3.3,180.16
Caffeine,20,194.2
`
	moleculesB = `Molecule|Solubility|Molecular Weight
Paracetamol|14|151.16
Aspirin|4.6|180.2
`
	moleculesJSON = `{"rows": [
	{"Molecule": "Ibuprofen", "Solubility": 0.021, "Molecular Weight": 206.29},
	{"Molecule": "Aspirin", "Solubility": 3.3}
]}`
	badRows = `Molecule,Solubility,Molecular Weight
Aspirin,very,180.16
Caffeine,21.6,194.19
`
	headerOnly = "Molecule,Solubility,Molecular Weight\n"
)

func xlsxData(t *testing.T) []byte {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sheet1")
	require.NoError(t, err)

	for _, cells := range [][]string{{"Molecule", "Solubility"}, {"Caffeine", "21.6"}} {
		row := sheet.AddRow()
		for _, val := range cells {
			row.AddCell().SetString(val)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	return buf.Bytes()
}

func newTestFS(t *testing.T) *filesys.InMemFS {
	return filesys.NewInMemFS([]string{"/data/nested", "/empty"}, map[string][]byte{
		"/data/b.csv":          []byte(moleculesA),
		"/data/a.csv":          []byte(moleculesA),
		"/data/c.psv":          []byte(moleculesB),
		"/data/d.json":         []byte(moleculesJSON),
		"/data/e.xlsx":         xlsxData(t),
		"/data/notes.txt":      []byte("not data"),
		"/data/UPPER.CSV":      []byte(moleculesA),
		"/data/nested/x.csv":   []byte(moleculesA),
		"/bad/bad_rows.csv":    []byte(badRows),
		"/bad/header_only.csv": []byte(headerOnly),
		"/bad/empty.csv":       []byte(""),
		"/bad/data.txt":        []byte(moleculesA),
	}, "/")
}

func TestDFFromString(t *testing.T) {
	tests := []struct {
		str      string
		expected DataFormat
	}{
		{".csv", CsvFile},
		{"csv", CsvFile},
		{" PSV ", PsvFile},
		{".xlsx", XlsxFile},
		{"json", JsonFile},
		{".txt", InvalidDataFormat},
		{"", InvalidDataFormat},
	}

	for _, test := range tests {
		t.Run(test.str, func(t *testing.T) {
			assert.Equal(t, test.expected, DFFromString(test.str))
		})
	}

	assert.Equal(t, CsvFile, DFFromPath("/data/a.CSV"))
	assert.Equal(t, InvalidDataFormat, DFFromPath("/data/csv"))
	assert.Equal(t, "psv file", PsvFile.ReadableStr())
}

func TestListDataFiles(t *testing.T) {
	fs := newTestFS(t)

	files, err := ListDataFiles(fs, dataDir, []DataFormat{CsvFile})
	require.NoError(t, err)
	size := int64(len(moleculesA))
	assert.Equal(t, []DataFile{
		{filepath.FromSlash("/data/UPPER.CSV"), size, CsvFile},
		{filepath.FromSlash("/data/a.csv"), size, CsvFile},
		{filepath.FromSlash("/data/b.csv"), size, CsvFile},
	}, files)

	files, err = ListDataFiles(fs, dataDir, DataFormats)
	require.NoError(t, err)
	require.Len(t, files, 6)
	assert.Equal(t, PsvFile, files[3].Format)
	assert.Equal(t, JsonFile, files[4].Format)
	assert.Equal(t, XlsxFile, files[5].Format)

	files, err = ListDataFiles(fs, "/empty", DataFormats)
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = ListDataFiles(fs, "/missing", DataFormats)
	assert.ErrorIs(t, err, filesys.ErrDirNotExist)

	_, err = ListDataFiles(fs, "/data/a.csv", DataFormats)
	assert.ErrorIs(t, err, filesys.ErrIsFile)
}

func TestLoadTable(t *testing.T) {
	tests := []struct {
		path          string
		expectedKeys  []string
		expectedStats table.ReadStats
	}{
		{"/data/a.csv", []string{"Aspirin", "Caffeine"}, table.ReadStats{Good: 3, Duplicates: 1}},
		{"/data/c.psv", []string{"Aspirin", "Paracetamol"}, table.ReadStats{Good: 2}},
		{"/data/d.json", []string{"Aspirin", "Ibuprofen"}, table.ReadStats{Good: 2}},
		{"/data/e.xlsx", []string{"Caffeine"}, table.ReadStats{Good: 1}},
	}

	fs := newTestFS(t)
	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			tbl, stats, err := LoadTable(context.Background(), fs, test.path, DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, test.expectedKeys, tbl.Keys())
			assert.Equal(t, test.expectedStats, stats)
		})
	}

	tbl, _, err := LoadTable(context.Background(), fs, "/data/a.csv", DefaultOptions())
	require.NoError(t, err)
	caffeine, ok := tbl.Get("Caffeine")
	require.True(t, ok)
	sol, _ := caffeine.Props.Get("Solubility")
	assert.Equal(t, "21.600000", sol.String())
	assert.Equal(t, "Caffeine", caffeine.Name)
}

func TestLoadTableNoTable(t *testing.T) {
	tests := []struct {
		path          string
		expectedEmpty bool
		check         func(t *testing.T, err error)
	}{
		{"/bad/header_only.csv", true, nil},
		{"/bad/bad_rows.csv", false, func(t *testing.T, err error) {
			assert.True(t, table.IsBadRow(err))
		}},
		{"/bad/empty.csv", false, nil},
		{"/bad/data.txt", false, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrUnsupportedFormat)
		}},
		{"/bad/missing.csv", false, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, os.ErrNotExist)
		}},
		{"/bad", false, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, filesys.ErrIsDir)
		}},
	}

	fs := newTestFS(t)
	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			tbl, _, err := LoadTable(context.Background(), fs, test.path, DefaultOptions())
			assert.Nil(t, tbl)
			require.Error(t, err)
			assert.True(t, IsNoTable(err))
			assert.Equal(t, test.expectedEmpty, IsEmptySource(err))
			assert.Contains(t, err.Error(), test.path)

			if test.check != nil {
				test.check(t, err)
			}
		})
	}
}

func TestLoadTableSkipBadRows(t *testing.T) {
	opts := DefaultOptions()
	opts.SkipBadRows = true

	tbl, stats, err := LoadTable(context.Background(), newTestFS(t), "/bad/bad_rows.csv", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Caffeine"}, tbl.Keys())
	assert.Equal(t, table.ReadStats{Good: 1, Bad: 1}, stats)
}

func TestLoadTableCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := LoadTable(ctx, newTestFS(t), "/data/a.csv", DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsNoTable(err))
}

func TestOptionsFromConfig(t *testing.T) {
	opts, err := OptionsFromConfig(moltabcfg.Defaults())
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)

	cfg := config.NewConfigHierarchy()
	cfg.AddConfig("user", config.NewMapConfig(map[string]string{
		moltabcfg.DataExtensionsKey:   "csv, .json",
		moltabcfg.CSVDelimKey:         ";",
		moltabcfg.CSVKeyColumnKey:     "ID",
		moltabcfg.CSVNameColumnKey:    "Name",
		moltabcfg.CSVInferKindsKey:    "true",
		moltabcfg.LoadSkipBadRowsKey:  "true",
		moltabcfg.CSVFloatColumnsKey:  "",
		moltabcfg.CSVStringColumnsKey: "Formula",
	}))
	cfg.AddConfig("defaults", moltabcfg.Defaults())

	opts, err = OptionsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, []DataFormat{CsvFile, JsonFile}, opts.Formats)
	assert.Equal(t, ";", opts.Delim)
	assert.True(t, opts.SkipBadRows)
	assert.Equal(t, table.RecordMapping{KeyCol: "ID", NameCol: "Name", StringCols: []string{"Formula"}, InferKinds: true}, opts.Mapping)

	badConfigs := []map[string]string{
		{moltabcfg.DataExtensionsKey: ".txt"},
		{moltabcfg.DataExtensionsKey: " , "},
		{moltabcfg.CSVDelimKey: ""},
		{moltabcfg.LoadSkipBadRowsKey: "maybe"},
		{moltabcfg.CSVKeyColumnKey: ""},
	}

	for _, bad := range badConfigs {
		_, err = OptionsFromConfig(config.NewMapConfig(bad))
		assert.Error(t, err, "%v", bad)
	}
}
