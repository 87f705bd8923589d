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
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/moltab/moltab/libraries/moltabcore/datatable"
	"github.com/moltab/moltab/libraries/moltabcore/table"
	"github.com/moltab/moltab/libraries/moltabcore/table/typed/json"
	"github.com/moltab/moltab/libraries/moltabcore/table/untyped/csv"
	"github.com/moltab/moltab/libraries/moltabcore/table/untyped/xlsx"
	"github.com/moltab/moltab/libraries/utils/filesys"
)

// ErrUnsupportedFormat is returned when asked to read a file whose extension is not a known DataFormat
var ErrUnsupportedFormat = errors.New("unsupported data format")

// NoTableError is returned by LoadTable when a file did not produce a table. Empty is true when the file was read
// successfully but held no usable records, and false when the file could not be read or parsed.
type NoTableError struct {
	Path  string
	Empty bool
	Cause error
}

func (e *NoTableError) Error() string {
	if e.Empty {
		return "no records found in '" + e.Path + "'"
	}

	return "failed to load table from '" + e.Path + "': " + e.Cause.Error()
}

func (e *NoTableError) Unwrap() error {
	return e.Cause
}

// IsNoTable returns true if err is, or wraps, a NoTableError
func IsNoTable(err error) bool {
	var nte *NoTableError
	return errors.As(err, &nte)
}

// IsEmptySource returns true if err is a NoTableError for a file that was read but held no usable records
func IsEmptySource(err error) bool {
	var nte *NoTableError
	return errors.As(err, &nte) && nte.Empty
}

// DataFile is a file found by ListDataFiles
type DataFile struct {
	Path   string
	Size   int64
	Format DataFormat
}

// ListDataFiles returns the files directly inside dir whose extensions match one of the given formats, sorted by
// path. Subdirectories are not searched.
func ListDataFiles(fs filesys.Filesys, dir string, formats []DataFormat) ([]DataFile, error) {
	if exists, isDir := fs.Exists(dir); !exists {
		return nil, errors.Wrapf(filesys.ErrDirNotExist, "'%s'", dir)
	} else if !isDir {
		return nil, errors.Wrapf(filesys.ErrIsFile, "'%s'", dir)
	}

	wanted := make(map[DataFormat]bool, len(formats))
	for _, df := range formats {
		wanted[df] = true
	}

	var files []DataFile
	err := fs.Iter(dir, false, func(path string, size int64, isDir bool) (stop bool) {
		if isDir {
			return false
		}

		if df := DFFromPath(path); wanted[df] {
			logrus.WithFields(logrus.Fields{"path": path, "format": df, "size": size}).Debug("found data file")
			files = append(files, DataFile{path, size, df})
		}

		return false
	})

	if err != nil {
		return nil, errors.Wrapf(err, "failed to list files in '%s'", dir)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}

// OpenReader opens a reader for the file at path, choosing the reader from the file's extension.
func OpenReader(fs filesys.ReadableFS, path string, opts Options) (table.RecordReadCloser, error) {
	switch df := DFFromPath(path); df {
	case CsvFile:
		return csv.OpenCSVReader(path, fs, csv.NewCSVInfo().SetDelim(opts.Delim), opts.Mapping)
	case PsvFile:
		return csv.OpenCSVReader(path, fs, csv.NewCSVInfo().SetDelim("|"), opts.Mapping)
	case XlsxFile:
		return xlsx.OpenXLSXReader(path, fs, xlsx.NewXLSXInfo().SetSheetName(opts.SheetName), opts.Mapping)
	case JsonFile:
		return json.OpenJSONReader(path, fs, opts.Mapping)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "'%s' has extension '%s'", path, filepath.Ext(path))
	}
}

// LoadTable reads the file at path into a Table. Any failure, including a file with no usable records, is returned
// as a *NoTableError and no table is returned. The stats are returned whenever rows were read.
func LoadTable(ctx context.Context, fs filesys.ReadableFS, path string, opts Options) (*datatable.Table, table.ReadStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, table.ReadStats{}, err
	}

	if exists, isDir := fs.Exists(path); !exists {
		return nil, table.ReadStats{}, &NoTableError{Path: path, Cause: os.ErrNotExist}
	} else if isDir {
		return nil, table.ReadStats{}, &NoTableError{Path: path, Cause: filesys.ErrIsDir}
	}

	rd, err := OpenReader(fs, path, opts)
	if err != nil {
		return nil, table.ReadStats{}, &NoTableError{Path: path, Cause: err}
	}

	tbl, stats, err := table.ReadTable(ctx, rd, opts.SkipBadRows)
	closeErr := rd.Close(ctx)

	logger := logrus.WithFields(logrus.Fields{
		"path":       path,
		"good":       stats.Good,
		"bad":        stats.Bad,
		"duplicates": stats.Duplicates,
	})

	if err == table.ErrNoRecords {
		logger.Debug("no records found")
		return nil, stats, &NoTableError{Path: path, Empty: true, Cause: err}
	} else if err != nil {
		return nil, stats, &NoTableError{Path: path, Cause: err}
	} else if closeErr != nil {
		return nil, stats, &NoTableError{Path: path, Cause: errors.Wrap(closeErr, "failed to close reader")}
	}

	logger.Debug("loaded table")
	return tbl, stats, nil
}
