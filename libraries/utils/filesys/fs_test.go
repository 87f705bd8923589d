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

package filesys

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testString = "this is a test"

func newLocalTestDir(t *testing.T) string {
	dir := filepath.Join(t.TempDir(), "filesys_test")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "subdir"), os.ModePerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte(testString), os.ModePerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte(testString), os.ModePerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "subdir", "c.csv"), []byte(testString), os.ModePerm))

	return dir
}

func newInMemTestDir() (*InMemFS, string) {
	dir := filepath.FromSlash("/data/filesys_test")
	fs := NewInMemFS(nil, map[string][]byte{
		"/data/filesys_test/a.csv":        []byte(testString),
		"/data/filesys_test/b.txt":        []byte(testString),
		"/data/filesys_test/subdir/c.csv": []byte(testString),
	}, "/")

	return fs, dir
}

func iterate(t *testing.T, fs Filesys, dir string, recursive bool) (dirs, files []string) {
	err := fs.Iter(dir, recursive, func(path string, size int64, isDir bool) (stop bool) {
		rel, err := filepath.Rel(dir, path)
		require.NoError(t, err)

		if isDir {
			dirs = append(dirs, rel)
		} else {
			assert.Equal(t, int64(len(testString)), size)
			files = append(files, rel)
		}

		return false
	})
	require.NoError(t, err)

	sort.Strings(dirs)
	sort.Strings(files)
	return dirs, files
}

func TestFilesystems(t *testing.T) {
	localDir := newLocalTestDir(t)
	inMem, inMemDir := newInMemTestDir()

	tests := map[string]struct {
		fs  Filesys
		dir string
	}{
		"local": {LocalFS, localDir},
		"inmem": {inMem, inMemDir},
	}

	for fsName, test := range tests {
		t.Run(fsName, func(t *testing.T) {
			fs, dir := test.fs, test.dir

			exists, isDir := fs.Exists(dir)
			assert.True(t, exists)
			assert.True(t, isDir)

			fp := filepath.Join(dir, "a.csv")
			exists, isDir = fs.Exists(fp)
			assert.True(t, exists)
			assert.False(t, isDir)

			exists, _ = fs.Exists(filepath.Join(dir, "missing.csv"))
			assert.False(t, exists)

			data, err := fs.ReadFile(fp)
			require.NoError(t, err)
			assert.Equal(t, testString, string(data))

			rd, err := fs.OpenForRead(fp)
			require.NoError(t, err)
			data, err = io.ReadAll(rd)
			require.NoError(t, err)
			require.NoError(t, rd.Close())
			assert.Equal(t, testString, string(data))

			_, err = fs.OpenForRead(dir)
			assert.Error(t, err)

			_, err = fs.OpenForRead(filepath.Join(dir, "missing.csv"))
			assert.Error(t, err)

			_, ok := fs.LastModified(fp)
			assert.True(t, ok)

			dirs, files := iterate(t, fs, dir, false)
			assert.Equal(t, []string{"subdir"}, dirs)
			assert.Equal(t, []string{"a.csv", "b.txt"}, files)

			dirs, files = iterate(t, fs, dir, true)
			assert.Equal(t, []string{"subdir"}, dirs)
			assert.Equal(t, []string{"a.csv", "b.txt", filepath.Join("subdir", "c.csv")}, files)

			err = fs.Iter(filepath.Join(dir, "missing"), false, func(string, int64, bool) bool { return false })
			assert.Error(t, err)
		})
	}
}

func TestInMemFSRelativePaths(t *testing.T) {
	fs := NewInMemFS([]string{"/empty"}, map[string][]byte{
		"/home/user/data/x.csv": []byte("x"),
	}, "/home/user")

	abs, err := fs.Abs("data/x.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/home/user/data/x.csv"), abs)

	data, err := fs.ReadFile("data/x.csv")
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))

	exists, isDir := fs.Exists("/empty")
	assert.True(t, exists)
	assert.True(t, isDir)

	assert.Panics(t, func() {
		NewInMemFS(nil, nil, "relative/dir")
	})
}

func TestEmptyInMemFS(t *testing.T) {
	fs := EmptyInMemFS("/")

	exists, isDir := fs.Exists("/")
	assert.True(t, exists)
	assert.True(t, isDir)

	exists, _ = fs.Exists("/data")
	assert.False(t, exists)

	_, err := fs.ReadFile("/data/a.csv")
	assert.Error(t, err)
}
