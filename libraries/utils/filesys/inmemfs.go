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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// InMemNowFunc is a func() time.Time that can be used to supply the current time.  The default value gets the current
// time from the system clock, but it can be set to something else in order to support reproducible tests.
var InMemNowFunc = time.Now

var fileSystemRoot = string(filepath.Separator)

type memObj interface {
	isDir() bool
	parent() *memDir
	modTime() time.Time
}

type memFile struct {
	absPath   string
	data      []byte
	parentDir *memDir
	time      time.Time
}

func (mf *memFile) isDir() bool {
	return false
}

func (mf *memFile) parent() *memDir {
	return mf.parentDir
}

func (mf *memFile) modTime() time.Time {
	return mf.time
}

type memDir struct {
	absPath   string
	objs      map[string]memObj
	parentDir *memDir
	time      time.Time
}

func newEmptyDir(path string, parent *memDir) *memDir {
	return &memDir{path, make(map[string]memObj), parent, InMemNowFunc()}
}

func (md *memDir) isDir() bool {
	return true
}

func (md *memDir) parent() *memDir {
	return md.parentDir
}

func (md *memDir) modTime() time.Time {
	return md.time
}

// InMemFS is an in memory filesystem implementation that is primarily intended for testing
type InMemFS struct {
	rwLock *sync.RWMutex
	cwd    string
	objs   map[string]memObj
}

var _ Filesys = (*InMemFS)(nil)

// EmptyInMemFS creates an empty InMemFS instance
func EmptyInMemFS(workingDir string) *InMemFS {
	return NewInMemFS([]string{}, map[string][]byte{}, workingDir)
}

// NewInMemFS creates an InMemFS with directories and folders provided.
func NewInMemFS(dirs []string, files map[string][]byte, cwd string) *InMemFS {
	if cwd == "" {
		cwd = fileSystemRoot
	}
	cwd = filepath.FromSlash(cwd)

	if !filepath.IsAbs(cwd) {
		panic("cwd for InMemFilesys must be absolute path.")
	}

	fs := &InMemFS{&sync.RWMutex{}, cwd, map[string]memObj{fileSystemRoot: newEmptyDir(fileSystemRoot, nil)}}

	for _, dir := range dirs {
		fs.mkDirs(fs.getAbsPath(dir))
	}

	for path, val := range files {
		path = fs.getAbsPath(path)
		targetDir := fs.mkDirs(filepath.Dir(path))

		now := InMemNowFunc()
		newFile := &memFile{path, val, targetDir, now}

		targetDir.time = now
		targetDir.objs[path] = newFile
		fs.objs[path] = newFile
	}

	return fs
}

func (fs *InMemFS) getAbsPath(path string) string {
	path = filepath.FromSlash(path)
	if strings.HasPrefix(path, fileSystemRoot) {
		return filepath.Clean(path)
	}

	return filepath.Join(fs.cwd, path)
}

func (fs *InMemFS) mkDirs(absPath string) *memDir {
	if obj, ok := fs.objs[absPath]; ok {
		if dir, ok := obj.(*memDir); ok {
			return dir
		}

		panic("Initializing InMemFS with invalid data. " + absPath + " is a file")
	}

	parent := fs.mkDirs(filepath.Dir(absPath))
	dir := newEmptyDir(absPath, parent)
	parent.objs[absPath] = dir
	fs.objs[absPath] = dir

	return dir
}

// Exists will tell you if a file or directory with a given path already exists, and if it does is it a directory
func (fs *InMemFS) Exists(path string) (exists bool, isDir bool) {
	fs.rwLock.RLock()
	defer fs.rwLock.RUnlock()

	if obj, ok := fs.objs[fs.getAbsPath(path)]; ok {
		return true, obj.isDir()
	}

	return false, false
}

type iterEntry struct {
	path  string
	size  int64
	isDir bool
}

// Iter iterates over the files and subdirectories within a given directory (Optionally recursively).  There
// are no guarantees about the ordering of results.
func (fs *InMemFS) Iter(path string, recursive bool, cb FSIterCB) error {
	entries, err := func() ([]iterEntry, error) {
		fs.rwLock.RLock()
		defer fs.rwLock.RUnlock()

		var entries []iterEntry
		err := fs.iter(fs.getAbsPath(path), recursive, func(path string, size int64, isDir bool) (stop bool) {
			entries = append(entries, iterEntry{path, size, isDir})
			return false
		})

		return entries, err
	}()

	if err != nil {
		return err
	}

	for _, entry := range entries {
		if cb(entry.path, entry.size, entry.isDir) {
			break
		}
	}

	return nil
}

func (fs *InMemFS) iter(path string, recursive bool, cb FSIterCB) error {
	obj, ok := fs.objs[filepath.Clean(path)]

	if !ok {
		return os.ErrNotExist
	} else if !obj.isDir() {
		return ErrIsFile
	}

	dir := obj.(*memDir)

	for k, v := range dir.objs {
		var size int
		if !v.isDir() {
			size = len(v.(*memFile).data)
		}

		cb(k, int64(size), v.isDir())

		if v.isDir() && recursive {
			if err := fs.iter(k, recursive, cb); err != nil {
				return err
			}
		}
	}

	return nil
}

// OpenForRead opens a file for reading
func (fs *InMemFS) OpenForRead(fp string) (io.ReadCloser, error) {
	data, err := fs.ReadFile(fp)

	if err != nil {
		return nil, err
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// ReadFile reads the entire contents of a file
func (fs *InMemFS) ReadFile(fp string) ([]byte, error) {
	fs.rwLock.RLock()
	defer fs.rwLock.RUnlock()

	obj, ok := fs.objs[fs.getAbsPath(fp)]

	if !ok {
		return nil, os.ErrNotExist
	} else if obj.isDir() {
		return nil, ErrIsDir
	}

	return obj.(*memFile).data, nil
}

// Abs converts a path to an absolute path.  If it's already an absolute path the input path will be returned unaltered
func (fs *InMemFS) Abs(path string) (string, error) {
	return fs.getAbsPath(path), nil
}

// LastModified gets the last modified timestamp for a file or directory at a given path
func (fs *InMemFS) LastModified(path string) (t time.Time, exists bool) {
	fs.rwLock.RLock()
	defer fs.rwLock.RUnlock()

	if obj, ok := fs.objs[fs.getAbsPath(path)]; ok {
		return obj.modTime(), true
	}

	return time.Time{}, false
}
