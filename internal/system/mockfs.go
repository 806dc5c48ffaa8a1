package system

import (
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MockFS implements FileSystem for testing.
type MockFS struct {
	mu    sync.RWMutex
	files map[string]*mockFile
	dirs  map[string]bool

	// Error injection
	ReadFileErr  error
	WriteFileErr error
	RenameErr    error
	RemoveErr    error
	MkdirAllErr  error
	ReadDirErr   error
}

type mockFile struct {
	data []byte
	mode fs.FileMode
}

// NewMockFS creates a new MockFS with an empty filesystem.
func NewMockFS() *MockFS {
	return &MockFS{
		files: make(map[string]*mockFile),
		dirs:  make(map[string]bool),
	}
}

// AddFile adds a file to the mock filesystem.
func (m *MockFS) AddFile(path string, data []byte, mode fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = &mockFile{data: data, mode: mode}
	// Ensure parent directories exist
	dir := filepath.Dir(path)
	for dir != "." && dir != "/" {
		m.dirs[dir] = true
		dir = filepath.Dir(dir)
	}
}

// AddDir adds a directory to the mock filesystem.
func (m *MockFS) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
}

// GetFile returns the contents of a file in the mock filesystem.
func (m *MockFS) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	if !ok {
		return nil, false
	}
	return f.data, true
}

func (m *MockFS) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return f.data, nil
}

func (m *MockFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if m.WriteFileErr != nil {
		return m.WriteFileErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = &mockFile{data: data, mode: perm}
	return nil
}

func (m *MockFS) Rename(oldpath, newpath string) error {
	if m.RenameErr != nil {
		return m.RenameErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[oldpath]
	if !ok {
		return fs.ErrNotExist
	}
	m.files[newpath] = f
	delete(m.files, oldpath)
	return nil
}

func (m *MockFS) Remove(path string) error {
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[path]; ok {
		delete(m.files, path)
		return nil
	}
	if _, ok := m.dirs[path]; ok {
		delete(m.dirs, path)
		return nil
	}
	return fs.ErrNotExist
}

func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	if m.MkdirAllErr != nil {
		return m.MkdirAllErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	// Create all directories in the path
	current := path
	for current != "." && current != "/" {
		m.dirs[current] = true
		current = filepath.Dir(current)
	}
	return nil
}

func (m *MockFS) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, fileOk := m.files[path]
	_, dirOk := m.dirs[path]
	return fileOk || dirOk
}

func (m *MockFS) ReadDir(path string) ([]fs.DirEntry, error) {
	if m.ReadDirErr != nil {
		return nil, m.ReadDirErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.dirs[path]; !ok {
		// Check if it's the root or a path that has children
		hasChildren := false
		for p := range m.files {
			if hasPathPrefix(p, path) {
				hasChildren = true
				break
			}
		}
		if !hasChildren {
			return nil, fs.ErrNotExist
		}
	}

	entries := make(map[string]fs.DirEntry)

	// Find direct children
	for p, f := range m.files {
		if dir := filepath.Dir(p); dir == path {
			name := filepath.Base(p)
			entries[name] = &mockDirEntry{name: name, mode: f.mode}
		}
	}
	for p := range m.dirs {
		if dir := filepath.Dir(p); dir == path {
			name := filepath.Base(p)
			entries[name] = &mockDirEntry{name: name, isDir: true, mode: fs.ModeDir | 0755}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result, nil
}

// hasPathPrefix checks if path has the given prefix as a path component.
func hasPathPrefix(path, prefix string) bool {
	if len(path) <= len(prefix) {
		return false
	}
	return path[:len(prefix)] == prefix && path[len(prefix)] == '/'
}

// mockFileInfo implements fs.FileInfo for testing.
type mockFileInfo struct {
	name  string
	size  int64
	mode  fs.FileMode
	isDir bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return time.Now() }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() any           { return nil }

// mockDirEntry implements fs.DirEntry for testing.
type mockDirEntry struct {
	name  string
	mode  fs.FileMode
	isDir bool
}

func (m *mockDirEntry) Name() string               { return m.name }
func (m *mockDirEntry) IsDir() bool                { return m.isDir }
func (m *mockDirEntry) Type() fs.FileMode          { return m.mode.Type() }
func (m *mockDirEntry) Info() (fs.FileInfo, error) { return &mockFileInfo{name: m.name, mode: m.mode, isDir: m.isDir}, nil }

