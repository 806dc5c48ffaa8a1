// Package system provides abstractions for OS operations to enable testing.
package system

import (
	"context"
	"io/fs"
	"os"
)

// FileSystem abstracts file system operations for testability.
type FileSystem interface {
	// ReadFile reads the named file and returns the contents.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to the named file, creating it if necessary.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Rename moves oldpath to newpath, replacing newpath if it exists.
	Rename(oldpath, newpath string) error

	// Remove removes the named file or empty directory.
	Remove(path string) error

	// MkdirAll creates a directory named path, along with any necessary parents.
	MkdirAll(path string, perm fs.FileMode) error

	// Exists returns true if the path exists.
	Exists(path string) bool

	// ReadDir reads the named directory, returning all its directory entries.
	ReadDir(path string) ([]fs.DirEntry, error)
}

// Result holds the captured output of a finished command.
type Result struct {
	Stdout string
	Stderr string
}

// Runner abstracts external command execution for testability.
//
// Run blocks until the command exits. There is no timeout: image
// downloads and guest provisioning can legitimately take minutes. The
// context is consulted before dispatch only; a started command always runs
// to completion.
type Runner interface {
	// Run executes argv and captures stdout and stderr. A non-zero exit
	// yields a KindExecution error carrying argv and stderr; a missing
	// executable yields KindCommandNotFound.
	Run(ctx context.Context, argv ...string) (Result, error)

	// RunInteractive executes argv with stdin/stdout/stderr connected to the terminal.
	RunInteractive(ctx context.Context, argv ...string) error

	// LookPath searches for an executable in PATH.
	LookPath(name string) (string, error)

	// Spawn starts argv in a new session and returns once the process has
	// started. The child is never waited on.
	Spawn(argv ...string) error
}

// Default instances using real OS operations.
var (
	defaultFS     FileSystem = &osFileSystem{}
	defaultRunner Runner     = &osRunner{}
)

// DefaultFS returns the default FileSystem implementation using real OS operations.
func DefaultFS() FileSystem {
	return defaultFS
}

// DefaultRunner returns the default Runner implementation.
func DefaultRunner() Runner {
	return defaultRunner
}

// SetDefaultFS sets the default FileSystem (useful for testing).
func SetDefaultFS(fs FileSystem) {
	defaultFS = fs
}

// SetDefaultRunner sets the default Runner (useful for testing).
func SetDefaultRunner(r Runner) {
	defaultRunner = r
}

// ResetDefaults restores the default OS implementations.
func ResetDefaults() {
	defaultFS = &osFileSystem{}
	defaultRunner = &osRunner{}
}

// osFileSystem implements FileSystem using real OS operations.
type osFileSystem struct{}

func (f *osFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (f *osFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (f *osFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (f *osFileSystem) Remove(path string) error {
	return os.Remove(path)
}

func (f *osFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (f *osFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (f *osFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}
