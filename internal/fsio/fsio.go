// Package fsio is the filesystem collaborator used by pipeline stages that
// touch disk: sibling-file reads (.transform files), temporary files, and
// output writes. ImporterPostprocessStage's OBJ re-import runs in memory
// and does not use this package. Grounded on original_source/ModelPipeline/PipelineUtil.cpp's
// ReadFileToString/SaveToNewTemporaryFile/DeleteTemporaryFile trio.
package fsio

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileSystem is the contract stages depend on instead of calling os
// directly, so tests can substitute MemFS.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	Exists(path string) bool
	// TempFile creates a new empty temporary file with the given
	// extension (without the leading dot) and returns its path. The
	// caller is responsible for removing it.
	TempFile(extension string) (string, error)
	Remove(path string) error
	Abs(path string) (string, error)
}

// OS is the default, os-backed FileSystem implementation.
type OS struct{}

// ReadFile reads the named file.
func (OS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// WriteFile writes data to the named file, creating it with mode 0644 if
// it does not exist.
func (OS) WriteFile(path string, data []byte) error { return os.WriteFile(path, data, 0o644) }

// Exists reports whether path refers to an existing file or directory.
func (OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// TempFile creates an empty file in the default temp directory with the
// given extension.
func (OS) TempFile(extension string) (string, error) {
	f, err := os.CreateTemp("", "rjm-pipeline-*."+extension)
	if err != nil {
		return "", fmt.Errorf("fsio: create temp file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("fsio: close temp file: %w", err)
	}
	return path, nil
}

// Remove deletes the named file. Removing a file that does not exist is
// not an error, matching the guaranteed-cleanup-on-every-exit-path
// requirement for scoped temporary files.
func (OS) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("fsio: remove %s: %w", path, err)
	}
	return nil
}

// Abs resolves path to an absolute path.
func (OS) Abs(path string) (string, error) { return filepath.Abs(path) }

// SiblingPath returns the path of a sibling file next to base, with the
// given suffix appended to base's full name (e.g. SiblingPath("a.rjm",
// ".transform") -> "a.rjm.transform").
func SiblingPath(base, suffix string) string {
	return base + suffix
}

// ReplaceExt returns path with its extension replaced by ext (without a
// leading dot).
func ReplaceExt(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + "." + ext
}

// BaseName returns path's final element with its extension and directory
// stripped, used to derive a library name (e.g. an OBJ's mtllib reference)
// from a destination file path: BaseName("models/scene.obj") -> "scene".
func BaseName(path string) string {
	name := filepath.Base(path)
	return name[:len(name)-len(filepath.Ext(name))]
}
