// Package materialize writes rendered templates to disk.
package materialize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	dirMode     fs.FileMode = 0o755
	newFileMode fs.FileMode = 0o666
	execBits    fs.FileMode = 0o111
)

var errIsDir = errors.New("is a directory")

// execSupported reports whether the host has POSIX execute bits.
var execSupported = runtime.GOOS != "windows"

// Error is a filesystem failure while materializing a path.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// EnsureDirs creates each directory and any missing parents.
// Directories that already exist are left alone.
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return &Error{Op: "mkdir", Path: dir, Err: err}
		}
	}
	return nil
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

// CreateFile writes content to path with LF line endings, creating parent
// directories as needed. The file is replaced atomically. An existing file
// keeps its permission bits and a new one gets the bits the umask allows;
// when executable is set and the host supports it, the execute bits are
// added. It returns the final permission bits.
func CreateFile(path, content string, executable bool) (fs.FileMode, error) {
	return WriteFile(path, []byte(NormalizeNewlines(content)), executable)
}

// WriteFile is CreateFile without newline normalization: data is written
// byte for byte.
func WriteFile(path string, data []byte, executable bool) (fs.FileMode, error) {
	if err := EnsureDirs(filepath.Dir(path)); err != nil {
		return 0, err
	}

	mode, created, err := targetMode(path)
	if err != nil {
		return 0, &Error{Op: "write", Path: path, Err: err}
	}

	if err := atomicWrite(path, data, mode); err != nil {
		if created {
			_ = os.Remove(path)
		}
		return 0, &Error{Op: "write", Path: path, Err: err}
	}

	if executable && execSupported {
		mode |= execBits
		if err := os.Chmod(path, mode); err != nil {
			return 0, &Error{Op: "chmod", Path: path, Err: err}
		}
	}
	return mode, nil
}

// targetMode returns the permission bits of path. A missing file is created
// empty first, so the kernel applies the umask to its mode.
func targetMode(path string) (mode fs.FileMode, created bool, err error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if info.IsDir() {
			return 0, false, errIsDir
		}
		return info.Mode().Perm(), false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return 0, false, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, newFileMode)
	if err != nil {
		return 0, false, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return 0, false, err
	}
	info, err = os.Stat(path)
	if err != nil {
		_ = os.Remove(path)
		return 0, false, err
	}
	return info.Mode().Perm(), true, nil
}

// atomicWrite writes data to a temp file in the target directory, then
// renames it over path.
func atomicWrite(path string, data []byte, mode fs.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
