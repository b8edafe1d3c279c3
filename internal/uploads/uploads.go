// Package uploads manages the directory holding uploaded images.
package uploads

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is where uploaded images are stored, relative to the working directory.
const DefaultDir = "static/uploads"

// AllowedExtensions lists the accepted image extensions, lower case, without the dot.
var AllowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

// ErrNotFound is returned when a requested file is not in the directory.
var ErrNotFound = errors.New("upload not found")

// Allowed reports whether filename carries an allowed extension. The
// extension is whatever follows the last dot, compared case-insensitively;
// a name with no dot is rejected.
func Allowed(filename string) bool {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 {
		return false
	}
	_, ok := AllowedExtensions[strings.ToLower(filename[idx+1:])]
	return ok
}

// Dir is an upload directory on disk.
type Dir struct {
	root string
}

// New creates root if needed and returns a handle to it.
func New(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", root, err)
	}
	return &Dir{root: root}, nil
}

// Root returns the directory path.
func (d *Dir) Root() string {
	return d.root
}

// Path joins filename onto the directory. Names that would resolve outside
// the directory, or to the directory itself, are refused.
func (d *Dir) Path(filename string) (string, bool) {
	if filename == "" || filename == "." || filename == ".." {
		return "", false
	}
	if strings.ContainsRune(filename, '/') || strings.ContainsRune(filename, filepath.Separator) {
		return "", false
	}
	return filepath.Join(d.root, filename), true
}

// Open returns the named regular file for reading.
func (d *Dir) Open(filename string) (*os.File, os.FileInfo, error) {
	path, ok := d.Path(filename)
	if !ok {
		return nil, nil, ErrNotFound
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("open upload: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("stat upload: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, nil, ErrNotFound
	}
	return f, info, nil
}
