// Package corpus resolves corpus names to backing files and caches their
// tokenized lines in memory.
package corpus

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	internalErrors "github.com/gcbaptista/go-concordance/internal/errors"
)

// FileExt is the extension of every corpus file.
const FileExt = ".txt"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Library maps corpus names to "<dir>/<name>.txt" files.
type Library struct {
	dir string
}

// NewLibrary creates a Library rooted at dir. The directory does not have to exist.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// Dir returns the samples directory.
func (l *Library) Dir() string {
	return l.dir
}

// ValidateName rejects names that could resolve outside the samples directory.
// It never touches the filesystem.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return internalErrors.NewInvalidNameError(name, "name is required")
	case strings.Contains(name, ".."):
		return internalErrors.NewInvalidNameError(name, "contains a parent-directory sequence")
	case strings.ContainsAny(name, `/\`):
		return internalErrors.NewInvalidNameError(name, "contains a path separator")
	case strings.ContainsRune(name, 0):
		return internalErrors.NewInvalidNameError(name, "contains a NUL byte")
	}
	return nil
}

// Path returns the backing file path for name after validating it.
func (l *Library) Path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(l.dir, name+FileExt), nil
}

// Stat returns the metadata of the backing file for name.
func (l *Library) Stat(name string) (fs.FileInfo, error) {
	path, err := l.Path(name)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, internalErrors.NewCorpusNotFoundError(name)
		}
		return nil, internalErrors.NewLoadError(name, err)
	}
	if info.IsDir() {
		return nil, internalErrors.NewLoadError(name, fmt.Errorf("%s is a directory", path))
	}
	return info, nil
}

// Read returns the full UTF-8 content of the backing file for name together
// with the metadata of the file that was actually read. A leading byte-order
// mark is dropped.
func (l *Library) Read(name string) ([]byte, fs.FileInfo, error) {
	path, err := l.Path(name)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(path) // #nosec G304 -- name is validated against traversal above
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, internalErrors.NewCorpusNotFoundError(name)
		}
		return nil, nil, internalErrors.NewLoadError(name, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, nil, internalErrors.NewLoadError(name, err)
	}
	if info.IsDir() {
		return nil, nil, internalErrors.NewLoadError(name, fmt.Errorf("%s is a directory", path))
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, internalErrors.NewLoadError(name, err)
	}
	if !utf8.Valid(data) {
		return nil, nil, internalErrors.NewLoadError(name, errors.New("file is not valid UTF-8"))
	}

	return bytes.TrimPrefix(data, utf8BOM), info, nil
}

// List returns the sorted names of all corpora in the samples directory.
// A missing directory yields an empty list.
func (l *Library) List() ([]string, error) {
	items, err := os.ReadDir(l.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read samples directory %s: %w", l.dir, err)
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		if item.IsDir() || filepath.Ext(item.Name()) != FileExt {
			continue
		}
		name := strings.TrimSuffix(item.Name(), FileExt)
		if ValidateName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// SplitLines returns the non-blank lines of data with surrounding whitespace
// removed, in file order.
func SplitLines(data []byte) []string {
	raw := strings.Split(string(data), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
