// Package staging writes attachment contents to local files so they can be
// uploaded under a new name or opened in a viewer.
package staging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/runoshun/jira-attach/internal/domain"
)

// Ensure Area implements domain.Stager.
var _ domain.Stager = (*Area)(nil)

// Area is a directory that staged files are written to.
type Area struct {
	staged    []string
	root      string
	dir       string
	mu        sync.Mutex
	temporary bool
	overwrite bool
}

// NewTemp returns an Area backed by a fresh directory below root, created on
// first use. Cleanup removes the whole directory.
func NewTemp(root string) *Area {
	return &Area{root: root, temporary: true, overwrite: true}
}

// NewDir returns an Area writing directly into dir. Existing files are
// replaced only when overwrite is set; otherwise Stage fails with
// ErrFileExists. Cleanup removes only the files staged by this Area.
func NewDir(dir string, overwrite bool) *Area {
	return &Area{dir: dir, overwrite: overwrite}
}

// Dir returns the directory files are staged in. It is empty for a
// temporary Area that has not staged anything yet.
func (a *Area) Dir() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dir
}

// Stage writes data to a file called name and returns its path.
// name must be a plain file name.
func (a *Area) Stage(name string, data []byte) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureDir(); err != nil {
		return "", err
	}

	path := filepath.Join(a.dir, name)
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !a.overwrite {
		flags = os.O_CREATE | os.O_WRONLY | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrFileExists, path)
		}
		return "", fmt.Errorf("stage %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("stage %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("stage %s: %w", name, err)
	}

	a.staged = append(a.staged, path)
	return path, nil
}

// Cleanup removes everything staged so far.
func (a *Area) Cleanup() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	defer func() { a.staged = nil }()
	if a.temporary {
		if a.dir == "" {
			return nil
		}
		err := os.RemoveAll(a.dir)
		a.dir = ""
		return err
	}

	var errs []error
	for _, p := range a.staged {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *Area) ensureDir() error {
	if a.temporary {
		if a.dir != "" {
			return nil
		}
		if err := os.MkdirAll(a.root, 0o700); err != nil {
			return fmt.Errorf("create staging root: %w", err)
		}
		dir, err := os.MkdirTemp(a.root, "batch-")
		if err != nil {
			return fmt.Errorf("create staging directory: %w", err)
		}
		a.dir = dir
		return nil
	}
	if err := os.MkdirAll(a.dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return nil
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", domain.ErrInvalidName, name)
	}
	return nil
}

// Factory implements domain.StagerFactory.
type Factory struct {
	root string
}

// Ensure Factory implements domain.StagerFactory.
var _ domain.StagerFactory = (*Factory)(nil)

// NewFactory returns a Factory placing temporary areas below root.
func NewFactory(root string) *Factory {
	return &Factory{root: root}
}

// Temp returns an area in a fresh directory below the factory root.
func (f *Factory) Temp() domain.Stager {
	return NewTemp(f.root)
}

// Dir returns an area writing into dir.
func (f *Factory) Dir(dir string, overwrite bool) domain.Stager {
	return NewDir(dir, overwrite)
}
