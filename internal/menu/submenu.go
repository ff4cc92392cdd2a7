package menu

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrSubmenuNotFound is returned when no definition exists for a name.
var ErrSubmenuNotFound = errors.New("submenu not found")

// NotFoundError reports a submenu name with no definition behind it.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "file not found: " + e.Path
}

// Is matches ErrSubmenuNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrSubmenuNotFound
}

// SubmenuLoader fetches a submenu definition by name.
type SubmenuLoader interface {
	Load(name string) (*SubmenuDef, error)
}

// DirLoader reads submenus from <Dir>/<name>.toml.
type DirLoader struct {
	Dir string
}

// Path returns the file a submenu name maps to.
func (d DirLoader) Path(name string) string {
	return filepath.Join(d.Dir, name+".toml")
}

// Load implements SubmenuLoader. A missing file wraps ErrSubmenuNotFound.
func (d DirLoader) Load(name string) (*SubmenuDef, error) {
	path := d.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	def, err := ParseSubmenu(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// StaticLoader serves submenus from memory.
type StaticLoader map[string]*SubmenuDef

// Load implements SubmenuLoader.
func (s StaticLoader) Load(name string) (*SubmenuDef, error) {
	if def, ok := s[name]; ok && def != nil {
		return def, nil
	}
	return nil, &NotFoundError{Path: name + ".toml"}
}
