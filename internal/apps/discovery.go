// Package apps discovers launchable desktop applications from the XDG data
// directories and launches them.
package apps

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/atomicstack/superspace/internal/executor"
	"github.com/atomicstack/superspace/internal/logging"
	"github.com/atomicstack/superspace/internal/logging/events"
	"github.com/atomicstack/superspace/internal/menu"
)

const defaultDataDirs = "/usr/local/share:/usr/share"

// DataDirs returns the application directories to search, most important
// first: $XDG_DATA_HOME/applications then each $XDG_DATA_DIRS entry.
func DataDirs(getenv func(string) string) []string {
	var dirs []string
	home := getenv("XDG_DATA_HOME")
	if home == "" {
		if h := getenv("HOME"); h != "" {
			home = filepath.Join(h, ".local", "share")
		}
	}
	if filepath.IsAbs(home) {
		dirs = append(dirs, filepath.Join(home, "applications"))
	}
	data := getenv("XDG_DATA_DIRS")
	if data == "" {
		data = defaultDataDirs
	}
	for _, dir := range filepath.SplitList(data) {
		if !filepath.IsAbs(dir) {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, "applications"))
	}
	return dirs
}

// Discovery holds the applications found at startup. It implements both
// the engine's application provider and launcher.
type Discovery struct {
	items   []menu.ListItem
	entries map[string]*Entry
	runner  executor.Runner
	getenv  func(string) string
}

// Discover scans dirs for desktop entries. A desktop-file ID found in an
// earlier directory shadows the same ID in later ones. Missing directories
// are skipped; a directory that exists but cannot be listed is an error.
func Discover(dirs []string, runner executor.Runner, getenv func(string) string) (*Discovery, error) {
	if runner == nil {
		runner = executor.OSRunner{}
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	d := &Discovery{entries: make(map[string]*Entry), runner: runner, getenv: getenv}
	seen := make(map[string]bool)
	var found []*Entry
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, de fs.DirEntry, err error) error {
			if err != nil {
				if path == dir {
					return err
				}
				logging.Warn("skipping unreadable application path", zap.String("path", path), zap.Error(err))
				return nil
			}
			if de.IsDir() || !strings.HasSuffix(path, ".desktop") {
				return nil
			}
			id := desktopID(dir, path)
			if seen[id] {
				return nil
			}
			seen[id] = true
			entry, err := readEntry(path)
			if err != nil {
				logging.Warn("skipping desktop entry", zap.String("path", path), zap.Error(err))
				return nil
			}
			if entry.Visible() {
				found = append(found, entry)
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("list applications in %s: %w", dir, err)
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return strings.ToLower(found[i].Name) < strings.ToLower(found[j].Name)
	})
	d.items = make([]menu.ListItem, len(found))
	for i, entry := range found {
		d.entries[entry.Path] = entry
		d.items[i] = menu.ListItem{Name: entry.Name, Action: menu.LaunchApp{Handle: entry.Path}}
	}
	events.Apps.Discovered(dirs, len(found))
	return d, nil
}

// desktopID is the path below the applications directory with separators
// replaced by dashes.
func desktopID(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", "-")
}

func readEntry(path string) (*Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseEntry(path, f)
}

// Applications returns the discovered list, sorted by name.
func (d *Discovery) Applications() ([]menu.ListItem, bool) {
	return d.items, true
}

// Entry returns the parsed entry for a handle.
func (d *Discovery) Entry(handle string) (*Entry, bool) {
	entry, ok := d.entries[handle]
	return entry, ok
}

// Absent reports that application discovery is disabled.
type Absent struct{}

func (Absent) Applications() ([]menu.ListItem, bool) { return nil, false }
