package engine

import (
	"errors"

	"github.com/atomicstack/superspace/internal/logging/events"
	"github.com/atomicstack/superspace/internal/menu"
)

var errNoSubmenus = errors.New("submenus are unavailable")

// submenuCache keeps every successfully loaded submenu for the life of the
// engine. Entries are appended once and never replaced or evicted; failed
// loads are not recorded.
type submenuCache struct {
	defs  []*menu.SubmenuDef
	index map[string]int
}

func newSubmenuCache() *submenuCache {
	return &submenuCache{index: make(map[string]int)}
}

// get returns the cached definition for name, loading it on first use.
func (c *submenuCache) get(name string, loader menu.SubmenuLoader) (*menu.SubmenuDef, error) {
	if handle, ok := c.index[name]; ok {
		events.Submenu.Load(name, true)
		return c.defs[handle], nil
	}
	if loader == nil {
		return nil, errNoSubmenus
	}
	def, err := loader.Load(name)
	if err != nil {
		return nil, err
	}
	events.Submenu.Load(name, false)
	c.index[name] = len(c.defs)
	c.defs = append(c.defs, def)
	return def, nil
}

func (c *submenuCache) len() int {
	return len(c.defs)
}
