package menu

import "fmt"

// CommandEntry is a top-level command selectable by its prefix.
type CommandEntry struct {
	Prefix      string
	Description string
	Action      Action
	Index       int
}

// CommandSet owns the top-level commands in declaration order.
type CommandSet struct {
	entries []CommandEntry
	byKey   map[string]int
}

// NewCommandSet builds a set from entries in declaration order. Index is
// assigned here and never changes.
func NewCommandSet(entries []CommandEntry) (*CommandSet, error) {
	s := &CommandSet{
		entries: make([]CommandEntry, 0, len(entries)),
		byKey:   make(map[string]int, len(entries)),
	}
	for _, entry := range entries {
		if _, ok := s.byKey[entry.Prefix]; ok {
			return nil, fmt.Errorf("duplicate command %s", entry.Prefix)
		}
		entry.Index = len(s.entries)
		s.byKey[entry.Prefix] = entry.Index
		s.entries = append(s.entries, entry)
	}
	return s, nil
}

// Len returns the number of commands.
func (s *CommandSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// At returns the command with declaration index i.
func (s *CommandSet) At(i int) CommandEntry {
	return s.entries[i]
}

// Lookup finds a command by exact prefix.
func (s *CommandSet) Lookup(prefix string) (CommandEntry, bool) {
	if s == nil {
		return CommandEntry{}, false
	}
	i, ok := s.byKey[prefix]
	if !ok {
		return CommandEntry{}, false
	}
	return s.entries[i], true
}

// Entries returns a copy of all commands in declaration order.
func (s *CommandSet) Entries() []CommandEntry {
	if s == nil {
		return nil
	}
	dup := make([]CommandEntry, len(s.entries))
	copy(dup, s.entries)
	return dup
}

// Prefixes returns every prefix in declaration order.
func (s *CommandSet) Prefixes() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.entries))
	for i, entry := range s.entries {
		out[i] = entry.Prefix
	}
	return out
}
