package apps

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const desktopGroup = "[Desktop Entry]"

// Entry is the subset of a desktop entry the launcher needs.
type Entry struct {
	Path      string
	Name      string
	Exec      string
	Icon      string
	WorkDir   string
	Type      string
	Terminal  bool
	Hidden    bool
	NoDisplay bool
}

// Visible reports whether the entry should be offered in the list.
func (e *Entry) Visible() bool {
	return e.Type == "Application" && !e.Hidden && !e.NoDisplay && e.Name != "" && e.Exec != ""
}

var errNoDesktopGroup = errors.New("missing [Desktop Entry] group")

// ParseEntry reads the [Desktop Entry] group of a desktop file. Localised
// keys such as Name[de] are ignored.
func ParseEntry(path string, r io.Reader) (*Entry, error) {
	entry := &Entry{Path: path}
	scanner := bufio.NewScanner(r)
	inGroup := false
	seenGroup := false
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if strings.HasPrefix(text, "[") {
			inGroup = text == desktopGroup
			if inGroup {
				seenGroup = true
			}
			continue
		}
		if !inGroup {
			continue
		}
		key, value, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: expected key=value", line)
		}
		key = strings.TrimSpace(key)
		value = unescapeValue(strings.TrimSpace(value))
		var err error
		switch key {
		case "Name":
			entry.Name = value
		case "Exec":
			entry.Exec = value
		case "Icon":
			entry.Icon = value
		case "Path":
			entry.WorkDir = value
		case "Type":
			entry.Type = value
		case "Terminal":
			entry.Terminal, err = parseBool(value)
		case "Hidden":
			entry.Hidden, err = parseBool(value)
		case "NoDisplay":
			entry.NoDisplay, err = parseBool(value)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, key, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !seenGroup {
		return nil, errNoDesktopGroup
	}
	return entry, nil
}

func parseBool(value string) (bool, error) {
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return strconv.ParseBool(value)
}

// unescapeValue applies the desktop entry string escapes \s \n \t \r \\.
func unescapeValue(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c != '\\' || i+1 == len(value) {
			b.WriteByte(c)
			continue
		}
		i++
		switch value[i] {
		case 's':
			b.WriteByte(' ')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(value[i])
		}
	}
	return b.String()
}
