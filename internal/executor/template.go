package executor

import "regexp"

// Placeholder names are Unicode word characters.
var placeholder = regexp.MustCompile(`\{\{([\p{L}\p{M}\p{N}\p{Pc}]+)\}\}`)

// Lookup resolves a placeholder name. ok is false when nothing defines it.
type Lookup func(name string) (value string, ok bool)

// Layered resolves through each lookup in turn.
func Layered(lookups ...Lookup) Lookup {
	return func(name string) (string, bool) {
		for _, l := range lookups {
			if l == nil {
				continue
			}
			if v, ok := l(name); ok {
				return v, true
			}
		}
		return "", false
	}
}

// MapLookup adapts a plain map.
func MapLookup(m map[string]string) Lookup {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

// Expand substitutes every {{name}} in each template element. Unresolved
// names become the empty string. Each element stays a single argument; no
// shell ever sees the result.
func Expand(template []string, lookup Lookup) []string {
	out := make([]string, len(template))
	for i, arg := range template {
		out[i] = expandOne(arg, lookup)
	}
	return out
}

func expandOne(arg string, lookup Lookup) string {
	return placeholder.ReplaceAllStringFunc(arg, func(match string) string {
		name := placeholder.FindStringSubmatch(match)[1]
		if lookup == nil {
			return ""
		}
		v, _ := lookup(name)
		return v
	})
}
