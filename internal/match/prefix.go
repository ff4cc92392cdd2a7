package match

import "strings"

// Prefix returns the positions of candidates that start with input, in the
// order the candidates were given. Callers pass candidates in declaration
// order, so the first result is the first-declared match.
func Prefix(candidates []string, input string) []int {
	out := make([]int, 0, len(candidates))
	for i, c := range candidates {
		if strings.HasPrefix(c, input) {
			out = append(out, i)
		}
	}
	return out
}
