package search

import "strings"

// globMatch reports whether name matches pattern, case-insensitively.
// Only '*' (any sequence) and '?' (any single rune) are special; there
// are no character classes, so any filename character is literal.
func globMatch(pattern, name string) bool {
	p := []rune(strings.ToLower(pattern))
	n := []rune(strings.ToLower(name))

	pi, ni := 0, 0
	star, mark := -1, 0

	for ni < len(n) {
		switch {
		case pi < len(p) && (p[pi] == '?' || p[pi] == n[ni]):
			pi++
			ni++
		case pi < len(p) && p[pi] == '*':
			star = pi
			mark = ni
			pi++
		case star >= 0:
			// backtrack: let the last '*' absorb one more rune
			pi = star + 1
			mark++
			ni = mark
		default:
			return false
		}
	}

	for pi < len(p) && p[pi] == '*' {
		pi++
	}
	return pi == len(p)
}
