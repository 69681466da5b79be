package project

import (
	"strings"
	"unicode"
)

// OrganismName removes a trailing assembly version token from a portal
// display name. A version token is the last space-delimited field that
// starts with 'v' or 'V', has a digit as its second character and ends
// with a digit ("v1.0", "V2", "v1.2").
func OrganismName(label string) string {
	fields := strings.Split(strings.TrimSpace(label), " ")
	last := fields[len(fields)-1]
	if !IsVersionToken(last) {
		return label
	}
	return strings.Join(fields[:len(fields)-1], " ")
}

// IsVersionToken checks if a word looks like an assembly version.
func IsVersionToken(s string) bool {
	rs := []rune(s)
	if len(rs) < 2 {
		return false
	}
	if rs[0] != 'v' && rs[0] != 'V' {
		return false
	}
	return unicode.IsDigit(rs[1]) && unicode.IsDigit(rs[len(rs)-1])
}
