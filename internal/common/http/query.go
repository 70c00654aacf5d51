package http

import (
	"strconv"
	"strings"
)

// PositiveIntParam reads a query value the way browsers' parseInt does: leading
// whitespace is skipped and the longest leading integer is used ("3abc" is 3).
// Missing, non-numeric, zero and negative values yield fallback.
func PositiveIntParam(raw string, fallback int) int {
	s := strings.TrimLeft(raw, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return fallback
	}

	v, err := strconv.Atoi(s[:end])
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
