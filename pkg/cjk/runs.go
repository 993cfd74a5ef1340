// Package cjk scans mixed-script text for runs of CJK Unified Ideographs.
package cjk

import "unicode/utf8"

const (
	blockStart = '\u4e00'
	blockEnd   = '\u9fff'
)

// IsIdeograph reports whether r lies in the CJK Unified Ideographs block.
func IsIdeograph(r rune) bool {
	return r >= blockStart && r <= blockEnd
}

// Runs returns every maximal run of ideographs in s, in order of appearance.
// Text between runs is discarded.
func Runs(s string) []string {
	runs := make([]string, 0, 2)
	start := -1
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case IsIdeograph(r) && start < 0:
			start = i
		case !IsIdeograph(r) && start >= 0:
			runs = append(runs, s[start:i])
			start = -1
		}
		i += size
	}
	if start >= 0 {
		runs = append(runs, s[start:])
	}
	return runs
}
