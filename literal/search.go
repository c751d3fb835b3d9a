// Package literal provides the literal substring search that drives
// context-based template matching, plus a small literal set used to build
// multi-template prefilters.
//
// All offsets are byte offsets into Go strings. Search works on bytes, not
// runes or graphemes, so offsets are directly usable for slicing the
// searched string.
package literal

// Index returns the index of the first occurrence of target in source at or
// after start, or -1 if target does not occur there.
//
// An empty target matches immediately at start.
//
// The search is a plain left-to-right scan that compares target against
// every candidate position in [start, len(source)-len(target)]. There is no
// preprocessing of target, so the worst case is O((n-m)*m). Context-based
// templates inherit this bound.
//
// Example:
//
//	literal.Index("key=value", "=", 0)  // 3
//	literal.Index("a=b=c", "=", 2)      // 3
//	literal.Index("abc", "", 2)         // 2
//	literal.Index("abc", "xyz", 0)      // -1
func Index(source, target string, start int) int {
	tlen := len(target)
	if tlen == 0 {
		return start
	}
	if start < 0 {
		start = 0
	}

	last := len(source) - tlen
	for i := start; i <= last; i++ {
		j := 0
		for j < tlen && source[i+j] == target[j] {
			j++
		}
		if j == tlen {
			return i
		}
	}
	return -1
}

// IndexAll returns the start offsets of every non-overlapping occurrence of
// target in source, left to right. Each search resumes at the end of the
// previous occurrence.
//
// Returns nil when target is empty or does not occur.
//
// Example:
//
//	literal.IndexAll("aXbXc", "X") // [1 3]
//	literal.IndexAll("aaaa", "aa") // [0 2]
func IndexAll(source, target string) []int {
	if len(target) == 0 {
		return nil
	}

	var positions []int
	pos := 0
	for {
		i := Index(source, target, pos)
		if i < 0 {
			return positions
		}
		positions = append(positions, i)
		pos = i + len(target)
	}
}
