package coretmpl

// Match is the result of locating a template in a text.
//
// A Match contains:
//   - Start position (inclusive)
//   - End position (exclusive)
//   - One captured group per template variable, left to right
//
// Positions are byte offsets into the matched text. A Match keeps no
// reference to the text or to the template that produced it, and it never
// changes after creation.
//
// Example:
//
//	tmpl := coretmpl.MustFromContexts(coretmpl.KindContexts, []string{"<", ">", "!"})
//	m := tmpl.TryMatch("<a>b!")
//	println(m.Start(), m.End()) // 0, 5
//	fmt.Println(m.Groups())     // [a b]
type Match struct {
	start  int
	end    int
	groups []string
}

// newMatch takes ownership of groups.
func newMatch(start, end int, groups []string) *Match {
	return &Match{
		start:  start,
		end:    end,
		groups: groups,
	}
}

// Start returns the inclusive start position of the match.
func (m *Match) Start() int {
	return m.start
}

// End returns the exclusive end position of the match.
func (m *Match) End() int {
	return m.end
}

// Len returns the length of the match in bytes.
func (m *Match) Len() int {
	return m.end - m.start
}

// IsEmpty returns true if the match has zero length.
func (m *Match) IsEmpty() bool {
	return m.start == m.end
}

// NumGroups returns the number of captured groups, one per variable.
func (m *Match) NumGroups() int {
	return len(m.groups)
}

// Group returns the i-th captured group.
// Panics if i is out of range.
func (m *Match) Group(i int) string {
	return m.groups[i]
}

// Groups returns the captured groups in variable order.
//
// The returned slice is a copy; modifying it does not affect the Match.
func (m *Match) Groups() []string {
	out := make([]string, len(m.groups))
	copy(out, m.groups)
	return out
}
