package literal

// Seq is an ordered set of distinct literals.
//
// Templates contribute their leading context to a Seq when a set of templates
// is compiled; the Seq then feeds a multi-pattern prefilter. Insertion order
// is preserved and duplicates are dropped, so Get(i) is stable for the
// lifetime of the Seq.
//
// Example:
//
//	seq := literal.NewSeq("GET ", "POST ", "GET ")
//	fmt.Println(seq.Len()) // 2
type Seq struct {
	literals []string
	index    map[string]int
	hasEmpty bool
}

// NewSeq creates a sequence from the given literals, dropping duplicates.
func NewSeq(lits ...string) *Seq {
	s := &Seq{index: make(map[string]int, len(lits))}
	for _, lit := range lits {
		s.Add(lit)
	}
	return s
}

// Add appends lit unless it is already present.
// Returns the index of lit in the sequence.
func (s *Seq) Add(lit string) int {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[lit]; ok {
		return i
	}
	if lit == "" {
		s.hasEmpty = true
	}
	s.literals = append(s.literals, lit)
	s.index[lit] = len(s.literals) - 1
	return len(s.literals) - 1
}

// Len returns the number of distinct literals.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i.
// Panics if i is out of bounds.
func (s *Seq) Get(i int) string {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// ContainsEmpty reports whether the empty literal was added.
//
// An empty literal matches everywhere, which makes the whole sequence useless
// as a prefilter.
func (s *Seq) ContainsEmpty() bool {
	return s != nil && s.hasEmpty
}

// Literals returns a copy of the literals in insertion order.
func (s *Seq) Literals() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.literals))
	copy(out, s.literals)
	return out
}
