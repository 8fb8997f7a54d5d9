package series

// Series is a named column of string values with a validity mask.
// A position can either hold a value or be null; expressions never see
// null positions.
type Series struct {
	Name string

	values []string
	valid  []bool
}

// New returns an empty Series with room for capacity values.
func New(name string, capacity int) *Series {
	return &Series{
		Name:   name,
		values: make([]string, 0, capacity),
		valid:  make([]bool, 0, capacity),
	}
}

// FromStrings builds a Series where every value is set.
func FromStrings(name string, values []string) *Series {
	s := New(name, len(values))
	for _, v := range values {
		s.Append(v)
	}
	return s
}

// Append adds a value to the end of the series.
func (s *Series) Append(v string) {
	s.values = append(s.values, v)
	s.valid = append(s.valid, true)
}

// AppendNull adds a null position to the end of the series.
func (s *Series) AppendNull() {
	s.values = append(s.values, "")
	s.valid = append(s.valid, false)
}

// Len returns the number of positions, null ones included.
func (s *Series) Len() int {
	return len(s.values)
}

// Value returns the value at i and whether it is set.
func (s *Series) Value(i int) (string, bool) {
	return s.values[i], s.valid[i]
}

// IsNull reports whether position i is null.
func (s *Series) IsNull(i int) bool {
	return !s.valid[i]
}

// Strings materializes the series; null positions come out as the
// empty string.
func (s *Series) Strings() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}
