package typedclass

// New constructs an instance of s; see Shape.New.
func New(s *Shape, values map[string]any) (*Instance, error) { return s.New(values) }

// MustNew is like New but panics on error.
func MustNew(s *Shape, values map[string]any) *Instance {
	in, err := s.New(values)
	if err != nil {
		panic(err)
	}
	return in
}

// SafeNew constructs an instance, returning (nil, false) on any error.
func SafeNew(s *Shape, values map[string]any) (*Instance, bool) {
	in, err := s.New(values)
	if err != nil {
		return nil, false
	}
	return in, true
}

// Check collects every problem in values against s; see Shape.Validate.
func Check(s *Shape, values map[string]any) error { return s.Validate(values) }

// Is returns true if values would construct an instance of s.
func Is(s *Shape, values map[string]any) bool { return s.Validate(values) == nil }
