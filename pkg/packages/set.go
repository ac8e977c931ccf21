package packages

// orderedSet keeps insertion order for display
type orderedSet struct {
	order []string
	index map[string]bool
}

func newOrderedSet(values ...string) *orderedSet {
	s := &orderedSet{index: make(map[string]bool)}
	for _, v := range values {
		s.add(v)
	}
	return s
}

func (s *orderedSet) add(v string) {
	if v == "" || s.index[v] {
		return
	}
	s.index[v] = true
	s.order = append(s.order, v)
}

func (s *orderedSet) remove(v string) {
	if !s.index[v] {
		return
	}
	delete(s.index, v)
	for i, o := range s.order {
		if o == v {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *orderedSet) has(v string) bool {
	return s.index[v]
}

func (s *orderedSet) items() []string {
	return append([]string(nil), s.order...)
}
