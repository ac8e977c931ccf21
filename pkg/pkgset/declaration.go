package pkgset

// Declaration is anything that can describe packages to install
type Declaration interface {
	Declare() *Builder
}

// Name declares a single package
type Name string

func (n Name) Declare() *Builder {
	return New(string(n))
}

// Names declares several packages at once
type Names []string

func (n Names) Declare() *Builder {
	return New(n...)
}

// Declarations batches heterogeneous declarations into one
type Declarations []Declaration

// Declare merges every member, first explicit backend winning
func (d Declarations) Declare() *Builder {
	out := &Builder{}
	for _, decl := range d {
		if decl == nil {
			continue
		}
		out.Merge(decl.Declare())
	}
	return out
}
