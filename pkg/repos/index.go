package repos

// DocIndex is a membership set over repository display names, answering
// the single question the reconciler asks: does this repository have
// generated documentation.
type DocIndex struct {
	names map[string]struct{}
}

// NewDocIndex builds an index from repository display names.
func NewDocIndex(names ...string) DocIndex {
	idx := DocIndex{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		if name == "" {
			continue
		}
		idx.names[name] = struct{}{}
	}
	return idx
}

// Has reports whether documentation exists for the given display name.
func (d DocIndex) Has(name string) bool {
	_, ok := d.names[name]
	return ok
}

// Len returns the number of documented repositories.
func (d DocIndex) Len() int {
	return len(d.names)
}
