package builder

// Registry holds the ordered set of strategies. Resolution is first-match in
// registration order; the caller controls order and keeps Detect predicates
// mutually exclusive by convention.
type Registry struct {
	builders []Builder
}

// NewRegistry creates a registry with the given strategies, in order.
func NewRegistry(builders ...Builder) *Registry {
	r := &Registry{}
	for _, b := range builders {
		r.Register(b)
	}
	return r
}

// Register appends a strategy. No dedup or priority is enforced.
func (r *Registry) Register(b Builder) {
	r.builders = append(r.builders, b)
}

// Resolve returns the first registered strategy whose Detect claims the
// theme path, or false when none does.
func (r *Registry) Resolve(themePath string) (Builder, bool) {
	for _, b := range r.builders {
		if b.Detect(themePath) {
			return b, true
		}
	}
	return nil, false
}
