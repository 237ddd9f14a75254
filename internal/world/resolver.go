package world

// AliasResolver maps common misspellings and shorthand to canonical block
// names. Unknown names pass through unchanged, so callers never need to
// special-case a miss.
type AliasResolver struct {
	aliases map[string]string
}

func NewAliasResolver(aliases map[string]string) *AliasResolver {
	dup := make(map[string]string, len(aliases))
	for k, v := range aliases {
		dup[k] = v
	}
	return &AliasResolver{aliases: dup}
}

func (r *AliasResolver) Canonical(name string) string {
	if canonical, ok := r.aliases[name]; ok {
		return canonical
	}
	return name
}

// PassThroughResolver resolves every name to itself.
type PassThroughResolver struct{}

func (PassThroughResolver) Canonical(name string) string { return name }
