package asm

import "sync"

// Mnemonic owns the ordered signature table for one instruction name: the
// ordered list of Recipes, tried in declaration order during mode selection,
// plus a lazily built exact-match cache keyed by the joined signature string
// (see Recipe.Signature) so that the common case — the caller's argument
// tuple matches a table entry exactly — is a single map lookup instead of a
// walk over every candidate.
type Mnemonic struct {
	Name    string
	Recipes []Recipe

	cacheOnce sync.Once
	exact     map[string]*Recipe
}

// ExactMatch returns the recipe whose declared signature equals sig exactly,
// if any. The cache is built once, on first use.
func (m *Mnemonic) ExactMatch(sig string) (*Recipe, bool) {
	m.cacheOnce.Do(func() {
		m.exact = make(map[string]*Recipe, len(m.Recipes))
		for i := range m.Recipes {
			key := m.Recipes[i].Signature()
			if _, exists := m.exact[key]; !exists {
				m.exact[key] = &m.Recipes[i]
			}
		}
	})
	r, ok := m.exact[sig]
	return r, ok
}
