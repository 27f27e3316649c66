package grammar

import "github.com/kestrel-dev/redhorse/internal/rgutil"

// FIRST computes, for every non-terminal in g, the set of terminals that can
// begin any sentential form derivable from it, under the simplifying
// assumption that no production is an epsilon production (see the Open
// Questions in the design notes: nullable tracking is not implemented).
//
// Only the leftmost RHS symbol of each rule is ever consulted:
//
//	A -> X β    if X is terminal t:     FIRST(A) ⊇ {t}
//	A -> X β    if X is non-terminal Y: FIRST(A) ⊇ FIRST(Y)
//
// This is sound precisely because no production may derive the empty string;
// if it could, a rule's FIRST set would also need to draw from symbols after
// X whenever X were nullable. The computation iterates passes over all rules
// until one produces no change. Since FIRST sets are monotone subsets of the
// finite terminal alphabet, this always terminates.
func (g *Grammar) FIRST() map[string]rgutil.StringSet {
	if g.first != nil {
		return g.first
	}

	first := make(map[string]rgutil.StringSet, len(g.nonTerms))
	for _, nt := range g.NonTerminals() {
		first[nt] = rgutil.NewStringSet()
	}

	for {
		var changed bool
		for _, r := range g.Rules {
			if len(r.RHS) == 0 {
				continue
			}
			x := r.RHS[0]
			if IsTerminal(x) {
				if !first[r.LHS].Has(x) {
					first[r.LHS].Add(x)
					changed = true
				}
			} else {
				if first[r.LHS].AddAll(first[x]) {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	g.first = first
	return first
}

// First returns FIRST(nt), or an empty set if nt is not a declared
// non-terminal.
func (g *Grammar) First(nt string) rgutil.StringSet {
	return g.FIRST()[nt]
}
