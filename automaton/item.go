package automaton

import (
	"fmt"

	"github.com/kestrel-dev/redhorse/grammar"
	"github.com/kestrel-dev/redhorse/internal/rgutil"
)

// AugmentedRule is the sentinel Rule value for the implicit S' -> S item
// seeded into the initial state (see Build). It never appears in a
// grammar.Grammar and is never emitted as a Reduce action: a dot-at-end
// augmented item produces Accept instead (parse/table.go), which is what
// lets the table builder tell "done" apart from "reduce the root rule and
// keep going" -- a distinction a grammar whose start symbol is directly
// left-recursive on itself depends on to conflict the way it should.
const AugmentedRule = -1

// Item is an LR(1) item: a reference to a rule by its stable index (or
// AugmentedRule), a dot position, and a lookahead set. Two items with the
// same Rule and Dot are core-equal; their lookahead sets are merged rather
// than kept as separate items (see itemCoreKey and State.addItem).
type Item struct {
	Rule      int
	Dot       int
	Lookahead rgutil.StringSet
}

// AtEnd returns whether the dot has advanced past the entire RHS of the
// item's rule (or, for the augmented item, past the single start-symbol
// slot), i.e. this item calls for a reduction or, for the augmented item,
// Accept.
func (it *Item) AtEnd(g *grammar.Grammar) bool {
	if it.Rule == AugmentedRule {
		return it.Dot >= 1
	}
	return it.Dot >= len(g.Rules[it.Rule].RHS)
}

// NextSymbol returns the symbol immediately after the dot, and true, or ""
// and false if the dot is at the end. For the augmented item the one symbol
// is the grammar's start symbol.
func (it *Item) NextSymbol(g *grammar.Grammar) (string, bool) {
	if it.Rule == AugmentedRule {
		if it.Dot == 0 {
			return g.StartSymbol(), true
		}
		return "", false
	}
	rhs := g.Rules[it.Rule].RHS
	if it.Dot >= len(rhs) {
		return "", false
	}
	return rhs[it.Dot], true
}

// String renders the item in "LHS -> α . β, lookahead-set" form, primarily
// for debug output.
func (it *Item) String(g *grammar.Grammar) string {
	if it.Rule == AugmentedRule {
		marker := ". " + g.StartSymbol()
		if it.Dot >= 1 {
			marker = g.StartSymbol() + " ."
		}
		return fmt.Sprintf("S' -> %s, %s", marker, it.Lookahead)
	}
	r := g.Rules[it.Rule]
	left := r.RHS[:it.Dot]
	right := r.RHS[it.Dot:]
	return fmt.Sprintf("%s -> %s . %s, %s", r.LHS, joinSymbols(left), joinSymbols(right), it.Lookahead)
}

func joinSymbols(syms []string) string {
	out := ""
	for i, s := range syms {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}
