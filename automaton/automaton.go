// Package automaton builds the canonical LR(1) automaton from a grammar:
// item closure, GOTO, and the worklist-driven state admission/merging that
// turns tentative item sets into a deduplicated state graph.
package automaton

import (
	"github.com/kestrel-dev/redhorse/grammar"
	"github.com/kestrel-dev/redhorse/internal/rgutil"
)

// Automaton is the admitted, deduplicated collection of LR(1) states. No two
// admitted states are item-set-equal (invariant enforced during Build).
type Automaton struct {
	States []*State
	Start  *State
}

// Build constructs the canonical LR(1) automaton for g. The initial state
// seeds from the implicit item [S' -> . S, END] (AugmentedRule), where S is
// g.StartSymbol() -- a real augmented production, just one that never
// touches g.Rules. This matters for grammars whose start symbol is itself
// directly recursive (S -> S): without it, "accept" and "reduce the root
// rule again" would be the same table action and the genuine LR(1) conflict
// between them would go undetected.
//
// Build assigns rule indices via g.AssignIndices and validates g before
// construction; both the grammar and the returned automaton are safe to read
// concurrently afterward, but Build itself must not be called concurrently
// on the same *grammar.Grammar.
func Build(g *grammar.Grammar) (*Automaton, error) {
	g.AssignIndices()
	if err := g.Validate(); err != nil {
		return nil, err
	}
	first := g.FIRST()

	initial := newState()
	initial.addItem(AugmentedRule, 0, rgutil.NewStringSet(grammar.End))

	aut := &Automaton{}
	worklist := []*State{initial}

	for len(worklist) > 0 {
		// LIFO discipline: the construction is confluent regardless of
		// worklist order (see the design notes), so a stack is as good as
		// a queue and keeps memory usage bounded to the current frontier.
		q := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		closure(q, g, first)
		successors := goTo(q, g)

		if existing := findEquivalent(aut, q); existing != nil {
			redirect(q, existing)
			continue
		}

		q.Index = len(aut.States)
		aut.States = append(aut.States, q)
		if aut.Start == nil {
			aut.Start = q
		}
		worklist = append(worklist, successors...)
	}

	return aut, nil
}

// closure brings q to its closure fixed point in place, per §4.3: for every
// item [A -> α · B β, L] with B a non-terminal, for every rule B -> γ, add
// [B -> · γ, look], where look is {t} if β begins with terminal t, FIRST(Y)
// if β begins with non-terminal Y, or L itself if β is empty (lookahead
// propagation). Adding an item merges lookaheads into any existing core-equal
// item rather than duplicating it.
func closure(q *State, g *grammar.Grammar, first map[string]rgutil.StringSet) {
	changed := true
	for changed {
		changed = false
		// range over a snapshot: items appended during this pass are picked
		// up on the next one, which is how the fixed point is reached.
		for _, it := range q.Items {
			B, ok := it.NextSymbol(g)
			if !ok || grammar.IsTerminal(B) {
				continue
			}

			// the augmented item has only the one start-symbol slot, so
			// there is never anything after it: treat rest as empty rather
			// than index g.Rules with the AugmentedRule sentinel.
			var rest []string
			if it.Rule != AugmentedRule {
				rest = g.Rules[it.Rule].RHS[it.Dot+1:]
			}
			var look rgutil.StringSet
			switch {
			case len(rest) == 0:
				look = it.Lookahead
			case grammar.IsTerminal(rest[0]):
				look = rgutil.NewStringSet(rest[0])
			default:
				look = first[rest[0]]
			}

			for _, r := range g.RulesFor(B) {
				if q.addItem(r.Index, 0, look) {
					changed = true
				}
			}
		}
	}
}

// goTo partitions q's advancing items by the symbol right of the dot and
// creates one tentative successor state per distinct symbol, wiring an
// outgoing edge from q to each. The returned states are not yet closed; the
// caller closes them on a later worklist iteration (or discards them, if q
// itself turns out to be redirected).
func goTo(q *State, g *grammar.Grammar) []*State {
	bySymbol := make(map[string]*State)
	var order []string

	for _, it := range q.Items {
		X, ok := it.NextSymbol(g)
		if !ok {
			continue
		}
		succ, seen := bySymbol[X]
		if !seen {
			succ = newState()
			bySymbol[X] = succ
			order = append(order, X)
		}
		succ.addItem(it.Rule, it.Dot+1, it.Lookahead)
	}

	out := make([]*State, 0, len(order))
	for _, X := range order {
		succ := bySymbol[X]
		edge := Edge{From: q, To: succ, Label: X}
		q.Out = append(q.Out, edge)
		succ.In = append(succ.In, edge)
		out = append(out, succ)
	}
	return out
}

// findEquivalent returns the admitted state equal to q (per State.equal), or
// nil if none exists.
func findEquivalent(aut *Automaton, q *State) *State {
	for _, s := range aut.States {
		if s.equal(q) {
			return s
		}
	}
	return nil
}

// redirect folds the discarded tentative state q into the admitted
// equivalent state existing: every incoming edge of q is rewritten to
// terminate at existing instead, deduplicated against existing's current
// incoming edges. q's own outgoing edges (to its own tentative successors)
// are simply abandoned, along with those successors -- they will be reached
// via existing's own out edges, computed when existing was itself admitted.
func redirect(q, existing *State) {
	for _, e := range q.In {
		rewritten := Edge{From: e.From, To: existing, Label: e.Label}

		for i := range e.From.Out {
			if e.From.Out[i].To == q && e.From.Out[i].Label == e.Label {
				e.From.Out[i].To = existing
			}
		}

		if !hasEdge(existing.In, rewritten) {
			existing.In = append(existing.In, rewritten)
		}
	}
}

func hasEdge(edges []Edge, target Edge) bool {
	for _, e := range edges {
		if e.From == target.From && e.To == target.To && e.Label == target.Label {
			return true
		}
	}
	return false
}
