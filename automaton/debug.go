package automaton

import (
	"fmt"
	"strings"

	"github.com/kestrel-dev/redhorse/grammar"
)

// Dump renders every admitted state, its items, and its incident edges, in
// admission order. The exact formatting is not part of the contract (spec
// §6.4) -- only that it is human-readable and deterministic for a given
// grammar, which it is here since states are always walked in Index order.
func (a *Automaton) Dump(g *grammar.Grammar) string {
	var sb strings.Builder
	for _, s := range a.States {
		fmt.Fprintf(&sb, "state %d:\n", s.Index)
		for _, it := range s.Items {
			fmt.Fprintf(&sb, "  %s\n", it.String(g))
		}
		for _, e := range s.Out {
			fmt.Fprintf(&sb, "  --%s--> %d\n", e.Label, e.To.Index)
		}
		for _, e := range s.In {
			fmt.Fprintf(&sb, "  %d --%s--> (this)\n", e.From.Index, e.Label)
		}
	}
	return sb.String()
}
