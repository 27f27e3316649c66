// Package grammar holds the immutable grammar model: symbols, rules, and the
// derived sets (non-terminals, terminals, FIRST) that the automaton and table
// builders consume. A Grammar is built up by repeated calls to
// AddRule/SetCallback and is not safe for concurrent writes, but once table construction begins
// it is never mutated again and may be shared freely for reads.
package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/kestrel-dev/redhorse/internal/rgutil"
)

// IsTerminal returns whether sym is a terminal symbol: either a colon-prefixed
// literal or one of the five reserved token-class names (or END). Every other
// symbol is a non-terminal identifier.
func IsTerminal(sym string) bool {
	return IsLiteral(sym) || IsReservedClass(sym)
}

// Rule is an ordered triple (LHS, RHS, optional callback id). Rules receive a
// stable Index at the start of table construction; until then Index is 0.
// The rule at position 0 in a Grammar is the root rule.
type Rule struct {
	Index    int
	LHS      string
	RHS      []string
	Callback string
}

// String renders the rule in "LHS -> X Y Z" form, or "LHS -> ε" if the RHS is
// empty (epsilon productions are not supported by FIRST/closure, but the
// stringifier still renders one legibly if it somehow appears).
func (r Rule) String() string {
	rhs := strings.Join(r.RHS, " ")
	if rhs == "" {
		rhs = "ε"
	}
	s := fmt.Sprintf("%s -> %s", r.LHS, rhs)
	if r.Callback != "" {
		s += fmt.Sprintf(" {%s}", r.Callback)
	}
	return s
}

// Grammar is an ordered sequence of Rules plus the derived set of declared
// non-terminals (every LHS that has appeared). The first rule registered is
// the root rule; its LHS is the start symbol.
type Grammar struct {
	Rules []Rule

	nonTerms rgutil.StringSet
	first    map[string]rgutil.StringSet
}

// New returns an empty Grammar ready to have rules registered on it.
func New() *Grammar {
	return &Grammar{nonTerms: rgutil.NewStringSet()}
}

// AddRule appends a new rule with the given left-hand side and right-hand
// side, returning its position in Rules. The LHS need not be new: repeated
// LHS values are legal and represent alternation. Indices are not assigned
// until table construction begins (see AssignIndices); until then Index is 0
// for every rule added so far, matching the "unassigned" zero value.
func (g *Grammar) AddRule(lhs string, rhs ...string) int {
	g.nonTerms.Add(lhs)
	g.Rules = append(g.Rules, Rule{LHS: lhs, RHS: append([]string(nil), rhs...)})
	g.first = nil
	return len(g.Rules) - 1
}

// SetCallback sets the callback identifier fired on reduction of the rule at
// ruleIdx.
func (g *Grammar) SetCallback(ruleIdx int, callback string) {
	g.Rules[ruleIdx].Callback = callback
}

// AssignIndices stamps each rule with its positional index. Table
// construction calls this first; the stamped index is the value emitted into
// Reduce table entries.
func (g *Grammar) AssignIndices() {
	for i := range g.Rules {
		g.Rules[i].Index = i
	}
}

// StartSymbol returns the LHS of the root rule (the first rule registered).
func (g *Grammar) StartSymbol() string {
	if len(g.Rules) == 0 {
		return ""
	}
	return g.Rules[0].LHS
}

// NonTerminals returns the set of every LHS that has been registered, in the
// order rules introduced them.
func (g *Grammar) NonTerminals() []string {
	seen := rgutil.NewStringSet()
	out := make([]string, 0, len(g.nonTerms))
	for _, r := range g.Rules {
		if !seen.Has(r.LHS) {
			seen.Add(r.LHS)
			out = append(out, r.LHS)
		}
	}
	return out
}

// Terminals returns every distinct terminal symbol (literal or token-class)
// that appears on any RHS, in first-seen order.
func (g *Grammar) Terminals() []string {
	seen := rgutil.NewStringSet()
	var out []string
	for _, r := range g.Rules {
		for _, sym := range r.RHS {
			if IsTerminal(sym) && !seen.Has(sym) {
				seen.Add(sym)
				out = append(out, sym)
			}
		}
	}
	return out
}

// RulesFor returns every rule whose LHS is nt, in registration order.
func (g *Grammar) RulesFor(nt string) []Rule {
	var out []Rule
	for _, r := range g.Rules {
		if r.LHS == nt {
			out = append(out, r)
		}
	}
	return out
}

// Validate checks the grammar invariants from the data model: it must be
// non-empty, and every non-terminal appearing on any RHS must be the LHS of
// some rule.
func (g *Grammar) Validate() error {
	if len(g.Rules) == 0 {
		return errEmptyGrammar()
	}

	declared := g.nonTerms
	for _, r := range g.Rules {
		for _, sym := range r.RHS {
			if IsTerminal(sym) {
				continue
			}
			if !declared.Has(sym) {
				return errUndefinedNonTerminal(sym, r)
			}
		}
	}
	return nil
}

// Fingerprint returns a stable digest of the grammar's rule sequence (LHS,
// RHS, callback, in registration order), usable as a cache key for compiled
// tables. Two grammars built up identically fingerprint identically
// regardless of how that sequence was assembled.
func (g *Grammar) Fingerprint() string {
	h := sha256.New()
	for _, r := range g.Rules {
		fmt.Fprintf(h, "%s>%s>%s;", r.LHS, strings.Join(r.RHS, " "), r.Callback)
	}
	return hex.EncodeToString(h.Sum(nil))
}
