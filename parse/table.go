// Package parse assembles the LR(1) automaton into a shift/reduce/goto
// table, detects conflicts while doing so, and runs the table-driven parser
// that walks the result against a token stream.
package parse

import (
	"fmt"

	"github.com/kestrel-dev/redhorse/automaton"
	"github.com/kestrel-dev/redhorse/grammar"
	"github.com/kestrel-dev/redhorse/rgerrors"
)

// ActionKind distinguishes the three entries an action-table cell can hold.
type ActionKind int

const (
	// Shift reads one token of input and transitions to another state.
	Shift ActionKind = iota
	// Reduce replaces the top |rhs| stack symbols with a rule's LHS.
	Reduce
	// Accept ends the parse successfully. It is produced only by the
	// augmented item seeded at automaton construction, never by a rule in
	// the grammar itself (see automaton.AugmentedRule).
	Accept
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Accept:
		return "accept"
	default:
		return "reduce"
	}
}

// ActionEntry is one cell of a Row's action map: a Shift carries the
// destination state index in Value; a Reduce carries the rule index; Accept
// carries no meaningful Value.
type ActionEntry struct {
	Kind  ActionKind
	Value int
}

func (e ActionEntry) String() string {
	switch e.Kind {
	case Shift:
		return fmt.Sprintf("shift %d", e.Value)
	case Accept:
		return "accept"
	default:
		return fmt.Sprintf("reduce rule %d", e.Value)
	}
}

// Row is one state's slice of the table: the action map keyed by terminal
// symbol, and the goto map keyed by non-terminal symbol.
type Row struct {
	Action map[string]ActionEntry
	Goto   map[string]int
}

func newRow() Row {
	return Row{Action: map[string]ActionEntry{}, Goto: map[string]int{}}
}

// Table is the ordered sequence of rows produced by BuildTable, one per
// admitted automaton state, indexed identically to that state's Index.
type Table struct {
	Rows    []Row
	Initial int
}

// BuildTable translates an LR(1) automaton into action/goto rows, detecting
// conflicts strictly: any attempt to overwrite an existing action- or
// goto-table entry fails construction. This fixes the behavior the design
// notes flag as a bug in shift/reduce and shift/shift handling -- all three
// conflict kinds now return a structured *rgerrors.ConflictError rather than
// only reduce/reduce being reported.
func BuildTable(aut *automaton.Automaton, g *grammar.Grammar) (*Table, error) {
	if len(g.Rules) == 0 {
		return nil, rgerrors.NewEmptyGrammarError()
	}

	rows := make([]Row, len(aut.States))

	for _, s := range aut.States {
		row := newRow()

		for _, e := range s.Out {
			if grammar.IsTerminal(e.Label) {
				if err := setAction(row, s.Index, e.Label, ActionEntry{Kind: Shift, Value: e.To.Index}); err != nil {
					return nil, err
				}
			} else {
				if err := setGoto(row, s.Index, e.Label, e.To.Index); err != nil {
					return nil, err
				}
			}
		}

		for _, it := range s.Items {
			if !it.AtEnd(g) {
				continue
			}
			entry := ActionEntry{Kind: Reduce, Value: it.Rule}
			if it.Rule == automaton.AugmentedRule {
				entry = ActionEntry{Kind: Accept}
			}
			for _, t := range it.Lookahead.Ordered() {
				if err := setAction(row, s.Index, t, entry); err != nil {
					return nil, err
				}
			}
		}

		rows[s.Index] = row
	}

	return &Table{Rows: rows, Initial: aut.Start.Index}, nil
}

func setAction(row Row, state int, symbol string, entry ActionEntry) error {
	if existing, ok := row.Action[symbol]; ok && existing != entry {
		kind := rgerrors.ReduceReduce
		switch {
		case existing.Kind == Shift && entry.Kind == Shift:
			kind = rgerrors.ShiftShift
		case existing.Kind == Shift || entry.Kind == Shift:
			kind = rgerrors.ShiftReduce
		}
		return rgerrors.NewConflictError(kind, state, symbol, existing.String(), entry.String())
	}
	row.Action[symbol] = entry
	return nil
}

func setGoto(row Row, state int, symbol string, dest int) error {
	if existing, ok := row.Goto[symbol]; ok && existing != dest {
		return rgerrors.NewConflictError(rgerrors.GotoGoto, state, symbol, fmt.Sprintf("goto %d", existing), fmt.Sprintf("goto %d", dest))
	}
	row.Goto[symbol] = dest
	return nil
}
