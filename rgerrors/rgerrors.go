// Package rgerrors holds the structured error types raised by the grammar,
// automaton, table, and parser packages. It follows the pattern used
// throughout this lineage for domain errors: an exported struct carrying
// the technical detail, a public constructor, and Error(), so callers can
// use errors.As to recover the structured fields when they need to.
package rgerrors

import (
	"fmt"

	"github.com/kestrel-dev/redhorse/internal/rgutil"
)

// ConflictKind distinguishes which pair of LR actions collided while the
// table builder was assigning an action-table entry.
type ConflictKind int

const (
	// ReduceReduce is raised when two distinct reductions would both apply
	// on the same (state, terminal) pair.
	ReduceReduce ConflictKind = iota
	// ShiftReduce is raised when a shift and a reduction would both apply on
	// the same (state, terminal) pair.
	ShiftReduce
	// ShiftShift is raised when two distinct shifts would both apply on the
	// same (state, terminal) pair. For a canonical LR(1) automaton this
	// indicates an internal invariant violation rather than an ambiguity in
	// the grammar itself.
	ShiftShift
	// GotoGoto is raised when two distinct goto targets would both apply on
	// the same (state, non-terminal) pair; like ShiftShift, this can only
	// happen if automaton construction itself is broken.
	GotoGoto
)

func (k ConflictKind) String() string {
	switch k {
	case ReduceReduce:
		return "reduce/reduce"
	case ShiftReduce:
		return "shift/reduce"
	case ShiftShift:
		return "shift/shift"
	case GotoGoto:
		return "goto/goto"
	default:
		return "unknown"
	}
}

// EmptyGrammarError is raised when table construction is invoked on a
// grammar with no rules.
type EmptyGrammarError struct{}

func (e *EmptyGrammarError) Error() string {
	return "grammar has no rules"
}

// NewEmptyGrammarError returns a new EmptyGrammarError.
func NewEmptyGrammarError() error {
	return &EmptyGrammarError{}
}

// UndefinedNonTerminalError is raised when a rule's RHS references a
// non-terminal that is not the LHS of any rule.
type UndefinedNonTerminalError struct {
	NonTerminal string
	InRule      string
}

func (e *UndefinedNonTerminalError) Error() string {
	return fmt.Sprintf("non-terminal %q is used in rule %q but is never defined as the left-hand side of any rule", e.NonTerminal, e.InRule)
}

// NewUndefinedNonTerminalError returns a new UndefinedNonTerminalError.
func NewUndefinedNonTerminalError(nonTerminal, inRule string) error {
	return &UndefinedNonTerminalError{NonTerminal: nonTerminal, InRule: inRule}
}

// ConflictError is raised by the table builder when assigning an action- or
// goto-table entry would overwrite an existing one.
type ConflictError struct {
	Kind     ConflictKind
	State    int
	Symbol   string
	Existing string
	New      string
}

func (e *ConflictError) Error() string {
	switch e.Kind {
	case GotoGoto:
		return fmt.Sprintf("goto/goto conflict in state %d on %q: %s vs %s (internal invariant violation)", e.State, e.Symbol, e.Existing, e.New)
	case ShiftShift:
		return fmt.Sprintf("shift/shift conflict in state %d on %q: %s vs %s (internal invariant violation)", e.State, e.Symbol, e.Existing, e.New)
	default:
		return fmt.Sprintf("%s conflict in state %d on terminal %q: %s vs %s", e.Kind, e.State, e.Symbol, e.Existing, e.New)
	}
}

// NewConflictError returns a new ConflictError.
func NewConflictError(kind ConflictKind, state int, symbol, existing, new string) error {
	return &ConflictError{Kind: kind, State: state, Symbol: symbol, Existing: existing, New: new}
}

// UnexpectedTokenError is a parse-time error raised when no action-table
// entry matches the current state and input token.
type UnexpectedTokenError struct {
	Lexeme   string
	Expected []string
}

func (e *UnexpectedTokenError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("unexpected token %q", e.Lexeme)
	}
	return fmt.Sprintf("unexpected token %q; expected %s", e.Lexeme, rgutil.MakeTextList(e.Expected))
}

// NewUnexpectedTokenError returns a new UnexpectedTokenError.
func NewUnexpectedTokenError(lexeme string, expected []string) error {
	return &UnexpectedTokenError{Lexeme: lexeme, Expected: expected}
}

// UnimplementedCallbackError is a parse-time error raised when a rule
// references a callback identifier that was never registered.
type UnimplementedCallbackError struct {
	Callback string
}

func (e *UnimplementedCallbackError) Error() string {
	return fmt.Sprintf("callback %q is referenced by a rule but was never registered", e.Callback)
}

// NewUnimplementedCallbackError returns a new UnimplementedCallbackError.
func NewUnimplementedCallbackError(callback string) error {
	return &UnimplementedCallbackError{Callback: callback}
}

// PrematureEndError is a parse-time error raised when the root rule reduces
// but the input is not yet exhausted.
type PrematureEndError struct {
	Lexeme string
}

func (e *PrematureEndError) Error() string {
	return fmt.Sprintf("expected end of input after root reduction but found %q", e.Lexeme)
}

// NewPrematureEndError returns a new PrematureEndError.
func NewPrematureEndError(lexeme string) error {
	return &PrematureEndError{Lexeme: lexeme}
}

// GotoNotFoundError is a fatal internal-invariant error: the table builder
// guarantees that any state reachable by a valid reduction has a goto entry
// for the reduced-to non-terminal, so seeing this at parse time means the
// table itself is malformed.
type GotoNotFoundError struct {
	State       int
	NonTerminal string
}

func (e *GotoNotFoundError) Error() string {
	return fmt.Sprintf("no goto entry for state %d on non-terminal %q (malformed table)", e.State, e.NonTerminal)
}

// NewGotoNotFoundError returns a new GotoNotFoundError.
func NewGotoNotFoundError(state int, nonTerminal string) error {
	return &GotoNotFoundError{State: state, NonTerminal: nonTerminal}
}
