package parse

import (
	"sort"

	"github.com/kestrel-dev/redhorse/grammar"
	"github.com/kestrel-dev/redhorse/lex"
	"github.com/kestrel-dev/redhorse/rgerrors"
)

// Callback is a semantic action fired on reduction of a rule, receiving the
// terminal tokens covered by that rule's RHS in left-to-right order (§6.3).
// Non-terminal RHS positions contribute no token; a callback wanting the
// value produced by a nested reduction reaches it through closure-captured
// state (an auxiliary stack, an AST builder) rather than through a return
// value threaded by the parser itself.
type Callback func(tokens []lex.Token) error

// Parser runs the table-driven stack machine described in the runtime spec
// against one token source at a time. A single Parser (and its underlying
// Table) is safe to reuse across concurrent parses provided each call to Run
// owns its own stack and token source; the callback registry is read-only
// once parsing begins.
type Parser struct {
	Table     *Table
	Grammar   *grammar.Grammar
	callbacks map[string]Callback
}

// NewParser builds a Parser from a compiled table and the grammar it was
// built from.
func NewParser(table *Table, g *grammar.Grammar) *Parser {
	return &Parser{Table: table, Grammar: g, callbacks: map[string]Callback{}}
}

// RegisterCallback binds a callback identifier, as referenced by a rule's
// optional callback field, to a handler. Registering the same identifier
// twice replaces the previous handler.
func (p *Parser) RegisterCallback(id string, cb Callback) {
	p.callbacks[id] = cb
}

// slot is one alternating (symbol, state) pair on the parse stack. The
// bottom slot (pushed by Run before the loop starts) carries only a state
// and no symbol.
type slot struct {
	State      int
	Symbol     string
	Token      lex.Token
	IsTerminal bool
}

// Run drives the stack machine to completion against src, firing registered
// callbacks in post-order as rules reduce. It returns nil once the Accept
// action (from the augmented start item) is reached on END, or the first
// error encountered.
func (p *Parser) Run(src lex.Source) error {
	stack := []slot{{State: p.Table.Initial}}

	for {
		top := stack[len(stack)-1]
		tok := src.Current()
		row := p.Table.Rows[top.State]

		entry, key, ok := lookupAction(row, tok)
		if !ok {
			return rgerrors.NewUnexpectedTokenError(tok.Lexeme, expectedTerminals(row))
		}

		switch entry.Kind {
		case Shift:
			stack = append(stack, slot{State: entry.Value, Symbol: key, Token: tok, IsTerminal: true})
			src.Advance()

		case Accept:
			if !src.AtEnd() {
				return rgerrors.NewPrematureEndError(src.Current().Lexeme)
			}
			return nil

		case Reduce:
			rule := p.Grammar.Rules[entry.Value]
			n := len(rule.RHS)
			popped := stack[len(stack)-n:]
			stack = stack[:len(stack)-n]

			if err := p.dispatch(rule, popped); err != nil {
				return err
			}

			back := stack[len(stack)-1]
			dest, ok := p.Table.Rows[back.State].Goto[rule.LHS]
			if !ok {
				return rgerrors.NewGotoNotFoundError(back.State, rule.LHS)
			}
			stack = append(stack, slot{State: dest, Symbol: rule.LHS})
		}
	}
}

func (p *Parser) dispatch(rule grammar.Rule, popped []slot) error {
	if rule.Callback == "" {
		return nil
	}
	cb, ok := p.callbacks[rule.Callback]
	if !ok {
		return rgerrors.NewUnimplementedCallbackError(rule.Callback)
	}
	var toks []lex.Token
	for _, s := range popped {
		if s.IsTerminal {
			toks = append(toks, s.Token)
		}
	}
	return cb(toks)
}

// lookupAction resolves the table-driven key for tok: the colon-prefixed
// lexeme first (covers literal terminals, and keywords spelled as
// identifiers in the grammar), falling back to the bare token-class name.
// End-of-input always resolves directly to the END key.
func lookupAction(row Row, tok lex.Token) (ActionEntry, string, bool) {
	if tok.Class() == lex.End {
		e, ok := row.Action[grammar.End]
		return e, grammar.End, ok
	}
	if litKey := grammar.Literal(tok.Lexeme); litKey != grammar.LiteralPrefix {
		if e, ok := row.Action[litKey]; ok {
			return e, litKey, true
		}
	}
	classKey := string(tok.Class())
	e, ok := row.Action[classKey]
	return e, classKey, ok
}

// expectedTerminals lists the terminal keys this row has an action for, in
// sorted order, for use in an unexpected-token error message.
func expectedTerminals(row Row) []string {
	out := make([]string, 0, len(row.Action))
	for k := range row.Action {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
