// Package dsl implements the small rule-definition surface language from
// spec §6.1: a thin convenience front-end over the programmatic Grammar
// Model builder API, not part of the core generator itself. Nothing in
// grammar/automaton/parse imports this package.
//
//	rules = { rule } ;
//	rule  = ID "=" rhs { "|" rhs } ";" ;
//	rhs   = { item } [ "->" ID ] ;
//	item  = "INT" | "REAL" | "HEX" | "ID" | "STR" | ID | STR ;
package dsl

import (
	"github.com/kestrel-dev/redhorse/grammar"
	"github.com/kestrel-dev/redhorse/internal/rgutil"
	"github.com/kestrel-dev/redhorse/lex"
)

// keywords are the fixed punctuation and reserved-class spellings the
// surface language's own lexer must recognize as literals rather than as
// non-terminal identifiers.
var keywords = []string{"INT", "REAL", "HEX", "ID", "STR", "=", "|", ";", "->"}

// Parse reads src as a sequence of rule declarations and returns the
// resulting Grammar, validated per the data model's invariants.
func Parse(src string) (*grammar.Grammar, error) {
	p := &parser{sc: lex.NewScanner(src, keywords)}
	return p.parseRules()
}

type parser struct {
	sc *lex.Scanner
}

func (p *parser) cur() lex.Token { return p.sc.Current() }

func (p *parser) atLiteral(lexeme string) bool {
	t := p.cur()
	return t.Class() == lex.Literal && t.Lexeme == lexeme
}

func (p *parser) expectLiteral(lexeme string) error {
	if !p.atLiteral(lexeme) {
		return p.sc.Errorf("expected %q, found %s", lexeme, p.cur())
	}
	p.sc.Advance()
	return nil
}

func (p *parser) parseRules() (*grammar.Grammar, error) {
	g := grammar.New()
	for !p.sc.AtEnd() {
		if err := p.parseRule(g); err != nil {
			return nil, err
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (p *parser) parseRule(g *grammar.Grammar) error {
	if p.cur().Class() != lex.ID {
		return p.sc.Errorf("expected %s non-terminal name, found %s", rgutil.ArticleFor("non-terminal", false), p.cur())
	}
	lhs := p.cur().Lexeme
	p.sc.Advance()

	if err := p.expectLiteral("="); err != nil {
		return err
	}

	for {
		if err := p.parseRHS(g, lhs); err != nil {
			return err
		}
		if p.atLiteral("|") {
			p.sc.Advance()
			continue
		}
		break
	}

	return p.expectLiteral(";")
}

func (p *parser) parseRHS(g *grammar.Grammar, lhs string) error {
	var rhs []string
	for !p.atLiteral("|") && !p.atLiteral(";") && !p.atLiteral("->") {
		sym, err := p.parseItem()
		if err != nil {
			return err
		}
		rhs = append(rhs, sym)
	}

	idx := g.AddRule(lhs, rhs...)

	if p.atLiteral("->") {
		p.sc.Advance()
		if p.cur().Class() != lex.ID {
			return p.sc.Errorf("expected callback identifier after '->', found %s", p.cur())
		}
		g.SetCallback(idx, p.cur().Lexeme)
		p.sc.Advance()
	}

	return nil
}

// parseItem consumes one RHS item: a reserved-class keyword (stored
// bare), a non-terminal reference (bare ID), or a quoted literal (stored
// colon-prefixed).
func (p *parser) parseItem() (string, error) {
	t := p.cur()
	switch {
	case t.Class() == lex.Literal && isReservedClassKeyword(t.Lexeme):
		p.sc.Advance()
		return t.Lexeme, nil
	case t.Class() == lex.ID:
		p.sc.Advance()
		return t.Lexeme, nil
	case t.Class() == lex.Str:
		p.sc.Advance()
		return grammar.Literal(t.Lexeme), nil
	default:
		return "", p.sc.Errorf("expected grammar item, found %s", t)
	}
}

func isReservedClassKeyword(s string) bool {
	switch s {
	case "INT", "REAL", "HEX", "ID", "STR":
		return true
	}
	return false
}
