package parse

import (
	"testing"

	"github.com/kestrel-dev/redhorse/automaton"
	"github.com/kestrel-dev/redhorse/dsl"
	"github.com/kestrel-dev/redhorse/grammar"
	"github.com/kestrel-dev/redhorse/lex"
	"github.com/kestrel-dev/redhorse/rgerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// literalLexemes extracts the bare (unprefixed) lexemes of every literal
// terminal g declares, for feeding to lex.NewScanner.
func literalLexemes(g *grammar.Grammar) []string {
	var out []string
	for _, sym := range g.Terminals() {
		if grammar.IsLiteral(sym) {
			out = append(out, grammar.LiteralLexeme(sym))
		}
	}
	return out
}

func buildParser(t *testing.T, g *grammar.Grammar) *Parser {
	t.Helper()
	aut, err := automaton.Build(g)
	require.NoError(t, err)
	table, err := BuildTable(aut, g)
	require.NoError(t, err)
	return NewParser(table, g)
}

// arithmeticGrammar builds `term = add; add = add "+" mul | mul;
// mul = mul "*" unary | unary; unary = INT | "(" add ")";` with callbacks
// wired programmatically through SetCallback rather than through the
// rule-definition DSL.
func arithmeticGrammar() *grammar.Grammar {
	g := grammar.New()
	g.AddRule("term", "add") // 0: root

	addPlus := g.AddRule("add", "add", grammar.Literal("+"), "mul")
	g.SetCallback(addPlus, "add")
	g.AddRule("add", "mul")

	mulStar := g.AddRule("mul", "mul", grammar.Literal("*"), "unary")
	g.SetCallback(mulStar, "mul")
	g.AddRule("mul", "unary")

	unaryInt := g.AddRule("unary", "INT")
	g.SetCallback(unaryInt, "push")
	g.AddRule("unary", grammar.Literal("("), "add", grammar.Literal(")"))

	return g
}

func runArithmetic(t *testing.T, input string) float64 {
	t.Helper()
	g := arithmeticGrammar()
	p := buildParser(t, g)

	var stack []float64
	pop := func() float64 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v
	}

	p.RegisterCallback("push", func(toks []lex.Token) error {
		stack = append(stack, toks[0].Numeric)
		return nil
	})
	p.RegisterCallback("add", func(toks []lex.Token) error {
		b, a := pop(), pop()
		stack = append(stack, a+b)
		return nil
	})
	p.RegisterCallback("mul", func(toks []lex.Token) error {
		b, a := pop(), pop()
		stack = append(stack, a*b)
		return nil
	})

	sc := lex.NewScanner(input, literalLexemes(g))
	require.NoError(t, p.Run(sc))
	require.Len(t, stack, 1)
	return stack[0]
}

func Test_Parse_arithmetic(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(float64(14), runArithmetic(t, "2 * (3+4)"))
	assert.Equal(float64(7), runArithmetic(t, "1 + 2 * 3"))
	assert.Equal(float64(21), runArithmetic(t, "(1+2)*(3+4)"))
}

func Test_Parse_callbackFiresOnce(t *testing.T) {
	require := require.New(t)

	src := `z = s; s = s "b"; s = "b" a "a"; a = "a" s "c"; a = "a"; a = "a" s INT -> blub;`
	g, err := dsl.Parse(src)
	require.NoError(err)

	p := buildParser(t, g)

	var calls int
	var lastLexeme string
	p.RegisterCallback("blub", func(toks []lex.Token) error {
		calls++
		for _, tok := range toks {
			if tok.Class() == lex.Int {
				lastLexeme = tok.Lexeme
			}
		}
		return nil
	})

	sc := lex.NewScanner("b a b a a 42 a", literalLexemes(g))
	require.NoError(p.Run(sc))
	require.Equal(1, calls)
	require.Equal("42", lastLexeme)
}

func Test_Parse_leftRecursionWithoutBase_rejectsAllInput(t *testing.T) {
	require := require.New(t)

	g := grammar.New()
	g.AddRule("x", "x", grammar.Literal("a"))

	p := buildParser(t, g)

	sc := lex.NewScanner("a", literalLexemes(g))
	err := p.Run(sc)
	require.Error(err)
	_, isUnexpected := err.(*rgerrors.UnexpectedTokenError)
	require.True(isUnexpected, "expected *rgerrors.UnexpectedTokenError, got %T", err)
}

func Test_BuildTable_selfRecursiveStart_conflicts(t *testing.T) {
	require := require.New(t)

	g := grammar.New()
	g.AddRule("s", "s")
	g.AddRule("s", grammar.Literal("a"))

	aut, err := automaton.Build(g)
	require.NoError(err)

	_, err = BuildTable(aut, g)
	require.Error(err)
}
