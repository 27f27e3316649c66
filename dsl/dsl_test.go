package dsl

import (
	"testing"

	"github.com/kestrel-dev/redhorse/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_basicGrammar(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	g, err := Parse(`term = add; add = add "+" mul | mul; mul = mul "*" unary | unary; unary = INT | "(" add ")";`)
	require.NoError(err)

	assert.Equal("term", g.StartSymbol())
	assert.Equal([]string{"term", "add", "mul", "unary"}, g.NonTerminals())

	unaryRules := g.RulesFor("unary")
	require.Len(unaryRules, 2)
	assert.Equal([]string{"INT"}, unaryRules[0].RHS)
	assert.Equal([]string{grammar.Literal("("), "add", grammar.Literal(")")}, unaryRules[1].RHS)
}

func Test_Parse_callbackBinding(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	g, err := Parse(`a = "a" INT -> blub;`)
	require.NoError(err)

	require.Len(g.Rules, 1)
	assert.Equal("blub", g.Rules[0].Callback)
	assert.Equal([]string{grammar.Literal("a"), "INT"}, g.Rules[0].RHS)
}

func Test_Parse_malformed(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse(`a = "a"`) // missing terminating ;
	assert.Error(err)

	_, err = Parse(`= "a";`) // missing LHS
	assert.Error(err)
}
