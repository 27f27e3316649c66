package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_FIRST(t *testing.T) {
	assert := assert.New(t)

	g := New()
	g.AddRule("add", "add", Literal("+"), "mul")
	g.AddRule("add", "mul")
	g.AddRule("mul", "mul", Literal("*"), "unary")
	g.AddRule("mul", "unary")
	g.AddRule("unary", "INT")
	g.AddRule("unary", Literal("("), "add", Literal(")"))

	first := g.FIRST()

	assert.True(first["unary"].Has("INT"))
	assert.True(first["unary"].Has(Literal("(")))
	assert.Equal(2, first["unary"].Len())

	assert.True(first["mul"].Equal(first["unary"]))
	assert.True(first["add"].Equal(first["unary"]))
}

func Test_Grammar_First_unknownNonTerminal(t *testing.T) {
	assert := assert.New(t)

	g := New()
	g.AddRule("S", Literal("a"))

	assert.Equal(0, g.First("nope").Len())
}
