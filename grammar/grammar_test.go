package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		build     func(g *Grammar)
		expectErr bool
	}{
		{
			name:      "empty grammar",
			build:     func(g *Grammar) {},
			expectErr: true,
		},
		{
			name: "undefined non-terminal",
			build: func(g *Grammar) {
				g.AddRule("S", "A")
			},
			expectErr: true,
		},
		{
			name: "well formed single rule",
			build: func(g *Grammar) {
				g.AddRule("S", Literal("a"))
			},
		},
		{
			name: "well formed with non-terminal reference",
			build: func(g *Grammar) {
				g.AddRule("S", "A")
				g.AddRule("A", Literal("a"))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := New()
			tc.build(g)
			err := g.Validate()

			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_Grammar_NonTerminals_and_Terminals(t *testing.T) {
	assert := assert.New(t)

	g := New()
	g.AddRule("add", "add", Literal("+"), "mul")
	g.AddRule("add", "mul")
	g.AddRule("mul", "INT")

	assert.Equal([]string{"add", "mul"}, g.NonTerminals())
	assert.Equal([]string{Literal("+"), "INT"}, g.Terminals())
}

func Test_Grammar_StartSymbol(t *testing.T) {
	assert := assert.New(t)

	g := New()
	assert.Equal("", g.StartSymbol())

	g.AddRule("term", "add")
	g.AddRule("add", "mul")
	assert.Equal("term", g.StartSymbol())
}

func Test_Grammar_Fingerprint_stable_and_sensitive(t *testing.T) {
	assert := assert.New(t)

	build := func() *Grammar {
		g := New()
		g.AddRule("S", "A")
		g.AddRule("A", Literal("a"))
		return g
	}

	g1 := build()
	g2 := build()
	assert.Equal(g1.Fingerprint(), g2.Fingerprint())

	g3 := New()
	g3.AddRule("S", "A")
	g3.AddRule("A", Literal("b"))
	assert.NotEqual(g1.Fingerprint(), g3.Fingerprint())
}

func Test_IsTerminal(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsTerminal(Literal("+")))
	assert.True(IsTerminal("INT"))
	assert.True(IsTerminal(End))
	assert.False(IsTerminal("add"))
}
