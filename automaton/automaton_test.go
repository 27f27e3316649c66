package automaton

import (
	"testing"

	"github.com/kestrel-dev/redhorse/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_Build_dedupesEquivalentStates(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New()
	g.AddRule("s", "a", "s")
	g.AddRule("s", grammar.Literal("x"))
	g.AddRule("a", grammar.Literal("x"))

	aut, err := Build(g)
	assert.NoError(err)
	assert.NotNil(aut)
	assert.NotEmpty(aut.States)

	for _, s := range aut.States {
		assert.GreaterOrEqual(s.Index, 0)
	}

	for i := range aut.States {
		for j := i + 1; j < len(aut.States); j++ {
			assert.False(aut.States[i].equal(aut.States[j]), "states %d and %d are item-set-equal", i, j)
		}
	}
}

func Test_Build_leftRecursiveStartSymbol_noInitialShift(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New()
	g.AddRule("x", "x", grammar.Literal("a"))

	aut, err := Build(g)
	assert.NoError(err)

	// the start state has no way to shift "a" directly: x can only be
	// reached via a goto, and nothing ever reduces to x from nothing.
	start := aut.Start
	sawShift := false
	for _, e := range start.Out {
		if e.Label == grammar.Literal("a") {
			sawShift = true
		}
	}
	assert.False(sawShift)
}

func Test_Build_emptyGrammar(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New()
	_, err := Build(g)
	assert.Error(err)
}
