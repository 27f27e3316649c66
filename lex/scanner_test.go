package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(sc *Scanner) []Token {
	var toks []Token
	for {
		toks = append(toks, sc.Current())
		if sc.AtEnd() {
			return toks
		}
		sc.Advance()
	}
}

func Test_Scanner_reservedClasses(t *testing.T) {
	assert := assert.New(t)

	sc := NewScanner(`42 3.14 0x1F ident "a string"`, nil)
	toks := drain(sc)

	require.Len(t, toks, 6) // 5 tokens + End
	assert.Equal(Int, toks[0].Class())
	assert.Equal(float64(42), toks[0].Numeric)

	assert.Equal(Real, toks[1].Class())
	assert.Equal(3.14, toks[1].Numeric)

	assert.Equal(Hex, toks[2].Class())
	assert.Equal(float64(31), toks[2].Numeric)

	assert.Equal(ID, toks[3].Class())
	assert.Equal("ident", toks[3].Lexeme)

	assert.Equal(Str, toks[4].Class())
	assert.Equal("a string", toks[4].Lexeme)

	assert.Equal(End, toks[5].Class())
}

func Test_Scanner_literals(t *testing.T) {
	assert := assert.New(t)

	sc := NewScanner(`1 + 2 * if`, []string{"+", "*", "if"})
	toks := drain(sc)

	require.Len(t, toks, 6)
	assert.Equal(Int, toks[0].Class())
	assert.Equal(Literal, toks[1].Class())
	assert.Equal("+", toks[1].Lexeme)
	assert.Equal(Int, toks[2].Class())
	assert.Equal(Literal, toks[3].Class())
	assert.Equal("*", toks[3].Lexeme)
	assert.Equal(Literal, toks[4].Class())
	assert.Equal("if", toks[4].Lexeme)
}

func Test_Scanner_Errorf_reportsPosition(t *testing.T) {
	assert := assert.New(t)

	sc := NewScanner(`x`, nil)
	err := sc.Errorf("unexpected %q", sc.Current().Lexeme)
	assert.Contains(err.Error(), "1:1")
	assert.Contains(err.Error(), "x")
}
