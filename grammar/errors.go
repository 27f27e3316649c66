package grammar

import "github.com/kestrel-dev/redhorse/rgerrors"

func errEmptyGrammar() error {
	return rgerrors.NewEmptyGrammarError()
}

func errUndefinedNonTerminal(nonTerminal string, inRule Rule) error {
	return rgerrors.NewUndefinedNonTerminalError(nonTerminal, inRule.String())
}
