package parse

import (
	"fmt"

	"github.com/dekarrin/rosed"
	"github.com/kestrel-dev/redhorse/grammar"
)

// String renders the table as a grid of state versus terminal-action and
// non-terminal-goto columns, fed through rosed for aligned plain-text
// output. Two tables whose String() output matches are considered equal for
// debugging purposes (spec §6.4); the exact column widths are not part of
// the contract.
func (t *Table) String(g *grammar.Grammar) string {
	terms := append(append([]string{}, g.Terminals()...), grammar.End)
	nonTerms := g.NonTerminals()

	data := make([][]string, 0, len(t.Rows)+1)

	header := []string{"state", "|"}
	for _, term := range terms {
		header = append(header, "a:"+term)
	}
	header = append(header, "|")
	for _, nt := range nonTerms {
		header = append(header, "g:"+nt)
	}
	data = append(data, header)

	for i, row := range t.Rows {
		line := []string{fmt.Sprintf("%d", i), "|"}
		for _, term := range terms {
			cell := ""
			if entry, ok := row.Action[term]; ok {
				cell = entry.String()
			}
			line = append(line, cell)
		}
		line = append(line, "|")
		for _, nt := range nonTerms {
			cell := ""
			if dest, ok := row.Goto[nt]; ok {
				cell = fmt.Sprintf("%d", dest)
			}
			line = append(line, cell)
		}
		data = append(data, line)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
