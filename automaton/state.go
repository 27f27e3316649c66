package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kestrel-dev/redhorse/internal/rgutil"
)

// Edge is a transition between two states labelled by a grammar symbol. A
// terminal label makes it a shift edge; a non-terminal label makes it a
// goto edge. Edges reference their endpoints directly by *State rather than
// by a rewritable integer index: Go's garbage collector already gives us the
// "no dangling references possible" guarantee the design notes ask an
// arena-of-indices for, and merging a state into an equal one (see
// redirect) is then just reassigning the pointer in place.
type Edge struct {
	From  *State
	To    *State
	Label string
}

// State is a set of LR(1) items together with the edges incident to it. Two
// states are admitted at different times may end up item-set-equal; when
// that happens the later one is folded into the earlier (see
// Build), and Index is only ever assigned to the survivor.
type State struct {
	// Index is the state's position in the automaton's admission order. It
	// is -1 until the state is admitted; states that are discarded during
	// merging never have it set.
	Index int

	Items     []*Item
	itemIndex map[string]*Item

	In  []Edge
	Out []Edge
}

func newState() *State {
	return &State{Index: -1, itemIndex: make(map[string]*Item)}
}

// addItem inserts the item (rule, dot) with the given lookahead, merging
// lookaheads with any existing core-equal item instead of creating a
// duplicate. Returns whether the state changed (new item, or lookahead grew).
func (s *State) addItem(rule, dot int, lookahead rgutil.StringSet) bool {
	key := itemCoreKey(rule, dot)
	if existing, ok := s.itemIndex[key]; ok {
		return existing.Lookahead.AddAll(lookahead)
	}
	it := &Item{Rule: rule, Dot: dot, Lookahead: lookahead.Copy()}
	s.itemIndex[key] = it
	s.Items = append(s.Items, it)
	return true
}

func itemCoreKey(rule, dot int) string {
	return fmt.Sprintf("%d.%d", rule, dot)
}

// signature returns a canonical string encoding both the item's
// core and its full lookahead set, used to test state equivalence.
func (s *State) signature() string {
	keys := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		keys = append(keys, fmt.Sprintf("%s|%s", itemCoreKey(it.Rule, it.Dot), it.Lookahead.String()))
	}
	sort.Strings(keys)
	return strings.Join(keys, ";")
}

// equal returns whether s and o contain the same items with identical
// lookahead sets per core -- the State equivalence test from the data model.
func (s *State) equal(o *State) bool {
	return s.signature() == o.signature()
}
