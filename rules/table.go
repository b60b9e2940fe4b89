package rules

import (
	"cmp"
	"maps"
	"slices"

	"github.com/reusee/turing/tapes"
)

// Table maps (state, symbol) to a rule. It is immutable after Build.
type Table struct {
	rules      map[Key]Rule
	overridden []Key
}

// Build inserts entries in order. A later entry with the same key replaces the earlier one.
func Build(entries []Entry) (*Table, error) {
	t := &Table{
		rules: make(map[Key]Rule, len(entries)),
	}
	for _, entry := range entries {
		if err := entry.validate(); err != nil {
			return nil, wrap(err)
		}
		if _, ok := t.rules[entry.Key]; ok {
			t.overridden = append(t.overridden, entry.Key)
		}
		t.rules[entry.Key] = entry.Rule
	}
	return t, nil
}

func MustBuild(entries []Entry) *Table {
	t, err := Build(entries)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Lookup(state State, symbol tapes.Cell) (Rule, bool) {
	rule, ok := t.rules[Key{
		State:  state,
		Symbol: symbol,
	}]
	return rule, ok
}

func (t *Table) Len() int {
	return len(t.rules)
}

// Overridden lists keys that appeared more than once during Build.
func (t *Table) Overridden() []Key {
	return slices.Clone(t.overridden)
}

func compareKeys(a, b Key) int {
	return cmp.Or(
		cmp.Compare(a.State, b.State),
		cmp.Compare(a.Symbol, b.Symbol),
	)
}

func (t *Table) Entries() []Entry {
	keys := slices.SortedFunc(maps.Keys(t.rules), compareKeys)
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, Entry{
			Key:  key,
			Rule: t.rules[key],
		})
	}
	return entries
}

// States lists every state that is a source or a target of some rule.
func (t *Table) States() []State {
	set := make(map[State]bool)
	for key, rule := range t.rules {
		set[key.State] = true
		if rule.Move != Halt {
			set[rule.Next] = true
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// Undefined lists the keys of known states that have no rule.
// Reaching one of them ends a run with a no-rule halt.
func (t *Table) Undefined() (ret []Key) {
	for _, state := range t.States() {
		for symbol := tapes.Blank; symbol.Valid(); symbol++ {
			key := Key{
				State:  state,
				Symbol: symbol,
			}
			if _, ok := t.rules[key]; !ok {
				ret = append(ret, key)
			}
		}
	}
	return
}
