package rejewski

import (
	"fmt"
	"sort"
	"strings"
)

// Setting is a day key with the rotor order it was used with.
type Setting struct {
	DayKey string   `codec:"key"`
	Order  []string `codec:"order"`
}

func (s Setting) String() string {
	return fmt.Sprintf("%s %s", s.DayKey, strings.Join(s.Order, "-"))
}

// Entry is one chain index with every setting that produces it.
type Entry struct {
	Index      string    `codec:"index"`
	Candidates []Setting `codec:"candidates"`
}

// Table maps chain indices to the settings producing them.  Many settings
// share an index; a lookup is a shortlist, not an answer.
type Table struct {
	buckets map[string][]Setting
}

func NewTable() *Table {
	return &Table{buckets: make(map[string][]Setting)}
}

// Add appends s to the candidates of index.
func (t *Table) Add(index string, s Setting) {
	t.buckets[index] = append(t.buckets[index], s)
}

// Lookup returns the candidates for index, or nil when no setting produces it.
func (t *Table) Lookup(index string) []Setting {
	return t.buckets[index]
}

// Len returns the number of distinct indices.
func (t *Table) Len() int {
	return len(t.buckets)
}

// Settings returns the number of candidates across all indices.
func (t *Table) Settings() int {
	n := 0
	for _, c := range t.buckets {
		n += len(c)
	}
	return n
}

// Indices returns the indices in sorted order.
func (t *Table) Indices() []string {
	indices := make([]string, 0, len(t.buckets))
	for index := range t.buckets {
		indices = append(indices, index)
	}
	sort.Strings(indices)
	return indices
}

// Merge appends the candidates of other to t.
func (t *Table) Merge(other *Table) {
	for _, index := range other.Indices() {
		t.buckets[index] = append(t.buckets[index], other.buckets[index]...)
	}
}

// Entries returns the table as entries sorted by index.  Candidates keep the
// order they were added in.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.buckets))
	for _, index := range t.Indices() {
		entries = append(entries, Entry{Index: index, Candidates: t.buckets[index]})
	}
	return entries
}

// TableFromEntries rebuilds a table from its entries.
func TableFromEntries(entries []Entry) *Table {
	t := NewTable()
	for _, e := range entries {
		for _, s := range e.Candidates {
			t.Add(e.Index, s)
		}
	}
	return t
}

// Largest returns the n entries with the most candidates, largest first.
func (t *Table) Largest(n int) []Entry {
	entries := t.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].Candidates) > len(entries[j].Candidates)
	})
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
