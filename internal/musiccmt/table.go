package musiccmt

import "iter"

// Record holds the music room text of one track.
//
// Comment is a single string whose lines are separated by "\n". It never
// ends with whitespace and never contains empty lines.
type Record struct {
	// Title is the title line of the block, verbatim.
	Title string

	// Comment is the joined body of the block.
	Comment string
}

// Table maps track IDs to their records, preserving the order in which
// each ID was first seen.
//
// Setting an ID that already exists replaces its record but keeps its
// position, so a block declared twice is reported where it first appeared.
//
// Example:
//
//	table := NewTable()
//	table.Set("th06_01", Record{Title: "A Soul as Red as a Ground Cherry"})
//	table.Set("th06_02", Record{Title: "Apparitions Stalk the Night"})
//	table.Set("th06_01", Record{Title: "updated"})
//	table.IDs() // ["th06_01", "th06_02"]
type Table struct {
	ids     []string
	records map[string]Record
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{records: make(map[string]Record)}
}

// Set stores rec under id.
func (t *Table) Set(id string, rec Record) {
	if _, ok := t.records[id]; !ok {
		t.ids = append(t.ids, id)
	}
	t.records[id] = rec
}

// Get returns the record stored under id.
func (t *Table) Get(id string) (Record, bool) {
	rec, ok := t.records[id]
	return rec, ok
}

// Len returns the number of distinct track IDs.
func (t *Table) Len() int {
	return len(t.ids)
}

// IDs returns the track IDs in first-seen order. The returned slice is a
// copy and may be modified by the caller.
func (t *Table) IDs() []string {
	ids := make([]string, len(t.ids))
	copy(ids, t.ids)
	return ids
}

// All iterates over the table in first-seen order.
func (t *Table) All() iter.Seq2[string, Record] {
	return func(yield func(string, Record) bool) {
		for _, id := range t.ids {
			if !yield(id, t.records[id]) {
				return
			}
		}
	}
}
