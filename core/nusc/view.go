package nusc

import (
	"fmt"
	"iter"

	"nuscenes-devkit/core/record"
	"nuscenes-devkit/core/table"
	"nuscenes-devkit/core/token"
)

// entry erases the record type of a table for name-based access.
type entry interface {
	len() int
	duplicates() int
	at(i int) record.Fields
	lookup(tok token.Token) (record.Fields, bool)
	slice(start, stop, step int) ([]record.Fields, error)
}

type row interface {
	table.Record
	record.Renderer
}

type tableEntry[T row] struct {
	t *table.Table[T]
}

func (e tableEntry[T]) len() int               { return e.t.Len() }
func (e tableEntry[T]) duplicates() int        { return e.t.Duplicates() }
func (e tableEntry[T]) at(i int) record.Fields { return e.t.At(i).Fields() }

func (e tableEntry[T]) lookup(tok token.Token) (record.Fields, bool) {
	r, ok := e.t.Get(tok)
	if !ok {
		return nil, false
	}
	return r.Fields(), true
}

func (e tableEntry[T]) slice(start, stop, step int) ([]record.Fields, error) {
	rows, err := e.t.Slice(start, stop, step)
	if err != nil {
		return nil, err
	}
	out := make([]record.Fields, len(rows))
	for i, r := range rows {
		out[i] = r.Fields()
	}
	return out, nil
}

// View is a read-only sequence over one table, rendering each row as fields.
type View struct {
	name string
	e    entry
}

// Name returns the table name.
func (v View) Name() string { return v.name }

// Len returns the number of rows.
func (v View) Len() int { return v.e.len() }

// At returns the row at position i. Negative positions are rejected.
func (v View) At(i int) (record.Fields, error) {
	if i < 0 || i >= v.e.len() {
		return nil, fmt.Errorf("%w: %s[%d] with length %d", table.ErrIndexOutOfRange, v.name, i, v.e.len())
	}
	return v.e.at(i), nil
}

// Slice returns the rows selected by start:stop:step. Negative bounds count from
// the end; step must be positive.
func (v View) Slice(start, stop, step int) ([]record.Fields, error) {
	return v.e.slice(start, stop, step)
}

// All iterates every row in source order.
func (v View) All() iter.Seq2[int, record.Fields] {
	return func(yield func(int, record.Fields) bool) {
		for i := range v.e.len() {
			if !yield(i, v.e.at(i)) {
				return
			}
		}
	}
}
