package table

import (
	"context"
	"iter"

	"nuscenes-devkit/core/parallel"
	"nuscenes-devkit/core/token"
)

// Record is implemented by every row type stored in a Table.
type Record interface {
	Key() token.Token
}

// Table is an ordered array of records plus a token index.
type Table[T Record] struct {
	rows       []T
	index      map[token.Token]int
	duplicates int
}

// New builds a table from rows, keeping their order. The index is built with up to
// workers goroutines; rows later in the slice overwrite earlier ones on a duplicate key.
func New[T Record](rows []T, workers int) *Table[T] {
	t := &Table[T]{rows: rows}
	t.index, t.duplicates = buildIndex(rows, workers)
	return t
}

// buildIndex indexes each chunk concurrently, then merges the partial indices in
// chunk order so the last occurrence of a token is the one retained.
func buildIndex[T Record](rows []T, workers int) (map[token.Token]int, int) {
	ranges := parallel.Ranges(workers, len(rows))
	if len(ranges) <= 1 {
		index := make(map[token.Token]int, len(rows))
		for i, row := range rows {
			index[row.Key()] = i
		}
		return index, len(rows) - len(index)
	}

	partial := make([]map[token.Token]int, len(ranges))
	tasks := make([]parallel.Task, len(ranges))
	for c, r := range ranges {
		tasks[c] = func(context.Context) error {
			m := make(map[token.Token]int, r[1]-r[0])
			for i := r[0]; i < r[1]; i++ {
				m[rows[i].Key()] = i
			}
			partial[c] = m
			return nil
		}
	}
	// Indexing cannot fail, so the error is always nil.
	_ = parallel.Run(context.Background(), workers, tasks...)

	index := make(map[token.Token]int, len(rows))
	for _, m := range partial {
		for k, v := range m {
			index[k] = v
		}
	}
	return index, len(rows) - len(index)
}

// Get returns the record with the given token.
func (t *Table[T]) Get(tok token.Token) (T, bool) {
	i, ok := t.index[tok]
	if !ok {
		var zero T
		return zero, false
	}
	return t.rows[i], true
}

// Has reports whether tok is present.
func (t *Table[T]) Has(tok token.Token) bool {
	_, ok := t.index[tok]
	return ok
}

// At returns the record at position i in source order.
func (t *Table[T]) At(i int) T {
	return t.rows[i]
}

// Len returns the number of rows, including duplicates.
func (t *Table[T]) Len() int {
	return len(t.rows)
}

// Duplicates returns how many rows were shadowed by a later row with the same token.
func (t *Table[T]) Duplicates() int {
	return t.duplicates
}

// All iterates the rows in source order. The sequence can be ranged over repeatedly.
func (t *Table[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, row := range t.rows {
			if !yield(i, row) {
				return
			}
		}
	}
}

// Rows returns the backing slice. Callers must not modify it.
func (t *Table[T]) Rows() []T {
	return t.rows
}

// Slice returns the rows selected by Bounds(Len(), start, stop, step).
func (t *Table[T]) Slice(start, stop, step int) ([]T, error) {
	pos, err := Bounds(len(t.rows), start, stop, step)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(pos))
	for i, p := range pos {
		out[i] = t.rows[p]
	}
	return out, nil
}
