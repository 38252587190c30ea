package table

import (
	"testing"

	"nuscenes-devkit/core/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	tok   token.Token
	value int
}

func (r row) Key() token.Token { return r.tok }

func makeRows(n int) []row {
	rows := make([]row, n)
	for i := range rows {
		rows[i] = row{tok: token.New(), value: i}
	}
	return rows
}

func TestNew_Lookup(t *testing.T) {
	for _, n := range []int{0, 1, 10, 5000} {
		rows := makeRows(n)
		tbl := New(rows, 4)

		assert.Equal(t, n, tbl.Len())
		assert.Equal(t, 0, tbl.Duplicates())
		for i, r := range rows {
			got, ok := tbl.Get(r.tok)
			require.True(t, ok)
			assert.Equal(t, i, got.value)
			assert.True(t, tbl.Has(r.tok))
		}

		_, ok := tbl.Get(token.Zero)
		assert.False(t, ok)
	}
}

func TestNew_DuplicateLastWriteWins(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"single chunk", 10},
		{"many chunks", 6000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := makeRows(tt.n)
			dup := rows[0].tok
			// Duplicate the first token near the end, in a different chunk when chunked.
			rows[tt.n-2].tok = dup

			tbl := New(rows, 4)
			got, ok := tbl.Get(dup)
			require.True(t, ok)
			assert.Equal(t, tt.n-2, got.value)
			assert.Equal(t, 1, tbl.Duplicates())
			assert.Equal(t, tt.n, tbl.Len())
		})
	}
}

func TestAll_OrderAndRestart(t *testing.T) {
	rows := makeRows(50)
	tbl := New(rows, 2)

	for pass := 0; pass < 2; pass++ {
		i := 0
		for pos, r := range tbl.All() {
			assert.Equal(t, i, pos)
			assert.Equal(t, rows[i].tok, r.tok)
			i++
		}
		assert.Equal(t, len(rows), i)
	}

	// Early break must stop the iteration.
	seen := 0
	for range tbl.All() {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
	assert.Equal(t, rows[7].tok, tbl.At(7).tok)
	assert.Len(t, tbl.Rows(), 50)
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name              string
		n, start, stop, s int
		want              []int
		wantErr           error
	}{
		{"full", 5, 0, 5, 1, []int{0, 1, 2, 3, 4}, nil},
		{"step", 5, 0, 5, 2, []int{0, 2, 4}, nil},
		{"clamped stop", 5, 3, 100, 1, []int{3, 4}, nil},
		{"negative start", 5, -2, 5, 1, []int{3, 4}, nil},
		{"negative stop", 5, 0, -3, 1, []int{0, 1}, nil},
		{"empty", 5, 4, 2, 1, []int{}, nil},
		{"zero step", 5, 0, 5, 0, nil, ErrInvalidStep},
		{"negative step", 5, 0, 5, -1, nil, ErrInvalidStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Bounds(tt.n, tt.start, tt.stop, tt.s)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
