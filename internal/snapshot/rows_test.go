package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupRows(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		size  int
		want  [][]int
	}{
		{name: "five by two", items: []int{0, 1, 2, 3, 4}, size: 2, want: [][]int{{0, 1}, {2, 3}, {4}}},
		{name: "exact multiple", items: []int{1, 2, 3, 4, 5, 6}, size: 2, want: [][]int{{1, 2}, {3, 4}, {5, 6}}},
		{name: "shorter than row", items: []int{7}, size: 3, want: [][]int{{7}}},
		{name: "row of one", items: []int{1, 2, 3}, size: 1, want: [][]int{{1}, {2}, {3}}},
		{name: "empty", items: nil, size: 2, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupRows(tt.items, tt.size))
		})
	}
}

func TestGroupRows_ConcatenationReproducesInput(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	for size := 1; size <= 25; size++ {
		rows := GroupRows(items, size)

		var flat []int
		for i, row := range rows {
			if i < len(rows)-1 {
				assert.Len(t, row, size)
			} else {
				assert.LessOrEqual(t, len(row), size)
				assert.NotEmpty(t, row)
			}
			flat = append(flat, row...)
		}
		assert.Equal(t, items, flat, "size %d", size)
	}
}

func TestGroupRows_RowsDoNotAlias(t *testing.T) {
	rows := GroupRows([]int{1, 2, 3, 4}, 2)
	rows[0] = append(rows[0], 99)

	assert.Equal(t, []int{3, 4}, rows[1])
}

func TestGroupRows_PanicsOnNonPositiveSize(t *testing.T) {
	assert.Panics(t, func() { GroupRows([]int{1}, 0) })
}
