package snapshot

// GroupRows splits items into consecutive rows of size. The final row holds
// the remainder and is never padded; input shorter than size is one row.
func GroupRows[T any](items []T, size int) [][]T {
	if size <= 0 {
		panic("snapshot: row size must be positive")
	}
	if len(items) == 0 {
		return nil
	}

	rows := make([][]T, 0, (len(items)+size-1)/size)
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		rows = append(rows, items[i:end:end])
	}
	return rows
}
