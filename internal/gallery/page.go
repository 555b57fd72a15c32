package gallery

import "github.com/aleister1102/snapgallery/internal/snapshot"

// Outcome tells the renderer what a page means for the "load more" control.
type Outcome int

const (
	// OutcomeEmpty means nothing qualified; the previous cursor is kept.
	OutcomeEmpty Outcome = iota
	// OutcomeMore means older entries remain.
	OutcomeMore
	// OutcomeLast means this page holds the final entries.
	OutcomeLast
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "empty"
	case OutcomeMore:
		return "more"
	case OutcomeLast:
		return "last"
	default:
		return "unknown"
	}
}

// Item is one rendered snapshot.
type Item struct {
	snapshot.Entry
	Label string
	URL   string
}

// Page is one batch of rows plus whether more can be loaded.
type Page struct {
	Rows       [][]Item
	IsLastPage bool
	Outcome    Outcome
}

// Items flattens the rows back into newest-first order.
func (p Page) Items() []Item {
	var out []Item
	for _, row := range p.Rows {
		out = append(out, row...)
	}
	return out
}

// Len is the number of items on the page.
func (p Page) Len() int {
	n := 0
	for _, row := range p.Rows {
		n += len(row)
	}
	return n
}

func emptyPage() Page {
	return Page{IsLastPage: true, Outcome: OutcomeEmpty}
}
