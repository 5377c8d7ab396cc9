package tui

import (
	"sort"
	"strings"

	"kombo/internal/domain"
)

// SortColumn identifies the combo table column driving the sort.
type SortColumn int

const (
	SortByKeyword SortColumn = iota
	SortByName
	SortByCreated
	SortByModified
)

// Proxy projects a combo list into the table's display order: it hides rows
// that do not match the filter and sorts the rest, while keeping a
// bidirectional mapping between display rows and source indexes. Mutations
// always go through SourceIndex so they land on the right combo regardless of
// the active filter or sort.
type Proxy struct {
	filter    string
	column    SortColumn
	ascending bool

	rows    []int       // display row -> source index
	display map[int]int // source index -> display row
}

// NewProxy constructs a proxy sorted ascending by keyword with no filter.
func NewProxy() *Proxy {
	return &Proxy{
		column:    SortByKeyword,
		ascending: true,
		display:   map[int]int{},
	}
}

// SetFilter installs a new filter string. Refresh must run before the mapping
// reflects it.
func (p *Proxy) SetFilter(filter string) {
	p.filter = strings.TrimSpace(filter)
}

// Filter returns the active filter string.
func (p *Proxy) Filter() string {
	return p.filter
}

// SetSort installs the sort column and direction.
func (p *Proxy) SetSort(column SortColumn, ascending bool) {
	p.column = column
	p.ascending = ascending
}

// SortColumn returns the active sort column.
func (p *Proxy) SortColumn() SortColumn {
	return p.column
}

// Ascending reports the active sort direction.
func (p *Proxy) Ascending() bool {
	return p.ascending
}

// ToggleOrder flips the sort direction.
func (p *Proxy) ToggleOrder() {
	p.ascending = !p.ascending
}

// Refresh recomputes the display mapping from the given source combos.
// Matching is a case-insensitive substring test over keyword, name, and
// snippet. The sort is stable, so combos that compare equal keep their
// source order.
func (p *Proxy) Refresh(combos []domain.Combo) {
	p.rows = p.rows[:0]
	needle := strings.ToLower(p.filter)
	for idx, c := range combos {
		if needle == "" || comboMatches(c, needle) {
			p.rows = append(p.rows, idx)
		}
	}

	sort.SliceStable(p.rows, func(i, j int) bool {
		less := comboLess(combos[p.rows[i]], combos[p.rows[j]], p.column)
		if p.ascending {
			return less
		}
		return comboLess(combos[p.rows[j]], combos[p.rows[i]], p.column)
	})

	p.display = make(map[int]int, len(p.rows))
	for row, src := range p.rows {
		p.display[src] = row
	}
}

// Len returns the number of visible rows.
func (p *Proxy) Len() int {
	return len(p.rows)
}

// SourceIndex maps a display row back to its source index.
func (p *Proxy) SourceIndex(row int) (int, error) {
	if row < 0 || row >= len(p.rows) {
		return 0, domain.ErrIndexOutOfRange
	}
	return p.rows[row], nil
}

// DisplayRow maps a source index to its display row, or -1 when the combo is
// filtered out.
func (p *Proxy) DisplayRow(sourceIndex int) int {
	if row, ok := p.display[sourceIndex]; ok {
		return row
	}
	return -1
}

// SourceIndexes maps a set of display rows to source indexes, dropping rows
// that fell out of range.
func (p *Proxy) SourceIndexes(rows []int) []int {
	out := make([]int, 0, len(rows))
	for _, row := range rows {
		if src, err := p.SourceIndex(row); err == nil {
			out = append(out, src)
		}
	}
	return out
}

func comboMatches(c domain.Combo, needle string) bool {
	return strings.Contains(strings.ToLower(c.Keyword), needle) ||
		strings.Contains(strings.ToLower(c.Name), needle) ||
		strings.Contains(strings.ToLower(c.Snippet), needle)
}

func comboLess(a, b domain.Combo, column SortColumn) bool {
	switch column {
	case SortByName:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	case SortByCreated:
		return a.CreatedAt.Before(b.CreatedAt)
	case SortByModified:
		return a.ModifiedAt.Before(b.ModifiedAt)
	default:
		return strings.ToLower(a.Keyword) < strings.ToLower(b.Keyword)
	}
}
