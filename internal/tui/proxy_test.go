package tui

import (
	"errors"
	"testing"
	"time"

	"kombo/internal/domain"
)

func proxyFixture() []domain.Combo {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Combo{
		{ID: "c0", Keyword: "sig", Name: "Signature", Snippet: "Best regards", CreatedAt: base.Add(3 * time.Hour), ModifiedAt: base.Add(3 * time.Hour)},
		{ID: "c1", Keyword: "addr", Name: "Address", Snippet: "1 Main St", CreatedAt: base.Add(1 * time.Hour), ModifiedAt: base.Add(5 * time.Hour)},
		{ID: "c2", Keyword: "mail", Name: "Mail footer", Snippet: "sent from kombo", CreatedAt: base.Add(2 * time.Hour), ModifiedAt: base.Add(4 * time.Hour)},
		{ID: "c3", Keyword: "Brb", Name: "Be right back", Snippet: "brb in a minute", CreatedAt: base.Add(4 * time.Hour), ModifiedAt: base.Add(1 * time.Hour)},
	}
}

func TestProxyDefaultSortByKeywordAscending(t *testing.T) {
	combos := proxyFixture()
	p := NewProxy()
	p.Refresh(combos)

	if p.Len() != 4 {
		t.Fatalf("Len() = %d", p.Len())
	}
	// Case-insensitive keyword order: addr, Brb, mail, sig.
	want := []string{"c1", "c3", "c2", "c0"}
	for row, id := range want {
		src, err := p.SourceIndex(row)
		if err != nil {
			t.Fatalf("SourceIndex(%d): %v", row, err)
		}
		if combos[src].ID != id {
			t.Errorf("row %d = %s, want %s", row, combos[src].ID, id)
		}
	}
}

func TestProxySortDescending(t *testing.T) {
	combos := proxyFixture()
	p := NewProxy()
	p.SetSort(SortByKeyword, false)
	p.Refresh(combos)

	src, err := p.SourceIndex(0)
	if err != nil {
		t.Fatalf("SourceIndex(0): %v", err)
	}
	if combos[src].Keyword != "sig" {
		t.Fatalf("descending first row = %q", combos[src].Keyword)
	}
}

func TestProxySortByTimestamps(t *testing.T) {
	combos := proxyFixture()
	p := NewProxy()

	p.SetSort(SortByCreated, true)
	p.Refresh(combos)
	src, _ := p.SourceIndex(0)
	if combos[src].ID != "c1" {
		t.Fatalf("oldest created = %s", combos[src].ID)
	}

	p.SetSort(SortByModified, false)
	p.Refresh(combos)
	src, _ = p.SourceIndex(0)
	if combos[src].ID != "c1" {
		t.Fatalf("latest modified = %s", combos[src].ID)
	}
}

func TestProxyFilterMatchesAllTextColumns(t *testing.T) {
	combos := proxyFixture()
	p := NewProxy()

	cases := []struct {
		filter string
		want   []string
	}{
		{"SIG", []string{"c0"}},                // keyword, case-insensitive
		{"footer", []string{"c2"}},             // name
		{"main st", []string{"c1"}},            // snippet
		{"b", []string{"c3", "c2", "c0"}},      // several columns
		{"no such text", nil},                  // nothing
		{"", []string{"c1", "c3", "c2", "c0"}}, // filter cleared
	}
	for _, tc := range cases {
		p.SetFilter(tc.filter)
		p.Refresh(combos)
		if p.Len() != len(tc.want) {
			t.Errorf("filter %q: Len() = %d, want %d", tc.filter, p.Len(), len(tc.want))
			continue
		}
		for row, id := range tc.want {
			src, err := p.SourceIndex(row)
			if err != nil {
				t.Fatalf("filter %q row %d: %v", tc.filter, row, err)
			}
			if combos[src].ID != id {
				t.Errorf("filter %q row %d = %s, want %s", tc.filter, row, combos[src].ID, id)
			}
		}
	}
}

func TestProxySourceIndexBounds(t *testing.T) {
	p := NewProxy()
	p.Refresh(proxyFixture())

	for _, row := range []int{-1, 4, 100} {
		if _, err := p.SourceIndex(row); !errors.Is(err, domain.ErrIndexOutOfRange) {
			t.Errorf("SourceIndex(%d) err = %v, want ErrIndexOutOfRange", row, err)
		}
	}
}

func TestProxyDisplayRowRoundTrip(t *testing.T) {
	combos := proxyFixture()
	p := NewProxy()
	p.SetFilter("b")
	p.Refresh(combos)

	for row := 0; row < p.Len(); row++ {
		src, err := p.SourceIndex(row)
		if err != nil {
			t.Fatalf("SourceIndex(%d): %v", row, err)
		}
		if got := p.DisplayRow(src); got != row {
			t.Errorf("DisplayRow(%d) = %d, want %d", src, got, row)
		}
	}

	// c1 ("addr") does not match "b" and has no display row.
	if got := p.DisplayRow(1); got != -1 {
		t.Fatalf("DisplayRow(filtered-out) = %d, want -1", got)
	}
}

func TestProxySourceIndexesDropsInvalidRows(t *testing.T) {
	p := NewProxy()
	p.Refresh(proxyFixture())

	got := p.SourceIndexes([]int{0, 99, 2, -3})
	if len(got) != 2 {
		t.Fatalf("SourceIndexes() = %v", got)
	}
}

func TestProxyStableSortKeepsSourceOrderOnTies(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	combos := []domain.Combo{
		{ID: "first", Keyword: "same", CreatedAt: base, ModifiedAt: base},
		{ID: "second", Keyword: "same", CreatedAt: base, ModifiedAt: base},
		{ID: "third", Keyword: "same", CreatedAt: base, ModifiedAt: base},
	}
	p := NewProxy()
	p.Refresh(combos)

	for row, want := range []string{"first", "second", "third"} {
		src, err := p.SourceIndex(row)
		if err != nil {
			t.Fatalf("SourceIndex(%d): %v", row, err)
		}
		if combos[src].ID != want {
			t.Errorf("row %d = %s, want %s", row, combos[src].ID, want)
		}
	}
}
