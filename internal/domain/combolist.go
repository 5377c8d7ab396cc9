package domain

import (
	"strings"
	"time"
)

// ComboList is an ordered, index-addressable collection of combos. Insertion
// order is the canonical internal order; any display order (sorting, filtering)
// is a view concern layered on top and never mutates the list.
type ComboList struct {
	combos []Combo
}

// NewComboList constructs a list seeded with the given combos in order.
func NewComboList(combos ...Combo) *ComboList {
	l := &ComboList{}
	l.combos = append(l.combos, combos...)
	return l
}

// Size returns the number of combos in the list.
func (l *ComboList) Size() int {
	return len(l.combos)
}

// Append adds a combo at the end of the internal order.
func (l *ComboList) Append(c Combo) {
	l.combos = append(l.combos, c)
}

// At returns the combo at the given internal-order index.
func (l *ComboList) At(index int) (Combo, error) {
	if index < 0 || index >= len(l.combos) {
		return Combo{}, ErrIndexOutOfRange
	}
	return l.combos[index], nil
}

// Set replaces the combo at the given internal-order index.
func (l *ComboList) Set(index int, c Combo) error {
	if index < 0 || index >= len(l.combos) {
		return ErrIndexOutOfRange
	}
	l.combos[index] = c
	return nil
}

// Erase removes the combo at the given internal-order index. Later combos
// shift down by one, so multi-erase callers must delete in descending order.
func (l *ComboList) Erase(index int) error {
	if index < 0 || index >= len(l.combos) {
		return ErrIndexOutOfRange
	}
	l.combos = append(l.combos[:index], l.combos[index+1:]...)
	return nil
}

// MarkComboAsEdited bumps the modification timestamp of the combo at index.
func (l *ComboList) MarkComboAsEdited(index int, now time.Time) error {
	if index < 0 || index >= len(l.combos) {
		return ErrIndexOutOfRange
	}
	l.combos[index].MarkEdited(now)
	return nil
}

// Combos returns a copy of the list in internal order.
func (l *ComboList) Combos() []Combo {
	out := make([]Combo, len(l.combos))
	copy(out, l.combos)
	return out
}

// Replace swaps the whole list contents, preserving the given order.
func (l *ComboList) Replace(combos []Combo) {
	l.combos = append(l.combos[:0:0], combos...)
}

// FindByKeyword returns the first enabled combo whose keyword matches exactly.
func (l *ComboList) FindByKeyword(keyword string) (Combo, bool) {
	keyword = strings.TrimSpace(keyword)
	for _, c := range l.combos {
		if c.Enabled && c.Keyword == keyword {
			return c, true
		}
	}
	return Combo{}, false
}

// IndexOf returns the internal-order index of the combo with the given ID.
func (l *ComboList) IndexOf(id string) (int, bool) {
	for i, c := range l.combos {
		if c.ID == id {
			return i, true
		}
	}
	return 0, false
}
