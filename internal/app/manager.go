package app

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"kombo/internal/domain"
)

// IDGenerator returns unique identifiers for new combos.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// ManagerConfig holds configuration for the combo manager.
type ManagerConfig struct {
	// ComboFilePath is where the combo list is persisted as JSON.
	ComboFilePath string
}

// Manager owns the combo list and its persistence. It replaces the original
// design's process-wide singleton: construct it once at startup and hand it to
// whatever needs it.
//
// The TUI drives the manager from a single goroutine; the mutex exists for the
// optional serve mode, which shares the manager across request handlers.
type Manager struct {
	mu        sync.Mutex
	list      *domain.ComboList
	idGen     IDGenerator
	clock     Clock
	comboFile string
}

// NewManager constructs a manager with an empty combo list.
func NewManager(idGen IDGenerator, clock Clock, cfg ManagerConfig) *Manager {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	if clock == nil {
		clock = time.Now
	}
	return &Manager{
		list:      domain.NewComboList(),
		idGen:     idGen,
		clock:     clock,
		comboFile: strings.TrimSpace(cfg.ComboFilePath),
	}
}

// ComboFilePath returns the path the combo list persists to.
func (m *Manager) ComboFilePath() string {
	return m.comboFile
}

// Combos returns a copy of the combo list in internal order.
func (m *Manager) Combos() []domain.Combo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list.Combos()
}

// Size returns the number of combos in the list.
func (m *Manager) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list.Size()
}

// NewCombo builds an empty combo ready for the edit form. It is not added to
// the list until the form is accepted.
func (m *Manager) NewCombo(keyword, name, snippet string) (domain.Combo, error) {
	return domain.NewCombo(domain.ComboInput{
		ID:      m.idGen(),
		Keyword: keyword,
		Name:    name,
		Snippet: snippet,
	}, m.clock())
}

// Append adds a combo at the end of the internal order.
func (m *Manager) Append(c domain.Combo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list.Append(c)
}

// At returns the combo at the given internal-order index.
func (m *Manager) At(index int) (domain.Combo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list.At(index)
}

// Update replaces the editable fields of the combo at the given internal-order
// index and bumps its modification timestamp.
func (m *Manager) Update(index int, keyword, name, snippet string, enabled bool) (domain.Combo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.list.At(index)
	if err != nil {
		return domain.Combo{}, err
	}
	if err := c.UpdateDetails(keyword, name, snippet, enabled, m.clock()); err != nil {
		return domain.Combo{}, err
	}
	if err := m.list.Set(index, c); err != nil {
		return domain.Combo{}, err
	}
	return c, nil
}

// Duplicate clones the combo at the given internal-order index under a fresh
// identity without adding the clone to the list.
func (m *Manager) Duplicate(index int) (domain.Combo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.list.At(index)
	if err != nil {
		return domain.Combo{}, err
	}
	return c.Duplicate(m.idGen(), m.clock())
}

// Erase removes combos at the given internal-order indexes. Indexes are
// deleted in descending order so earlier deletions cannot invalidate the rest.
func (m *Manager) Erase(indexes ...int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sorted := append([]int(nil), indexes...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for _, idx := range sorted {
		if err := m.list.Erase(idx); err != nil {
			return fmt.Errorf("erase combo %d: %w", idx, err)
		}
	}
	return nil
}

// MarkComboAsEdited bumps the modification timestamp of the combo at index.
func (m *Manager) MarkComboAsEdited(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list.MarkComboAsEdited(index, m.clock())
}

// SetEnabled toggles the enabled flag of the combo at index.
func (m *Manager) SetEnabled(index int, enabled bool) (domain.Combo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.list.At(index)
	if err != nil {
		return domain.Combo{}, err
	}
	c.Enabled = enabled
	c.MarkEdited(m.clock())
	if err := m.list.Set(index, c); err != nil {
		return domain.Combo{}, err
	}
	return c, nil
}

// FindByKeyword returns the first enabled combo with the given keyword.
func (m *Manager) FindByKeyword(keyword string) (domain.Combo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list.FindByKeyword(keyword)
}

// IndexOf returns the internal-order index of the combo with the given ID.
func (m *Manager) IndexOf(id string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list.IndexOf(id)
}
