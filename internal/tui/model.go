package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"kombo/internal/domain"
	"kombo/internal/snippet"
)

// Manager represents the combo list operations the table needs.
type Manager interface {
	Combos() []domain.Combo
	Size() int
	At(index int) (domain.Combo, error)
	NewCombo(keyword, name, snippet string) (domain.Combo, error)
	Append(c domain.Combo)
	Update(index int, keyword, name, snippet string, enabled bool) (domain.Combo, error)
	Duplicate(index int) (domain.Combo, error)
	Erase(indexes ...int) error
	SetEnabled(index int, enabled bool) (domain.Combo, error)
	FindByKeyword(keyword string) (domain.Combo, bool)
	SaveComboList() error
}

// Preferences represents the subset of the preferences store the table uses.
type Preferences interface {
	PlaySoundOnCombo() bool
	SetPlaySoundOnCombo(bool) error
	AutoStartAtLogin() bool
	SetAutoStartAtLogin(bool) error
	Geometry() []byte
	SetGeometry([]byte) error
	Reset() error
}

// inputMode represents a selectable mode.
type inputMode int

// modeNone and related constants define package defaults.
const (
	modeNone inputMode = iota
	modeSearch
	modeForm
	modeConfirmDelete
	modePreview
	modeSettings
	modeMenu
)

// formAction tells the submit handler what the combo form was opened for.
type formAction int

const (
	formActionAdd formAction = iota
	formActionEdit
	formActionDuplicate
)

// combo-form field indexes used throughout keyboard/update logic.
const (
	formFieldKeyword = iota
	formFieldName
	formFieldSnippet
	formFieldCount
)

// action menu entries in display order, mirroring the keyboard shortcuts.
const (
	menuAdd = iota
	menuEdit
	menuDuplicate
	menuDelete
	menuSelectAll
	menuDeselectAll
	menuCount
)

// settings modal entries in display order.
const (
	settingsPlaySound = iota
	settingsAutoStart
	settingsReset
	settingsCount
)

// savedMsg carries the result of a combo list persist.
type savedMsg struct {
	err    error
	status string
}

// clipboardMsg carries the result of a snippet copy.
type clipboardMsg struct {
	err error
}

// Model represents model data used by this package.
type Model struct {
	mgr   Manager
	prefs Preferences

	ready  bool
	width  int
	height int
	err    error

	status string

	help  help.Model
	keys  keyMap
	table TableConfig

	proxy  *Proxy
	cursor int

	// selectedIDs holds selected combo IDs; selecting by ID keeps the
	// selection valid while the proxy reorders or hides rows.
	selectedIDs map[string]struct{}

	mode        inputMode
	searchInput textinput.Model

	formInputs  []textinput.Model
	formSnippet textarea.Model
	formFocus   int
	formAction  formAction
	formEnabled bool
	editSource  int

	pendingDelete []int

	settingsIndex int
	playSound     bool
	autoStart     bool

	menuIndex int

	previewBody string
	markdown    markdownRenderer

	writeClipboard func(string) error
}

// NewModel constructs a new value for this package.
func NewModel(mgr Manager, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false

	searchInput := textinput.New()
	searchInput.Prompt = "search: "
	searchInput.Placeholder = "keyword, name, snippet"
	searchInput.CharLimit = 120

	keyword := textinput.New()
	keyword.Prompt = "keyword: "
	keyword.CharLimit = 64
	name := textinput.New()
	name.Prompt = "name:    "
	name.CharLimit = 120
	snippetArea := textarea.New()
	snippetArea.Placeholder = "snippet text, #{variables} allowed"
	snippetArea.CharLimit = 0

	m := Model{
		status:         "ready",
		help:           h,
		keys:           newKeyMap(),
		table:          DefaultTableConfig(),
		proxy:          NewProxy(),
		selectedIDs:    map[string]struct{}{},
		searchInput:    searchInput,
		formInputs:     []textinput.Model{keyword, name},
		formSnippet:    snippetArea,
		writeClipboard: clipboard.WriteAll,
		mgr:            mgr,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	m.proxy.Refresh(m.mgr.Combos())
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return m.loadPreferences
}

// loadPreferences reads the settings the modal displays.
func (m Model) loadPreferences() tea.Msg {
	if m.prefs == nil {
		return nil
	}
	return prefsLoadedMsg{
		playSound: m.prefs.PlaySoundOnCombo(),
		autoStart: m.prefs.AutoStartAtLogin(),
	}
}

// prefsLoadedMsg carries preference values into the model.
type prefsLoadedMsg struct {
	playSound bool
	autoStart bool
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		m.formSnippet.SetWidth(max(24, m.width-12))
		return m, nil

	case prefsLoadedMsg:
		m.playSound = msg.playSound
		m.autoStart = msg.autoStart
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = "save failed"
			return m, nil
		}
		m.err = nil
		if msg.status != "" {
			m.status = msg.status
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.status = "clipboard copy failed: " + msg.err.Error()
		} else {
			m.status = "snippet copied"
		}
		return m, nil

	case tea.KeyPressMsg:
		if m.mode != modeNone {
			return m.handleInputModeKey(msg)
		}
		return m.handleNormalModeKey(msg)
	}
	return m, nil
}

// refresh recomputes the display mapping and clamps the cursor.
func (m *Model) refresh() {
	m.proxy.Refresh(m.mgr.Combos())
	if m.cursor >= m.proxy.Len() {
		m.cursor = m.proxy.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// persistCmd writes the combo list to disk. In-memory state stays as edited
// even when the write fails; the error is surfaced in the status bar instead.
func (m Model) persistCmd(status string) tea.Cmd {
	return func() tea.Msg {
		if err := m.mgr.SaveComboList(); err != nil {
			return savedMsg{err: fmt.Errorf("save combo list: %w", err)}
		}
		return savedMsg{status: status}
	}
}

// copySnippetCmd writes the snippet to the system clipboard.
func (m Model) copySnippetCmd(text string) tea.Cmd {
	write := m.writeClipboard
	return func() tea.Msg {
		return clipboardMsg{err: write(text)}
	}
}

// cursorSource returns the source index under the cursor.
func (m Model) cursorSource() (int, bool) {
	src, err := m.proxy.SourceIndex(m.cursor)
	if err != nil {
		return 0, false
	}
	return src, true
}

// selectedSources resolves the selection to source indexes. Combos whose ID
// no longer exists are silently dropped. With nothing explicitly selected the
// cursor row acts as the selection, matching how the table treats the
// highlighted row.
func (m Model) selectedSources() []int {
	if len(m.selectedIDs) == 0 {
		if src, ok := m.cursorSource(); ok {
			return []int{src}
		}
		return nil
	}
	combos := m.mgr.Combos()
	out := make([]int, 0, len(m.selectedIDs))
	for idx, c := range combos {
		if _, ok := m.selectedIDs[c.ID]; ok {
			out = append(out, idx)
		}
	}
	return out
}

// SelectedCount reports how many rows the next action would affect.
func (m Model) SelectedCount() int {
	return len(m.selectedSources())
}

// handleNormalModeKey handles normal mode key.
func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Sequence(m.saveGeometryCmd(), tea.Quit)

	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case msg.String() == "esc":
		if m.help.ShowAll {
			m.help.ShowAll = false
			return m, nil
		}
		if m.proxy.Filter() != "" {
			m.proxy.SetFilter("")
			m.searchInput.SetValue("")
			m.refresh()
			m.status = "search cleared"
			return m, nil
		}
		if len(m.selectedIDs) > 0 {
			m.selectedIDs = map[string]struct{}{}
			m.status = "selection cleared"
		}
		return m, nil

	case key.Matches(msg, m.keys.moveDown):
		if m.cursor < m.proxy.Len()-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.moveUp):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.search):
		m.mode = modeSearch
		m.searchInput.SetValue(m.proxy.Filter())
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.toggleSelect):
		src, ok := m.cursorSource()
		if !ok {
			m.status = "no combo selected"
			return m, nil
		}
		combo, err := m.mgr.At(src)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		if _, selected := m.selectedIDs[combo.ID]; selected {
			delete(m.selectedIDs, combo.ID)
		} else {
			m.selectedIDs[combo.ID] = struct{}{}
		}
		if m.cursor < m.proxy.Len()-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.selectAll):
		m.selectAllVisible()
		return m, nil

	case key.Matches(msg, m.keys.deselectAll):
		m.selectedIDs = map[string]struct{}{}
		m.status = "selection cleared"
		return m, nil

	case key.Matches(msg, m.keys.newCombo):
		return m.startComboForm(formActionAdd, -1)

	case key.Matches(msg, m.keys.duplicate):
		src, ok := m.exactlyOneSelection()
		if !ok {
			return m, nil
		}
		return m.startComboForm(formActionDuplicate, src)

	case key.Matches(msg, m.keys.editCombo):
		src, ok := m.exactlyOneSelection()
		if !ok {
			return m, nil
		}
		return m.startComboForm(formActionEdit, src)

	case key.Matches(msg, m.keys.deleteCombo):
		return m.requestDelete()

	case key.Matches(msg, m.keys.actionMenu):
		m.mode = modeMenu
		m.menuIndex = 0
		return m, nil

	case key.Matches(msg, m.keys.toggleEnabled):
		src, ok := m.cursorSource()
		if !ok {
			m.status = "no combo selected"
			return m, nil
		}
		combo, err := m.mgr.At(src)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		updated, err := m.mgr.SetEnabled(src, !combo.Enabled)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.refresh()
		state := "disabled"
		if updated.Enabled {
			state = "enabled"
		}
		return m, m.persistCmd(fmt.Sprintf("%q %s", updated.Keyword, state))

	case key.Matches(msg, m.keys.preview):
		src, ok := m.cursorSource()
		if !ok {
			m.status = "no combo selected"
			return m, nil
		}
		combo, err := m.mgr.At(src)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.mode = modePreview
		m.previewBody = m.renderPreview(combo)
		return m, nil

	case key.Matches(msg, m.keys.yankSnippet):
		src, ok := m.cursorSource()
		if !ok {
			m.status = "no combo selected"
			return m, nil
		}
		combo, err := m.mgr.At(src)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.copySnippetCmd(combo.Snippet)

	case key.Matches(msg, m.keys.sortColumn):
		m.proxy.SetSort(nextSortColumn(m.proxy.SortColumn()), m.proxy.Ascending())
		m.refresh()
		m.status = "sorted by " + sortColumnName(m.proxy.SortColumn())
		return m, nil

	case key.Matches(msg, m.keys.sortOrder):
		m.proxy.ToggleOrder()
		m.refresh()
		if m.proxy.Ascending() {
			m.status = "ascending"
		} else {
			m.status = "descending"
		}
		return m, nil

	case key.Matches(msg, m.keys.settings):
		if m.prefs == nil {
			m.status = "preferences unavailable"
			return m, nil
		}
		m.mode = modeSettings
		m.settingsIndex = 0
		return m, nil

	case key.Matches(msg, m.keys.save):
		return m, m.persistCmd("combo list saved")
	}
	return m, nil
}

// selectAllVisible marks every row visible under the current filter.
func (m *Model) selectAllVisible() {
	for row := 0; row < m.proxy.Len(); row++ {
		src, err := m.proxy.SourceIndex(row)
		if err != nil {
			continue
		}
		if combo, err := m.mgr.At(src); err == nil {
			m.selectedIDs[combo.ID] = struct{}{}
		}
	}
	m.status = fmt.Sprintf("%d combos selected", len(m.selectedIDs))
}

// requestDelete starts the delete flow for the current selection, going
// through the confirmation prompt when it is enabled.
func (m Model) requestDelete() (tea.Model, tea.Cmd) {
	sources := m.selectedSources()
	if len(sources) == 0 {
		m.status = "no combo selected"
		return m, nil
	}
	if m.table.ConfirmDelete {
		m.mode = modeConfirmDelete
		m.pendingDelete = sources
		return m, nil
	}
	return m.deleteSources(sources)
}

// exactlyOneSelection resolves the selection for actions that need a single
// combo, reporting through the status bar when the precondition fails.
func (m *Model) exactlyOneSelection() (int, bool) {
	sources := m.selectedSources()
	switch len(sources) {
	case 0:
		m.status = "no combo selected"
		return 0, false
	case 1:
		return sources[0], true
	default:
		m.status = "select exactly one combo"
		return 0, false
	}
}

// startComboForm opens the combo form in the given role. For edit and
// duplicate the fields are seeded from the source combo.
func (m Model) startComboForm(action formAction, source int) (tea.Model, tea.Cmd) {
	m.formAction = action
	m.editSource = source
	m.formFocus = formFieldKeyword
	m.formEnabled = true

	keyword, name, body := "", "", ""
	if action != formActionAdd {
		combo, err := m.mgr.At(source)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		keyword = combo.Keyword
		name = combo.Name
		body = combo.Snippet
		m.formEnabled = combo.Enabled
		if action == formActionDuplicate {
			name += " (copy)"
		}
	}
	m.formInputs[formFieldKeyword].SetValue(keyword)
	m.formInputs[formFieldName].SetValue(name)
	m.formSnippet.SetValue(body)
	m.formSnippet.Blur()
	m.formInputs[formFieldName].Blur()
	m.mode = modeForm
	return m, m.formInputs[formFieldKeyword].Focus()
}

// handleInputModeKey handles input mode key.
func (m Model) handleInputModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeForm:
		return m.handleFormKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmDeleteKey(msg)
	case modePreview:
		switch msg.String() {
		case "esc", "q", "enter", "p":
			m.mode = modeNone
			m.previewBody = ""
		}
		return m, nil
	case modeSettings:
		return m.handleSettingsKey(msg)
	case modeMenu:
		return m.handleMenuKey(msg)
	}
	m.mode = modeNone
	return m, nil
}

// handleMenuKey drives the action menu. Entries dispatch to the same flows as
// their keyboard shortcuts.
func (m Model) handleMenuKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "m":
		m.mode = modeNone
		return m, nil
	case "j", "down":
		if m.menuIndex < menuCount-1 {
			m.menuIndex++
		}
		return m, nil
	case "k", "up":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
		return m, nil
	case "enter", "space", " ":
		m.mode = modeNone
		switch m.menuIndex {
		case menuAdd:
			return m.startComboForm(formActionAdd, -1)
		case menuEdit:
			src, ok := m.exactlyOneSelection()
			if !ok {
				return m, nil
			}
			return m.startComboForm(formActionEdit, src)
		case menuDuplicate:
			src, ok := m.exactlyOneSelection()
			if !ok {
				return m, nil
			}
			return m.startComboForm(formActionDuplicate, src)
		case menuDelete:
			return m.requestDelete()
		case menuSelectAll:
			m.selectAllVisible()
			return m, nil
		case menuDeselectAll:
			m.selectedIDs = map[string]struct{}{}
			m.status = "selection cleared"
			return m, nil
		}
		return m, nil
	}
	return m, nil
}

// handleSearchKey applies the filter live while the search field is open.
func (m Model) handleSearchKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNone
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.proxy.SetFilter("")
		m.refresh()
		m.status = "search cleared"
		return m, nil
	case "enter":
		m.mode = modeNone
		m.searchInput.Blur()
		if m.proxy.Filter() == "" {
			m.status = "ready"
		} else {
			m.status = fmt.Sprintf("%d of %d combos match", m.proxy.Len(), m.mgr.Size())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.proxy.SetFilter(m.searchInput.Value())
	m.refresh()
	return m, cmd
}

// handleFormKey drives the combo form fields and submit.
func (m Model) handleFormKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNone
		m.status = "cancelled"
		return m, nil
	case "tab", "shift+tab":
		delta := 1
		if msg.String() == "shift+tab" {
			delta = formFieldCount - 1
		}
		m.blurFormField(m.formFocus)
		m.formFocus = (m.formFocus + delta) % formFieldCount
		return m, m.focusFormField(m.formFocus)
	case "ctrl+t":
		m.formEnabled = !m.formEnabled
		return m, nil
	case "enter":
		// Enter inserts a newline while the snippet area has focus.
		if m.formFocus != formFieldSnippet {
			return m.submitComboForm()
		}
	case "ctrl+s":
		return m.submitComboForm()
	}

	var cmd tea.Cmd
	switch m.formFocus {
	case formFieldSnippet:
		m.formSnippet, cmd = m.formSnippet.Update(msg)
	default:
		m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	}
	return m, cmd
}

func (m *Model) blurFormField(field int) {
	if field == formFieldSnippet {
		m.formSnippet.Blur()
		return
	}
	m.formInputs[field].Blur()
}

func (m *Model) focusFormField(field int) tea.Cmd {
	if field == formFieldSnippet {
		return m.formSnippet.Focus()
	}
	return m.formInputs[field].Focus()
}

// submitComboForm validates the form and applies the add, edit, or duplicate.
func (m Model) submitComboForm() (tea.Model, tea.Cmd) {
	keyword := strings.TrimSpace(m.formInputs[formFieldKeyword].Value())
	name := strings.TrimSpace(m.formInputs[formFieldName].Value())
	body := m.formSnippet.Value()

	switch m.formAction {
	case formActionEdit:
		combo, err := m.mgr.Update(m.editSource, keyword, name, body, m.formEnabled)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.mode = modeNone
		m.refresh()
		m.focusCombo(combo.ID)
		return m, m.persistCmd(fmt.Sprintf("%q updated", combo.Keyword))

	default:
		combo, err := m.mgr.NewCombo(keyword, name, body)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		combo.Enabled = m.formEnabled
		m.mgr.Append(combo)
		m.mode = modeNone
		m.selectedIDs = map[string]struct{}{}
		m.refresh()
		m.focusCombo(combo.ID)
		verb := "added"
		if m.formAction == formActionDuplicate {
			verb = "duplicated"
		}
		return m, m.persistCmd(fmt.Sprintf("%q %s", combo.Keyword, verb))
	}
}

// focusCombo moves the cursor onto the combo with the given ID when it is
// visible under the current filter.
func (m *Model) focusCombo(id string) {
	for idx, c := range m.mgr.Combos() {
		if c.ID != id {
			continue
		}
		if row := m.proxy.DisplayRow(idx); row >= 0 {
			m.cursor = row
		}
		return
	}
}

// handleConfirmDeleteKey resolves the pending delete confirmation.
func (m Model) handleConfirmDeleteKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		sources := m.pendingDelete
		m.pendingDelete = nil
		m.mode = modeNone
		return m.deleteSources(sources)
	case "n", "esc":
		m.pendingDelete = nil
		m.mode = modeNone
		m.status = "delete cancelled"
		return m, nil
	}
	return m, nil
}

// deleteSources erases the given source indexes and persists the result.
func (m Model) deleteSources(sources []int) (tea.Model, tea.Cmd) {
	count := len(sources)
	if err := m.mgr.Erase(sources...); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.selectedIDs = map[string]struct{}{}
	m.refresh()
	noun := "combos"
	if count == 1 {
		noun = "combo"
	}
	return m, m.persistCmd(fmt.Sprintf("%d %s deleted", count, noun))
}

// handleSettingsKey drives the settings modal. Toggles write through to the
// preferences store immediately.
func (m Model) handleSettingsKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", ",":
		m.mode = modeNone
		return m, nil
	case "j", "down":
		if m.settingsIndex < settingsCount-1 {
			m.settingsIndex++
		}
		return m, nil
	case "k", "up":
		if m.settingsIndex > 0 {
			m.settingsIndex--
		}
		return m, nil
	case "enter", "space", " ":
		switch m.settingsIndex {
		case settingsPlaySound:
			m.playSound = !m.playSound
			if err := m.prefs.SetPlaySoundOnCombo(m.playSound); err != nil {
				m.status = "save preference: " + err.Error()
			}
		case settingsAutoStart:
			m.autoStart = !m.autoStart
			if err := m.prefs.SetAutoStartAtLogin(m.autoStart); err != nil {
				m.status = "save preference: " + err.Error()
			}
		case settingsReset:
			if err := m.prefs.Reset(); err != nil {
				m.status = "reset preferences: " + err.Error()
				return m, nil
			}
			return m, m.loadPreferences
		}
		return m, nil
	}
	return m, nil
}

// saveGeometryCmd persists the terminal size so the next launch can size its
// window the same way.
func (m Model) saveGeometryCmd() tea.Cmd {
	if m.prefs == nil || m.width == 0 {
		return nil
	}
	geometry := []byte(fmt.Sprintf("%dx%d", m.width, m.height))
	prefs := m.prefs
	return func() tea.Msg {
		if err := prefs.SetGeometry(geometry); err != nil {
			return savedMsg{err: fmt.Errorf("save geometry: %w", err)}
		}
		return nil
	}
}

// renderPreview renders the snippet for the preview modal, substituting the
// variables that need no user interaction.
func (m Model) renderPreview(combo domain.Combo) string {
	env := snippet.Env{
		LookupCombo: func(name string) (string, bool) {
			ref, ok := m.mgr.FindByKeyword(name)
			if !ok {
				return "", false
			}
			return ref.Snippet, true
		},
		// Input prompts stay unanswered in the preview.
		Prompt: func(description string) (string, bool) {
			return "#{input:" + description + "}", true
		},
	}
	rendered, err := snippet.Render(combo.Snippet, env)
	if err != nil {
		rendered = combo.Snippet
	}
	header := fmt.Sprintf("# %s\n\n`%s`\n\n", combo.Name, combo.Keyword)
	return m.markdown.render(header+rendered, m.width-8)
}

func nextSortColumn(column SortColumn) SortColumn {
	switch column {
	case SortByKeyword:
		return SortByName
	case SortByName:
		return SortByCreated
	case SortByCreated:
		return SortByModified
	default:
		return SortByKeyword
	}
}

func sortColumnName(column SortColumn) string {
	switch column {
	case SortByName:
		return "name"
	case SortByCreated:
		return "created"
	case SortByModified:
		return "modified"
	default:
		return "keyword"
	}
}
