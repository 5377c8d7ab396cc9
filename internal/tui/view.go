package tui

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// column widths for the combo table.
const (
	keywordColWidth = 16
	nameColWidth    = 28
)

// View renders state for presentation.
func (m Model) View() tea.View {
	if !m.ready {
		v := tea.NewView("loading...")
		v.AltScreen = true
		return v
	}

	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle := lipgloss.NewStyle().Foreground(dim)
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	var content string
	switch m.mode {
	case modeForm:
		content = m.renderForm(accent, muted)
	case modeConfirmDelete:
		content = m.renderConfirmDelete(muted)
	case modePreview:
		content = m.previewBody + "\n\n" + statusStyle.Render("esc to close")
	case modeSettings:
		content = m.renderSettings(accent, muted)
	case modeMenu:
		content = m.renderMenu(accent, muted)
	default:
		content = m.renderTable(accent, muted, dim)
	}

	sections := []string{titleStyle.Render("kombo"), "", content, ""}
	if m.mode == modeSearch || m.proxy.Filter() != "" {
		sections = append(sections, m.searchInput.View())
	}
	if m.err != nil {
		sections = append(sections, errorStyle.Render(m.err.Error()))
	}
	sections = append(sections, statusStyle.Render(m.status))

	helpBubble := m.help
	helpBubble.SetWidth(max(0, m.width-2))
	sections = append(sections, helpBubble.View(m.keys))

	v := tea.NewView(strings.Join(sections, "\n"))
	v.AltScreen = true
	return v
}

// renderTable renders the combo table with cursor and selection markers.
func (m Model) renderTable(accent, muted, dim color.Color) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(muted)
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	disabledStyle := lipgloss.NewStyle().Foreground(dim)

	header := fmt.Sprintf("  %-3s %-*s %-*s", "", keywordColWidth, "keyword", nameColWidth, "name")
	if m.table.ShowSnippet {
		header += " snippet"
	}
	lines := []string{headerStyle.Render(header)}

	if m.proxy.Len() == 0 {
		if m.proxy.Filter() != "" {
			lines = append(lines, disabledStyle.Render("  no combos match the search"))
		} else {
			lines = append(lines, disabledStyle.Render("  no combos yet, press ctrl+n to add one"))
		}
		return strings.Join(lines, "\n")
	}

	combos := m.mgr.Combos()
	for row := 0; row < m.proxy.Len(); row++ {
		src, err := m.proxy.SourceIndex(row)
		if err != nil || src >= len(combos) {
			continue
		}
		combo := combos[src]

		marker := " "
		if _, ok := m.selectedIDs[combo.ID]; ok {
			marker = "*"
		}
		state := "on "
		if !combo.Enabled {
			state = "off"
		}
		line := fmt.Sprintf("%s %-3s %-*s %-*s", marker, state,
			keywordColWidth, truncate(combo.Keyword, keywordColWidth),
			nameColWidth, truncate(combo.Name, nameColWidth))
		if m.table.ShowSnippet {
			snippetWidth := max(12, m.width-len(line)-4)
			line += " " + truncate(oneLine(combo.Snippet), snippetWidth)
		}

		switch {
		case row == m.cursor:
			line = cursorStyle.Render("> " + line)
		case !combo.Enabled:
			line = "  " + disabledStyle.Render(line)
		default:
			line = "  " + line
		}
		lines = append(lines, line)
	}

	sortLine := fmt.Sprintf("sorted by %s", sortColumnName(m.proxy.SortColumn()))
	if !m.proxy.Ascending() {
		sortLine += " (descending)"
	}
	if m.proxy.Filter() != "" {
		sortLine += fmt.Sprintf(" • %d of %d match", m.proxy.Len(), m.mgr.Size())
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(dim).Render(sortLine))
	return strings.Join(lines, "\n")
}

// renderForm renders the add/edit/duplicate form.
func (m Model) renderForm(accent, muted color.Color) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle := lipgloss.NewStyle().Foreground(muted)

	title := "New combo"
	switch m.formAction {
	case formActionEdit:
		title = "Edit combo"
	case formActionDuplicate:
		title = "Duplicate combo"
	}

	enabled := "enabled"
	if !m.formEnabled {
		enabled = "disabled"
	}
	sections := []string{
		titleStyle.Render(title),
		"",
		m.formInputs[formFieldKeyword].View(),
		m.formInputs[formFieldName].View(),
		"",
		m.formSnippet.View(),
		"",
		hintStyle.Render(fmt.Sprintf("combo %s (ctrl+t toggles)", enabled)),
		hintStyle.Render("tab next field • ctrl+s save • esc cancel"),
	}
	return strings.Join(sections, "\n")
}

// renderConfirmDelete renders the delete confirmation prompt.
func (m Model) renderConfirmDelete(muted color.Color) string {
	hintStyle := lipgloss.NewStyle().Foreground(muted)
	noun := "combos"
	if len(m.pendingDelete) == 1 {
		noun = "combo"
	}
	return fmt.Sprintf("Delete %d %s?\n\n%s",
		len(m.pendingDelete), noun, hintStyle.Render("y confirm • n cancel"))
}

// renderSettings renders the settings modal.
func (m Model) renderSettings(accent, muted color.Color) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle := lipgloss.NewStyle().Foreground(muted)

	entries := []string{
		fmt.Sprintf("[%s] Play sound on combo", onOff(m.playSound)),
		fmt.Sprintf("[%s] Start at login", onOff(m.autoStart)),
		"Reset to defaults",
	}
	lines := []string{titleStyle.Render("Settings"), ""}
	for idx, entry := range entries {
		if idx == m.settingsIndex {
			lines = append(lines, cursorStyle.Render("> "+entry))
		} else {
			lines = append(lines, "  "+entry)
		}
	}
	lines = append(lines, "", hintStyle.Render("enter toggle • esc close"))
	return strings.Join(lines, "\n")
}

// renderMenu renders the action menu.
func (m Model) renderMenu(accent, muted color.Color) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle := lipgloss.NewStyle().Foreground(muted)

	entries := []string{
		"New combo",
		"Edit",
		"Duplicate",
		"Delete",
		"Select all",
		"Deselect all",
	}
	lines := []string{titleStyle.Render("Actions"), ""}
	for idx, entry := range entries {
		if idx == m.menuIndex {
			lines = append(lines, cursorStyle.Render("> "+entry))
		} else {
			lines = append(lines, "  "+entry)
		}
	}
	lines = append(lines, "", hintStyle.Render("enter run • esc close"))
	return strings.Join(lines, "\n")
}

func onOff(v bool) string {
	if v {
		return "x"
	}
	return " "
}

// truncate shortens s to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// oneLine collapses a multi-line snippet into a single display line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
