package tui

// TableConfig carries the table presentation settings loaded from the config
// file.
type TableConfig struct {
	SortColumn    SortColumn
	SortAscending bool
	ConfirmDelete bool
	ShowSnippet   bool
}

type Option func(*Model)

func DefaultTableConfig() TableConfig {
	return TableConfig{
		SortColumn:    SortByKeyword,
		SortAscending: true,
		ConfirmDelete: true,
		ShowSnippet:   true,
	}
}

func WithTableConfig(cfg TableConfig) Option {
	return func(m *Model) {
		m.table = cfg
		m.proxy.SetSort(cfg.SortColumn, cfg.SortAscending)
	}
}

// WithPreferences attaches the preferences store backing the settings modal
// and the window geometry saved on quit.
func WithPreferences(p Preferences) Option {
	return func(m *Model) {
		m.prefs = p
	}
}

// WithClipboard overrides the clipboard writer used by the copy action.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.writeClipboard = write
		}
	}
}
