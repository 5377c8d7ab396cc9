package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"kombo/internal/app"
)

type fakePrefs struct {
	playSound bool
	autoStart bool
	geometry  []byte
	resets    int
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{playSound: true}
}

func (f *fakePrefs) PlaySoundOnCombo() bool           { return f.playSound }
func (f *fakePrefs) SetPlaySoundOnCombo(v bool) error { f.playSound = v; return nil }
func (f *fakePrefs) AutoStartAtLogin() bool           { return f.autoStart }
func (f *fakePrefs) SetAutoStartAtLogin(v bool) error { f.autoStart = v; return nil }
func (f *fakePrefs) Geometry() []byte                 { return f.geometry }
func (f *fakePrefs) SetGeometry(b []byte) error       { f.geometry = b; return nil }
func (f *fakePrefs) Reset() error {
	f.resets++
	f.playSound = true
	f.autoStart = false
	return nil
}

func testComboManager(t *testing.T, keywords ...string) *app.Manager {
	t.Helper()
	next := 0
	mgr := app.NewManager(
		func() string { next++; return fmt.Sprintf("c%d", next) },
		func() time.Time {
			return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC).Add(time.Duration(next) * time.Minute)
		},
		app.ManagerConfig{ComboFilePath: filepath.Join(t.TempDir(), "combos.json")},
	)
	for _, kw := range keywords {
		combo, err := mgr.NewCombo(kw, "", "snippet for "+kw)
		if err != nil {
			t.Fatalf("NewCombo(%q): %v", kw, err)
		}
		mgr.Append(combo)
	}
	return mgr
}

func loadReadyModel(t *testing.T, m Model) Model {
	t.Helper()
	return applyMsg(t, applyCmd(t, m, m.Init()), tea.WindowSizeMsg{Width: 120, Height: 40})
}

func applyMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	return applyCmd(t, out, cmd)
}

func applyCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	out := m
	currentCmd := cmd
	for i := 0; i < 6 && currentCmd != nil; i++ {
		msg := currentCmd()
		if msg == nil {
			return out
		}
		updated, nextCmd := out.Update(msg)
		casted, ok := updated.(Model)
		if !ok {
			t.Fatalf("expected Model, got %T", updated)
		}
		out = casted
		currentCmd = nextCmd
	}
	return out
}

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = applyMsg(t, m, keyRune(r))
	}
	return m
}

func TestModelNavigationAndSelection(t *testing.T) {
	mgr := testComboManager(t, "addr", "brb", "sig")
	m := loadReadyModel(t, NewModel(mgr))

	if m.proxy.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", m.proxy.Len())
	}
	m = applyMsg(t, m, keyRune('j'))
	if m.cursor != 1 {
		t.Fatalf("cursor = %d after j", m.cursor)
	}
	m = applyMsg(t, m, keyRune('k'))
	if m.cursor != 0 {
		t.Fatalf("cursor = %d after k", m.cursor)
	}

	// Space selects the row under the cursor and advances.
	m = applyMsg(t, m, keyRune(' '))
	if len(m.selectedIDs) != 1 || m.cursor != 1 {
		t.Fatalf("after space: %d selected, cursor %d", len(m.selectedIDs), m.cursor)
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'a', Mod: tea.ModCtrl})
	if len(m.selectedIDs) != 3 {
		t.Fatalf("after ctrl+a: %d selected", len(m.selectedIDs))
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl})
	if len(m.selectedIDs) != 0 {
		t.Fatalf("after ctrl+d: %d selected", len(m.selectedIDs))
	}
}

func TestModelAddComboPersists(t *testing.T) {
	mgr := testComboManager(t)
	m := loadReadyModel(t, NewModel(mgr))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	if m.mode != modeForm {
		t.Fatalf("expected form mode, got %d", m.mode)
	}
	m = typeText(t, m, "sig")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = typeText(t, m, "Signature")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = typeText(t, m, "Best regards")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})

	if m.mode != modeNone {
		t.Fatalf("expected normal mode after submit, got %d", m.mode)
	}
	if mgr.Size() != 1 {
		t.Fatalf("expected 1 combo, got %d", mgr.Size())
	}
	combo, err := mgr.At(0)
	if err != nil {
		t.Fatalf("At(0): %v", err)
	}
	if combo.Keyword != "sig" || combo.Name != "Signature" || combo.Snippet != "Best regards" {
		t.Fatalf("unexpected combo %#v", combo)
	}
	if _, err := os.Stat(mgr.ComboFilePath()); err != nil {
		t.Fatalf("expected combo file on disk: %v", err)
	}
}

func TestModelAddComboRejectsEmptyKeyword(t *testing.T) {
	mgr := testComboManager(t)
	m := loadReadyModel(t, NewModel(mgr))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.mode != modeForm {
		t.Fatal("expected form to stay open on invalid submit")
	}
	if mgr.Size() != 0 {
		t.Fatalf("expected no combos, got %d", mgr.Size())
	}
}

func TestModelEditRequiresSingleSelection(t *testing.T) {
	mgr := testComboManager(t, "one", "two", "three")
	m := loadReadyModel(t, NewModel(mgr))

	m = applyMsg(t, m, keyRune(' '))
	m = applyMsg(t, m, keyRune(' '))
	if len(m.selectedIDs) != 2 {
		t.Fatalf("expected 2 selected, got %d", len(m.selectedIDs))
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeNone {
		t.Fatal("edit must not open with multiple selections")
	}
	if m.status != "select exactly one combo" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestModelEditUpdatesCombo(t *testing.T) {
	mgr := testComboManager(t, "sig")
	m := loadReadyModel(t, NewModel(mgr))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeForm || m.formAction != formActionEdit {
		t.Fatalf("expected edit form, mode=%d action=%d", m.mode, m.formAction)
	}
	if m.formInputs[formFieldKeyword].Value() != "sig" {
		t.Fatalf("keyword seed = %q", m.formInputs[formFieldKeyword].Value())
	}

	m = typeText(t, m, "2")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})

	combo, err := mgr.At(0)
	if err != nil {
		t.Fatalf("At(0): %v", err)
	}
	if combo.Keyword != "sig2" {
		t.Fatalf("keyword = %q after edit", combo.Keyword)
	}
}

func TestModelDuplicateSeedsCopyAndPersists(t *testing.T) {
	mgr := testComboManager(t, "sig")
	m := loadReadyModel(t, NewModel(mgr))

	m = applyMsg(t, m, keyRune('c'))
	if m.mode != modeForm || m.formAction != formActionDuplicate {
		t.Fatalf("expected duplicate form, mode=%d action=%d", m.mode, m.formAction)
	}
	if !strings.HasSuffix(m.formInputs[formFieldName].Value(), " (copy)") {
		t.Fatalf("name seed = %q", m.formInputs[formFieldName].Value())
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	if mgr.Size() != 2 {
		t.Fatalf("expected 2 combos after duplicate, got %d", mgr.Size())
	}
	original, _ := mgr.At(0)
	copied, _ := mgr.At(1)
	if copied.ID == original.ID {
		t.Fatal("duplicate must mint a fresh ID")
	}
	if copied.Snippet != original.Snippet {
		t.Fatalf("duplicate snippet = %q", copied.Snippet)
	}
}

func TestModelDeleteWithConfirmation(t *testing.T) {
	mgr := testComboManager(t, "one", "two", "three")
	m := loadReadyModel(t, NewModel(mgr))

	m = applyMsg(t, m, keyRune(' '))
	m = applyMsg(t, m, keyRune(' '))
	m = applyMsg(t, m, keyRune('d'))
	if m.mode != modeConfirmDelete {
		t.Fatalf("expected confirm mode, got %d", m.mode)
	}

	// Cancelling keeps everything.
	m = applyMsg(t, m, keyRune('n'))
	if mgr.Size() != 3 {
		t.Fatalf("size after cancel = %d", mgr.Size())
	}
	if len(m.selectedIDs) != 2 {
		t.Fatalf("selection lost on cancel: %d", len(m.selectedIDs))
	}

	// Confirming deletes the two selected combos. Rows sort by keyword, so
	// the spaces picked "one" and "three" and "two" survives.
	m = applyMsg(t, m, keyRune('d'))
	m = applyMsg(t, m, keyRune('y'))
	if mgr.Size() != 1 {
		t.Fatalf("size after confirm = %d", mgr.Size())
	}
	remaining, _ := mgr.At(0)
	if remaining.Keyword != "two" {
		t.Fatalf("remaining keyword = %q", remaining.Keyword)
	}
	if len(m.selectedIDs) != 0 {
		t.Fatal("selection must clear after delete")
	}
}

func TestModelDeleteWithoutConfirmation(t *testing.T) {
	mgr := testComboManager(t, "one", "two")
	cfg := DefaultTableConfig()
	cfg.ConfirmDelete = false
	m := loadReadyModel(t, NewModel(mgr, WithTableConfig(cfg)))

	m = applyMsg(t, m, keyRune('d'))
	if mgr.Size() != 1 {
		t.Fatalf("size = %d, want 1", mgr.Size())
	}
	_ = m
}

func TestModelSearchRoutesActionsThroughProxy(t *testing.T) {
	mgr := testComboManager(t, "addr", "brb", "sig")
	m := loadReadyModel(t, NewModel(mgr))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'f', Mod: tea.ModCtrl})
	if m.mode != modeSearch {
		t.Fatalf("expected search mode, got %d", m.mode)
	}
	m = typeText(t, m, "sig")
	if m.proxy.Len() != 1 {
		t.Fatalf("filtered rows = %d", m.proxy.Len())
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	// Deleting display row 0 must remove "sig", not the first source combo.
	m = applyMsg(t, m, keyRune('d'))
	m = applyMsg(t, m, keyRune('y'))
	if mgr.Size() != 2 {
		t.Fatalf("size = %d", mgr.Size())
	}
	if _, found := mgr.FindByKeyword("sig"); found {
		t.Fatal("expected sig to be deleted")
	}
	if _, found := mgr.FindByKeyword("addr"); !found {
		t.Fatal("addr must survive the filtered delete")
	}
}

func TestModelEscapeClearsSearchThenSelection(t *testing.T) {
	mgr := testComboManager(t, "addr", "sig")
	m := loadReadyModel(t, NewModel(mgr))

	m = applyMsg(t, m, keyRune(' '))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'f', Mod: tea.ModCtrl})
	m = typeText(t, m, "sig")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.proxy.Filter() != "" {
		t.Fatalf("filter not cleared: %q", m.proxy.Filter())
	}
	if len(m.selectedIDs) != 1 {
		t.Fatal("first escape must keep the selection")
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if len(m.selectedIDs) != 0 {
		t.Fatal("second escape must clear the selection")
	}
}

func TestModelToggleEnabledPersists(t *testing.T) {
	mgr := testComboManager(t, "sig")
	m := loadReadyModel(t, NewModel(mgr))

	m = applyMsg(t, m, keyRune('t'))
	combo, _ := mgr.At(0)
	if combo.Enabled {
		t.Fatal("expected combo disabled after toggle")
	}
	_ = m
}

func TestModelYankUsesClipboardWriter(t *testing.T) {
	mgr := testComboManager(t, "sig")
	var copied string
	m := loadReadyModel(t, NewModel(mgr, WithClipboard(func(s string) error {
		copied = s
		return nil
	})))

	m = applyMsg(t, m, keyRune('y'))
	if copied != "snippet for sig" {
		t.Fatalf("copied = %q", copied)
	}
	if m.status != "snippet copied" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestModelSettingsWriteThrough(t *testing.T) {
	mgr := testComboManager(t)
	prefs := newFakePrefs()
	m := loadReadyModel(t, NewModel(mgr, WithPreferences(prefs)))

	if !m.playSound || m.autoStart {
		t.Fatalf("loaded prefs playSound=%v autoStart=%v", m.playSound, m.autoStart)
	}

	m = applyMsg(t, m, keyRune(','))
	if m.mode != modeSettings {
		t.Fatalf("expected settings mode, got %d", m.mode)
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if prefs.playSound {
		t.Fatal("play sound toggle must write through")
	}
	m = applyMsg(t, m, keyRune('j'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if !prefs.autoStart {
		t.Fatal("auto start toggle must write through")
	}

	m = applyMsg(t, m, keyRune('j'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if prefs.resets != 1 {
		t.Fatalf("resets = %d", prefs.resets)
	}
	if !m.playSound || m.autoStart {
		t.Fatal("reset must reload defaults into the modal")
	}
}

func TestModelSaveFailureKeepsState(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	mgr := app.NewManager(
		func() string { return "c1" },
		nil,
		app.ManagerConfig{ComboFilePath: filepath.Join(blocker, "combos.json")},
	)
	m := loadReadyModel(t, NewModel(mgr))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	m = typeText(t, m, "sig")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})

	if mgr.Size() != 1 {
		t.Fatalf("in-memory combo must survive a failed save, size=%d", mgr.Size())
	}
	if m.err == nil {
		t.Fatal("expected the save error to surface")
	}
}

func TestModelSaveGeometryOnQuit(t *testing.T) {
	mgr := testComboManager(t)
	prefs := newFakePrefs()
	m := loadReadyModel(t, NewModel(mgr, WithPreferences(prefs)))

	cmd := m.saveGeometryCmd()
	if cmd == nil {
		t.Fatal("expected geometry command")
	}
	if msg := cmd(); msg != nil {
		t.Fatalf("geometry save returned %v", msg)
	}
	if string(prefs.geometry) != "120x40" {
		t.Fatalf("geometry = %q", prefs.geometry)
	}
}

func TestModelActionMenuDispatches(t *testing.T) {
	mgr := testComboManager(t, "addr", "sig")
	m := loadReadyModel(t, NewModel(mgr))

	// Open the menu and run "New combo".
	m = applyMsg(t, m, keyRune('m'))
	if m.mode != modeMenu {
		t.Fatalf("mode = %v after m", m.mode)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeForm || m.formAction != formActionAdd {
		t.Fatalf("menu add: mode=%v action=%v", m.mode, m.formAction)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})

	// Delete through the menu reaches the confirmation prompt.
	m = applyMsg(t, m, keyRune('m'))
	for i := 0; i < menuDelete; i++ {
		m = applyMsg(t, m, keyRune('j'))
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeConfirmDelete || len(m.pendingDelete) != 1 {
		t.Fatalf("menu delete: mode=%v pending=%v", m.mode, m.pendingDelete)
	}
	m = applyMsg(t, m, keyRune('n'))

	// Select all / deselect all round trip.
	m = applyMsg(t, m, keyRune('m'))
	for i := 0; i < menuSelectAll; i++ {
		m = applyMsg(t, m, keyRune('j'))
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(m.selectedIDs) != 2 {
		t.Fatalf("menu select all: %d selected", len(m.selectedIDs))
	}
	m = applyMsg(t, m, keyRune('m'))
	for i := 0; i < menuDeselectAll; i++ {
		m = applyMsg(t, m, keyRune('j'))
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(m.selectedIDs) != 0 {
		t.Fatalf("menu deselect all: %d selected", len(m.selectedIDs))
	}

	// Escape closes the menu without running anything.
	m = applyMsg(t, m, keyRune('m'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNone {
		t.Fatalf("mode = %v after esc", m.mode)
	}
}
