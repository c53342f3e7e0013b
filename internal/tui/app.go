package tui

import (
	"time"

	"snipbook-cli/internal/model"
	"snipbook-cli/internal/mutate"
	"snipbook-cli/internal/search"
	"snipbook-cli/internal/store"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type mode int

const (
	modeBrowse mode = iota
	modeMove
	modeSearch
	modeInput
	modeConfirmDelete
	modeHelp
)

type (
	saveDoneMsg    struct{ err error }
	editorDoneMsg  struct{ err error }
	clearStatusMsg struct{ seq int }
	revealTickMsg  struct {
		folderID string
		seq      int
	}
)

// revealDelay is how long a collapsed folder has to sit as the nest target
// of a grabbed item before it auto-expands. Purely advisory; any further
// movement cancels the pending reveal.
const revealDelay = 600 * time.Millisecond

type appModel struct {
	store store.Store
	db    *store.DB
	keys  keyMap

	width  int
	height int

	mode   mode
	rows   []row
	cursor int
	scroll int

	// Move mode: the grabbed item travels with the cursor.
	grabbedID string
	revealSeq int

	// Single-line input (add/rename/color/argument prompts).
	input        textinput.Model
	inputPurpose inputPurpose
	inputTarget  string
	pendingName  string
	addParentID  string
	flow         *execFlow

	searchInput textinput.Model
	matches     []search.Match
	matchCursor int

	deleteID string

	statusMsg string
	statusErr bool
	statusSeq int
}

func newAppModel(s store.Store, db *store.DB) appModel {
	db.EnsureDefaults()

	in := textinput.New()
	in.CharLimit = 512

	si := textinput.New()
	si.Placeholder = "search snippets"
	si.CharLimit = 256

	m := appModel{
		store:       s,
		db:          db,
		keys:        newKeyMap(),
		input:       in,
		searchInput: si,
	}
	m.rebuild()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case saveDoneMsg:
		if msg.err != nil {
			// The in-memory tree stays authoritative; only surface the failure.
			return m.withStatus("save failed: "+msg.err.Error(), true)
		}
		return m, nil

	case editorDoneMsg:
		if msg.err != nil {
			return m.withStatus("editor: "+msg.err.Error(), true)
		}
		return m.withStatus("command handed to editor", false)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
		}
		return m, nil

	case revealTickMsg:
		return m.handleReveal(msg)

	case tea.KeyMsg:
		switch m.mode {
		case modeMove:
			return m.updateMove(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeInput:
			return m.updateInput(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeHelp:
			m.mode = modeBrowse
			return m, nil
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m appModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, k.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, k.Right):
		if r, ok := m.currentRow(); ok && r.item.Kind == model.KindFolder && !r.item.Expanded {
			mutate.SetExpanded(m.db, r.item.ID, true)
			m.rebuild()
			return m, m.persist()
		}
		return m, nil

	case key.Matches(msg, k.Left):
		if r, ok := m.currentRow(); ok {
			if r.item.Kind == model.KindFolder && r.item.Expanded {
				mutate.SetExpanded(m.db, r.item.ID, false)
				m.rebuild()
				return m, m.persist()
			}
			// Jump to the enclosing folder instead.
			if i := rowIndexOf(m.rows, r.item.ParentKey()); i >= 0 {
				m.cursor = i
				m.clampScroll()
			}
		}
		return m, nil

	case key.Matches(msg, k.NextTab):
		return m.switchTab(1)
	case key.Matches(msg, k.PrevTab):
		return m.switchTab(-1)
	case key.Matches(msg, k.TabLeft):
		return m.reorderActiveTab(-1)
	case key.Matches(msg, k.TabRight):
		return m.reorderActiveTab(1)

	case key.Matches(msg, k.Exec):
		if r, ok := m.currentRow(); ok && r.item.Kind == model.KindSnippet {
			return m.startExec(r.item)
		}
		if r, ok := m.currentRow(); ok && r.item.Kind == model.KindFolder {
			mutate.ToggleExpanded(m.db, r.item.ID)
			m.rebuild()
			return m, m.persist()
		}
		return m, nil

	case key.Matches(msg, k.Yank):
		if r, ok := m.currentRow(); ok && r.item.Kind == model.KindSnippet {
			return m.yank(r.item)
		}
		return m, nil

	case key.Matches(msg, k.Grab):
		if r, ok := m.currentRow(); ok && r.item.Kind != model.KindTab {
			m.mode = modeMove
			m.grabbedID = r.item.ID
		}
		return m, nil

	case key.Matches(msg, k.Search):
		m.mode = modeSearch
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.matches = nil
		m.matchCursor = 0
		return m, textinput.Blink

	case key.Matches(msg, k.AddSnippet):
		return m.startInput(inputAddSnippetName, "", "snippet name")
	case key.Matches(msg, k.AddFolder):
		return m.startInput(inputAddFolderName, "", "folder name")
	case key.Matches(msg, k.AddTab):
		return m.startInput(inputAddTabName, "", "tab name")
	case key.Matches(msg, k.AddSeparator):
		m.addParentID = m.insertContext()
		if _, ok := mutate.Add(m.db, m.store, model.KindSeparator, "", "", m.addParentID, time.Now()); ok {
			m.rebuild()
			return m, m.persist()
		}
		return m, nil

	case key.Matches(msg, k.Rename):
		if r, ok := m.currentRow(); ok {
			m.inputTarget = r.item.ID
			return m.startInput(inputRename, r.item.Name, "new name")
		}
		return m, nil

	case key.Matches(msg, k.Color):
		if r, ok := m.currentRow(); ok {
			m.inputTarget = r.item.ID
			return m.startInput(inputColor, r.item.Color, "color (ansi256 or #hex, empty clears)")
		}
		return m, nil
	case key.Matches(msg, k.ColorTree):
		if r, ok := m.currentRow(); ok {
			m.inputTarget = r.item.ID
			return m.startInput(inputColorTree, r.item.Color, "color for item and descendants")
		}
		return m, nil

	case key.Matches(msg, k.Delete):
		if r, ok := m.currentRow(); ok {
			m.deleteID = r.item.ID
			m.mode = modeConfirmDelete
		}
		return m, nil

	case key.Matches(msg, k.CycleExecMode):
		return m.cycleExecMode()

	case key.Matches(msg, k.Help):
		m.mode = modeHelp
		return m, nil
	}
	return m, nil
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := m.deleteID
		m.mode = modeBrowse
		m.deleteID = ""
		if mutate.Delete(m.db, id, time.Now()) {
			m.rebuild()
			mm, cmd := m.withStatus("deleted (children promoted)", false)
			return mm, tea.Batch(cmd, m.persist())
		}
		return m, nil
	default:
		m.mode = modeBrowse
		m.deleteID = ""
		return m, nil
	}
}

// activeTabID validates the persisted active tab and falls back to the
// implicit root tab, then the first real tab.
func (m *appModel) activeTabID() string {
	id := m.db.Settings.ActiveTabID
	if id != model.RootID {
		if it, ok := m.db.FindItem(id); ok && it.Kind == model.KindTab {
			return id
		}
	}
	if m.db.HasRootItems() {
		return model.RootID
	}
	if tabs := m.db.Tabs(); len(tabs) > 0 {
		return tabs[0].ID
	}
	return model.RootID
}

// tabBarIDs lists the selectable tabs in order, with the implicit root tab
// first whenever top-level parentless items exist.
func (m *appModel) tabBarIDs() []string {
	var ids []string
	if m.db.HasRootItems() {
		ids = append(ids, model.RootID)
	}
	for _, t := range m.db.Tabs() {
		ids = append(ids, t.ID)
	}
	if len(ids) == 0 {
		ids = []string{model.RootID}
	}
	return ids
}

func (m appModel) switchTab(delta int) (tea.Model, tea.Cmd) {
	ids := m.tabBarIDs()
	cur := m.activeTabID()
	at := 0
	for i, id := range ids {
		if id == cur {
			at = i
			break
		}
	}
	next := ids[((at+delta)%len(ids)+len(ids))%len(ids)]
	if next == cur {
		return m, nil
	}
	m.db.Settings.ActiveTabID = next
	m.cursor = 0
	m.scroll = 0
	m.rebuild()
	return m, m.persist()
}

func (m appModel) reorderActiveTab(delta int) (tea.Model, tea.Cmd) {
	cur := m.activeTabID()
	if cur == model.RootID {
		return m, nil
	}
	tabs := m.db.Tabs()
	at := -1
	for i, t := range tabs {
		if t.ID == cur {
			at = i
			break
		}
	}
	if at < 0 || at+delta < 0 || at+delta >= len(tabs) {
		return m, nil
	}
	pos := mutate.PositionAfter
	if delta < 0 {
		pos = mutate.PositionBefore
	}
	if mutate.Reparent(m.db, cur, pos, tabs[at+delta].ID, time.Now()) {
		m.rebuild()
		return m, m.persist()
	}
	return m, nil
}

func (m appModel) cycleExecMode() (tea.Model, tea.Cmd) {
	switch m.db.Settings.ExecMode {
	case model.ExecModeEditor:
		m.db.Settings.ExecMode = model.ExecModeLocked
	case model.ExecModeLocked:
		m.db.Settings.ExecMode = model.ExecModeTerminal
	default:
		m.db.Settings.ExecMode = model.ExecModeEditor
	}
	mm, cmd := m.withStatus("exec mode: "+string(m.db.Settings.ExecMode), false)
	return mm, tea.Batch(cmd, m.persist())
}

// insertContext picks where new items land: inside the folder under the
// cursor when it is expanded, else next to the cursor row, else the tab.
func (m *appModel) insertContext() string {
	r, ok := m.currentRow()
	if !ok {
		return m.activeTabID()
	}
	if r.item.Kind == model.KindFolder && r.item.Expanded {
		return r.item.ID
	}
	return r.item.ParentKey()
}

func (m *appModel) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *appModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.clampScroll()
}

func (m *appModel) rebuild() {
	m.rows = visibleRows(m.db, m.activeTabID())
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampScroll()
}

func (m *appModel) clampScroll() {
	h := m.bodyHeight()
	if h < 1 {
		h = 1
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+h {
		m.scroll = m.cursor - h + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// persist saves a snapshot of the store off the update loop so disk latency
// never blocks keystrokes. Failures come back as saveDoneMsg.
func (m *appModel) persist() tea.Cmd {
	snap := &store.DB{
		Version:  m.db.Version,
		Settings: m.db.Settings,
		Items:    append([]model.Item(nil), m.db.Items...),
		History:  append([]model.HistoryEntry(nil), m.db.History...),
	}
	s := m.store
	return func() tea.Msg {
		return saveDoneMsg{err: s.Save(snap)}
	}
}

func (m appModel) withStatus(msg string, isErr bool) (appModel, tea.Cmd) {
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}
