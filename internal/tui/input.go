package tui

import (
	"context"
	"io"
	"strings"
	"time"

	"snipbook-cli/internal/args"
	"snipbook-cli/internal/dispatch"
	"snipbook-cli/internal/model"
	"snipbook-cli/internal/mutate"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type inputPurpose int

const (
	inputAddSnippetName inputPurpose = iota
	inputAddSnippetCommand
	inputAddFolderName
	inputAddTabName
	inputRename
	inputColor
	inputColorTree
	inputArg
)

// execFlow walks a snippet's placeholders one prompt at a time. Values are
// only applied once every prompt has been answered; esc abandons the whole
// run with nothing dispatched and nothing recorded.
type execFlow struct {
	item         model.Item
	placeholders []args.Placeholder
	idx          int
	values       map[int]string
}

func (m appModel) startInput(p inputPurpose, prefill, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = modeInput
	m.inputPurpose = p
	m.input.SetValue(prefill)
	m.input.Placeholder = placeholder
	m.input.CursorEnd()
	m.input.Focus()
	if p == inputAddSnippetName || p == inputAddFolderName {
		m.addParentID = m.insertContext()
	}
	return m, textinput.Blink
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		canceled := m.flow != nil
		m.mode = modeBrowse
		m.flow = nil
		m.input.Blur()
		if canceled {
			return m.withStatus("canceled; nothing executed", false)
		}
		return m, nil
	case "enter":
		return m.submitInput(strings.TrimSpace(m.input.Value()))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) submitInput(value string) (tea.Model, tea.Cmd) {
	now := time.Now()
	switch m.inputPurpose {
	case inputAddSnippetName:
		if value == "" {
			return m, nil
		}
		m.pendingName = value
		return m.startInput(inputAddSnippetCommand, "", "command ({{arg$1:Label}} for prompts)")

	case inputAddSnippetCommand:
		name := m.pendingName
		m.pendingName = ""
		m.mode = modeBrowse
		m.input.Blur()
		if it, ok := mutate.Add(m.db, m.store, model.KindSnippet, name, value, m.addParentID, now); ok {
			m.rebuild()
			if i := rowIndexOf(m.rows, it.ID); i >= 0 {
				m.cursor = i
				m.clampScroll()
			}
			return m, m.persist()
		}
		return m, nil

	case inputAddFolderName:
		m.mode = modeBrowse
		m.input.Blur()
		if value == "" {
			return m, nil
		}
		if _, ok := mutate.Add(m.db, m.store, model.KindFolder, value, "", m.addParentID, now); ok {
			m.rebuild()
			return m, m.persist()
		}
		return m, nil

	case inputAddTabName:
		m.mode = modeBrowse
		m.input.Blur()
		if value == "" {
			return m, nil
		}
		if it, ok := mutate.Add(m.db, m.store, model.KindTab, value, "", "", now); ok {
			m.db.Settings.ActiveTabID = it.ID
			m.cursor = 0
			m.scroll = 0
			m.rebuild()
			return m, m.persist()
		}
		return m, nil

	case inputRename:
		m.mode = modeBrowse
		m.input.Blur()
		if value == "" || !mutate.Rename(m.db, m.inputTarget, value, now) {
			return m, nil
		}
		m.rebuild()
		return m, m.persist()

	case inputColor, inputColorTree:
		m.mode = modeBrowse
		m.input.Blur()
		if mutate.ColorCascade(m.db, m.inputTarget, value, m.inputPurpose == inputColorTree, now) {
			m.rebuild()
			return m, m.persist()
		}
		return m, nil

	case inputArg:
		return m.submitArg(value)
	}

	m.mode = modeBrowse
	m.input.Blur()
	return m, nil
}

// startExec runs a snippet: straight to dispatch when it has no
// placeholders, otherwise into the sequential prompt flow.
func (m appModel) startExec(it model.Item) (tea.Model, tea.Cmd) {
	if m.db.Settings.ExecMode == model.ExecModeLocked {
		return m.withStatus("execution is locked (X to change mode)", true)
	}
	phs := args.Extract(it.Command)
	if len(phs) == 0 {
		return m.dispatchResolved(it.Command)
	}
	m.flow = &execFlow{item: it, placeholders: phs, values: map[int]string{}}
	return m.startInput(inputArg, "", phs[0].Describe())
}

func (m appModel) submitArg(value string) (tea.Model, tea.Cmd) {
	f := m.flow
	if f == nil {
		m.mode = modeBrowse
		return m, nil
	}
	f.values[f.placeholders[f.idx].ID] = value
	f.idx++
	if f.idx < len(f.placeholders) {
		return m.startInput(inputArg, "", f.placeholders[f.idx].Describe())
	}

	m.mode = modeBrowse
	m.input.Blur()
	m.flow = nil

	resolved, err := args.Resolve(context.Background(), f.item.Command, f.values,
		func(ph args.Placeholder, previous string) (string, error) {
			return f.values[ph.ID], nil
		})
	if err != nil {
		return m.withStatus("resolve failed: "+err.Error(), true)
	}
	return m.dispatchResolved(resolved)
}

func (m appModel) dispatchResolved(resolved string) (tea.Model, tea.Cmd) {
	execMode := m.db.Settings.ExecMode
	if execMode == "" {
		execMode = model.ExecModeTerminal
	}

	switch execMode {
	case model.ExecModeEditor:
		path, err := dispatch.WriteCommandFile(resolved)
		if err != nil {
			return m.withStatus("editor: "+err.Error(), true)
		}
		m.recordHistory(model.HistoryKindCommand, resolved)
		cmds := []tea.Cmd{
			m.persist(),
			tea.ExecProcess(dispatch.EditorCmd(path), func(err error) tea.Msg {
				return editorDoneMsg{err: err}
			}),
		}
		return m, tea.Batch(cmds...)

	default:
		d := dispatch.Dispatcher{Stdout: io.Discard}
		if err := d.Dispatch(resolved, model.ExecModeTerminal); err != nil {
			return m.withStatus("dispatch: "+err.Error(), true)
		}
		m.recordHistory(model.HistoryKindCommand, resolved)
		mm, cmd := m.withStatus("copied to clipboard", false)
		return mm, tea.Batch(cmd, mm.persist())
	}
}

func (m appModel) yank(it model.Item) (tea.Model, tea.Cmd) {
	if err := dispatch.CopyToClipboard(it.Command); err != nil {
		return m.withStatus("clipboard: "+err.Error(), true)
	}
	m.recordHistory(model.HistoryKindClipboard, it.Command)
	mm, cmd := m.withStatus("yanked raw command", false)
	return mm, tea.Batch(cmd, mm.persist())
}

func (m *appModel) recordHistory(kind model.HistoryKind, value string) {
	m.db.History = dispatch.Record(m.db.History, kind, value, m.db.Settings.HistoryLimit, time.Now())
}
