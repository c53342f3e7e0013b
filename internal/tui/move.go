package tui

import (
	"time"

	"snipbook-cli/internal/model"
	"snipbook-cli/internal/mutate"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Move mode: the grabbed item travels with the cursor. Up/down swap it with
// its siblings, right nests it into the folder just above, left pulls it out
// next to its parent, [ and ] carry it to the neighboring tab. Every motion
// is a committed relocation; dropping just leaves the item where it is.

func (m appModel) updateMove(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Cancel), key.Matches(msg, k.Grab), key.Matches(msg, k.Exec):
		m.mode = modeBrowse
		m.grabbedID = ""
		m.revealSeq++
		return m, nil

	case key.Matches(msg, k.Up):
		return m.moveAmongSiblings(-1)
	case key.Matches(msg, k.Down):
		return m.moveAmongSiblings(1)
	case key.Matches(msg, k.Right):
		return m.nestGrabbed()
	case key.Matches(msg, k.Left):
		return m.unnestGrabbed()
	case key.Matches(msg, k.TabLeft):
		return m.carryToTab(-1)
	case key.Matches(msg, k.TabRight):
		return m.carryToTab(1)
	}
	return m, nil
}

func (m appModel) moveAmongSiblings(delta int) (tea.Model, tea.Cmd) {
	node, ok := m.db.FindItem(m.grabbedID)
	if !ok {
		return m.dropGrab()
	}
	sibs := m.db.ChildrenOf(node.ParentKey())
	at := -1
	for i, s := range sibs {
		if s.ID == node.ID {
			at = i
			break
		}
	}
	if at < 0 || at+delta < 0 || at+delta >= len(sibs) {
		return m, nil
	}
	pos := mutate.PositionAfter
	if delta < 0 {
		pos = mutate.PositionBefore
	}
	if !mutate.Reparent(m.db, node.ID, pos, sibs[at+delta].ID, time.Now()) {
		return m, nil
	}
	return m.afterMove()
}

// nestGrabbed drops the item into the folder directly above it.
func (m appModel) nestGrabbed() (tea.Model, tea.Cmd) {
	node, ok := m.db.FindItem(m.grabbedID)
	if !ok {
		return m.dropGrab()
	}
	sibs := m.db.ChildrenOf(node.ParentKey())
	at := -1
	for i, s := range sibs {
		if s.ID == node.ID {
			at = i
			break
		}
	}
	if at <= 0 {
		return m, nil
	}
	target := sibs[at-1]
	if target.Kind != model.KindFolder {
		return m, nil
	}
	if !mutate.Reparent(m.db, node.ID, mutate.PositionInside, target.ID, time.Now()) {
		return m, nil
	}
	return m.afterMove()
}

// unnestGrabbed pulls the item out of its folder, landing right after it.
func (m appModel) unnestGrabbed() (tea.Model, tea.Cmd) {
	node, ok := m.db.FindItem(m.grabbedID)
	if !ok {
		return m.dropGrab()
	}
	parent, ok := m.db.FindItem(node.ParentKey())
	if !ok || parent.Kind != model.KindFolder {
		return m, nil
	}
	if !mutate.Reparent(m.db, node.ID, mutate.PositionAfter, parent.ID, time.Now()) {
		return m, nil
	}
	return m.afterMove()
}

func (m appModel) carryToTab(delta int) (tea.Model, tea.Cmd) {
	node, ok := m.db.FindItem(m.grabbedID)
	if !ok {
		return m.dropGrab()
	}
	ids := m.tabBarIDs()
	cur := m.activeTabID()
	at := 0
	for i, id := range ids {
		if id == cur {
			at = i
			break
		}
	}
	if at+delta < 0 || at+delta >= len(ids) {
		return m, nil
	}
	dest := ids[at+delta]

	moved := false
	if dest == model.RootID {
		// The virtual root has no item to target; land before its first child.
		if roots := m.db.ChildrenOf(model.RootID); len(roots) > 0 {
			moved = mutate.Reparent(m.db, node.ID, mutate.PositionBefore, roots[0].ID, time.Now())
		}
	} else {
		moved = mutate.Reparent(m.db, node.ID, mutate.PositionInside, dest, time.Now())
	}
	if !moved {
		return m, nil
	}
	m.db.Settings.ActiveTabID = dest
	return m.afterMove()
}

func (m appModel) afterMove() (tea.Model, tea.Cmd) {
	m.rebuild()
	if i := rowIndexOf(m.rows, m.grabbedID); i >= 0 {
		m.cursor = i
		m.clampScroll()
	}
	m.revealSeq++
	cmds := []tea.Cmd{m.persist()}
	if c := m.scheduleReveal(); c != nil {
		cmds = append(cmds, c)
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) dropGrab() (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	m.grabbedID = ""
	m.revealSeq++
	m.rebuild()
	return m, nil
}

// scheduleReveal arms the auto-expand timer when the grabbed item is sitting
// just below a collapsed folder (its current nest target).
func (m *appModel) scheduleReveal() tea.Cmd {
	node, ok := m.db.FindItem(m.grabbedID)
	if !ok {
		return nil
	}
	sibs := m.db.ChildrenOf(node.ParentKey())
	for i, s := range sibs {
		if s.ID != node.ID {
			continue
		}
		if i == 0 {
			return nil
		}
		prev := sibs[i-1]
		if prev.Kind != model.KindFolder || prev.Expanded {
			return nil
		}
		seq := m.revealSeq
		id := prev.ID
		return tea.Tick(revealDelay, func(time.Time) tea.Msg {
			return revealTickMsg{folderID: id, seq: seq}
		})
	}
	return nil
}

func (m appModel) handleReveal(msg revealTickMsg) (tea.Model, tea.Cmd) {
	// A stale timer (anything moved since it was armed) is a no-op.
	if m.mode != modeMove || msg.seq != m.revealSeq {
		return m, nil
	}
	if !mutate.SetExpanded(m.db, msg.folderID, true) {
		return m, nil
	}
	m.rebuild()
	if i := rowIndexOf(m.rows, m.grabbedID); i >= 0 {
		m.cursor = i
		m.clampScroll()
	}
	return m, m.persist()
}
