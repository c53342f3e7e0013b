package tui

import (
	"strings"

	"snipbook-cli/internal/mutate"
	"snipbook-cli/internal/search"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.searchInput.Blur()
		return m, nil
	case "up", "ctrl+p":
		if m.matchCursor > 0 {
			m.matchCursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.matchCursor < len(m.matches)-1 {
			m.matchCursor++
		}
		return m, nil
	case "enter":
		if m.matchCursor < 0 || m.matchCursor >= len(m.matches) {
			return m, nil
		}
		return m.jumpToMatch(m.matches[m.matchCursor].Item.ID)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.matches = search.Search(m.db, m.searchInput.Value())
	m.matchCursor = 0
	return m, cmd
}

// jumpToMatch switches to the match's tab, expands every folder on the way
// down, and parks the cursor on the item.
func (m appModel) jumpToMatch(id string) (tea.Model, tea.Cmd) {
	t, ok := search.NavigationTarget(m.db, id)
	if !ok {
		return m, nil
	}
	m.db.Settings.ActiveTabID = t.TabID
	for _, fid := range t.FolderIDs {
		mutate.SetExpanded(m.db, fid, true)
	}
	m.mode = modeBrowse
	m.searchInput.Blur()
	m.rebuild()
	if i := rowIndexOf(m.rows, id); i >= 0 {
		m.cursor = i
		m.clampScroll()
	}
	return m, m.persist()
}

func (m appModel) searchView(width, height int) string {
	var b strings.Builder
	b.WriteString("/" + m.searchInput.View() + "\n")

	hlStyle := lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent)
	selStyle := lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg)

	max := height - 2
	if max < 1 {
		max = 1
	}
	for i, match := range m.matches {
		if i >= max {
			b.WriteString(styleMuted().Render("…and more; refine the query"))
			break
		}
		// Highlight against the raw name: the span indexes it directly.
		line := highlightSpan(match.Item.Name, match.Span, hlStyle)
		if path := search.PathOf(m.db, match.Item.ID); len(path) > 1 {
			crumbs := strings.Join(path[:len(path)-1], " › ")
			line += styleMuted().Render("  " + crumbs)
		}
		if w := xansi.StringWidth(line); w > width {
			line = xansi.Cut(line, 0, width)
		}
		if i == m.matchCursor {
			line = selStyle.Render("› ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	if len(m.matches) == 0 && strings.TrimSpace(m.searchInput.Value()) != "" {
		b.WriteString(styleMuted().Render("no matches"))
	}
	return b.String()
}

// highlightSpan styles the matched range of name. The span is byte-indexed
// into the raw name; out-of-range spans degrade to no highlight.
func highlightSpan(name string, sp search.Span, style lipgloss.Style) string {
	if sp.Len <= 0 || sp.Start < 0 || sp.Start+sp.Len > len(name) {
		return name
	}
	return name[:sp.Start] + style.Render(name[sp.Start:sp.Start+sp.Len]) + name[sp.Start+sp.Len:]
}
