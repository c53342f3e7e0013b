package tui

import (
	"strings"

	"snipbook-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m *appModel) bodyHeight() int {
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

func (m appModel) View() string {
	if m.width == 0 {
		return "loading…"
	}

	header := m.headerView()
	tabBar := m.tabBarView()

	var body string
	switch m.mode {
	case modeHelp:
		body = m.helpView(m.width)
	case modeSearch:
		body = m.searchView(m.width, m.bodyHeight())
	default:
		body = m.rowsView()
	}

	aux := m.auxLine()
	footer := m.footerView()

	return strings.Join([]string{header, tabBar, body, aux, footer}, "\n")
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Snipbook")
	badge := ""
	switch m.db.Settings.ExecMode {
	case model.ExecModeLocked:
		badge = lipgloss.NewStyle().Foreground(colorLockFg).Render("  locked")
	case model.ExecModeEditor:
		badge = styleMuted().Render("  editor mode")
	}
	grab := ""
	if m.mode == modeMove {
		grab = lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Render(" MOVE ")
		grab = "  " + grab
	}
	return title + badge + grab
}

func (m appModel) tabBarView() string {
	active := m.activeTabID()
	activeStyle := lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Padding(0, 1)
	idleStyle := lipgloss.NewStyle().Background(colorTabBg).Padding(0, 1)

	var parts []string
	for _, id := range m.tabBarIDs() {
		label := "Root"
		var color string
		if id != model.RootID {
			if it, ok := m.db.FindItem(id); ok {
				label = displayName(*it)
				color = it.Color
			}
		}
		st := idleStyle
		if id == active {
			st = activeStyle
		} else if color != "" {
			st = st.Foreground(lipgloss.Color(color))
		}
		parts = append(parts, st.Render(label))
	}
	bar := strings.Join(parts, " ")
	if w := xansi.StringWidth(bar); w > m.width {
		bar = xansi.Cut(bar, 0, m.width)
	}
	return bar
}

func (m appModel) rowsView() string {
	h := m.bodyHeight()
	if len(m.rows) == 0 {
		return styleMuted().Render("  empty; press a to add a snippet, ? for help")
	}

	end := m.scroll + h
	if end > len(m.rows) {
		end = len(m.rows)
	}
	lines := make([]string, 0, h)
	for i := m.scroll; i < end; i++ {
		lines = append(lines, m.renderRowLine(m.rows[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderRowLine(r row, focused bool) string {
	width := m.width
	indent := strings.Repeat("  ", r.depth)

	if r.item.Kind == model.KindSeparator {
		return m.renderSeparatorRow(r, indent, focused, width)
	}

	twisty := "  "
	if r.item.Kind == model.KindFolder {
		if r.item.Expanded {
			twisty = "▾ "
		} else {
			twisty = "▸ "
		}
	}

	nameStyle := lipgloss.NewStyle()
	if r.item.Color != "" {
		nameStyle = nameStyle.Foreground(lipgloss.Color(r.item.Color))
	}
	if r.item.Kind == model.KindFolder {
		nameStyle = nameStyle.Bold(true)
	}

	line := indent + twisty + nameStyle.Render(displayName(r.item))
	if r.item.Kind == model.KindSnippet && strings.TrimSpace(r.item.Command) != "" {
		line += styleMuted().Render("  $ " + firstLine(r.item.Command))
	}

	if m.mode == modeMove && r.item.ID == m.grabbedID {
		marker := lipgloss.NewStyle().Foreground(colorAccent).Render("◆ ")
		line = marker + line
	}

	return padRow(line, width, focused)
}

func (m appModel) renderSeparatorRow(r row, indent string, focused bool, width int) string {
	label := resolveIcons(r.item.Name)
	avail := width - xansi.StringWidth(indent)
	var rule string
	if label == "" {
		rule = strings.Repeat("─", maxInt(avail, 4))
	} else {
		rule = "── " + label + " " + strings.Repeat("─", maxInt(avail-len(label)-5, 2))
	}
	st := styleMuted()
	if r.item.Color != "" {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(r.item.Color))
	}
	return padRow(indent+st.Render(rule), width, focused)
}

// padRow fills the line to the full width so a focused row's background
// covers the whole terminal row, truncating ANSI-aware when too long.
func padRow(line string, width int, focused bool) string {
	cur := xansi.StringWidth(line)
	if cur > width {
		line = xansi.Cut(line, 0, width)
	} else if focused && cur < width {
		line += strings.Repeat(" ", width-cur)
	}
	if focused {
		return lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Render(xansi.Strip(line))
	}
	return line
}

func (m appModel) auxLine() string {
	switch m.mode {
	case modeInput:
		return "  " + m.input.View()
	case modeConfirmDelete:
		name := m.deleteID
		if it, ok := m.db.FindItem(m.deleteID); ok {
			name = displayName(*it)
		}
		return lipgloss.NewStyle().Foreground(colorDanger).
			Render("  delete " + name + "? children move up a level (y/n)")
	}
	if m.statusMsg != "" {
		st := styleMuted()
		if m.statusErr {
			st = lipgloss.NewStyle().Foreground(colorDanger)
		}
		return "  " + st.Render(m.statusMsg)
	}
	return ""
}

func (m appModel) footerView() string {
	var hint string
	switch m.mode {
	case modeMove:
		hint = "↑↓ swap  → nest  ← unnest  [ ] change tab  esc drop"
	case modeSearch:
		hint = "↑↓ select  enter jump  esc close"
	case modeInput:
		hint = "enter confirm  esc cancel"
	case modeHelp:
		hint = "any key to close"
	default:
		hint = "enter run  y yank  / search  m move  a add  d delete  ? help  q quit"
	}
	return styleMuted().Render(hint)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
