// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dndtiles/dndtiles/internal/tables"
)

type page int

const (
	pageTables page = iota
	pagePacks
)

// reloadMsg reports a change under the watched packs directory.
type reloadMsg struct{}

// contentMsg carries freshly loaded browser content.
type contentMsg struct {
	view  *tables.View
	packs []PackInfo
	err   error
}

// Model is the root bubbletea model: a two page browser over the
// tables and packs visible to the current workspace.
type Model struct {
	page   page
	tables tablesPage
	packs  packsPage
	styles Styles

	load    func() (*tables.View, []PackInfo, error)
	changes <-chan struct{}
	lastErr string

	width  int
	height int
}

func newModel(view *tables.View, packs []PackInfo, opts Options, seed int64) Model {
	styles := DefaultStyles()
	return Model{
		tables: newTablesPage(view, styles, seed),
		packs:  newPacksPage(packs, styles, opts.Theme),
		styles: styles,
	}
}

func (m Model) Init() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	return waitForChange(m.changes)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		filtering := m.page == pageTables && m.tables.filtering()
		if !filtering {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "tab":
				if m.page == pageTables {
					m.page = pagePacks
				} else {
					m.page = pageTables
				}
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		body := max(msg.Height-4, 5)
		m.tables.SetSize(msg.Width, body)
		m.packs.SetSize(msg.Width, body)
		return m, nil

	case reloadMsg:
		return m, tea.Batch(m.loadCmd(), waitForChange(m.changes))

	case contentMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.lastErr = ""
		m.tables.UpdateContent(msg.view)
		m.packs.UpdateContent(msg.packs)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.page {
	case pageTables:
		m.tables, cmd = m.tables.Update(msg)
	case pagePacks:
		m.packs, cmd = m.packs.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	tabs := []string{
		m.styles.Tab.Render("Tables"),
		m.styles.Tab.Render("Packs"),
	}
	if m.page == pageTables {
		tabs[0] = m.styles.ActiveTab.Render("Tables")
	} else {
		tabs[1] = m.styles.ActiveTab.Render("Packs")
	}
	header := m.styles.Header.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))

	var body string
	switch m.page {
	case pageTables:
		body = m.tables.View()
	case pagePacks:
		body = m.packs.View()
	}

	help := "tab: switch • enter: roll • r: re-roll • u: unique • s: re-seed • /: filter • q: quit"
	if m.page == pagePacks {
		help = "tab: switch • enter: readme • esc: back • q: quit"
	}
	footer := m.styles.Help.Render(help)
	if m.lastErr != "" {
		footer = m.styles.Error.Render("reload failed: "+m.lastErr) + "\n" + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// loadCmd reloads content off the update loop.
func (m Model) loadCmd() tea.Cmd {
	load := m.load
	if load == nil {
		return nil
	}
	return func() tea.Msg {
		view, packs, err := load()
		return contentMsg{view: view, packs: packs, err: err}
	}
}

// waitForChange blocks until the watcher signals, then asks for a
// reload. A closed channel ends the cycle.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return reloadMsg{}
	}
}
