// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dndtiles/dndtiles/internal/term"
)

// PackInfo is one row of the packs page.
type PackInfo struct {
	Name    string
	Version string
	Source  string
	Origin  string
	Tables  int
	Readme  string
}

// packsPage lists the visible packs and shows a rendered README for
// the selected one.
type packsPage struct {
	table  table.Model
	readme viewport.Model
	styles Styles
	theme  string

	rows    []PackInfo
	showing bool

	width  int
	height int
}

func newPacksPage(rows []PackInfo, styles Styles, theme string) packsPage {
	columns := []table.Column{
		{Title: "NAME", Width: 24},
		{Title: "VERSION", Width: 12},
		{Title: "TABLES", Width: 8},
		{Title: "ORIGIN", Width: 10},
		{Title: "SOURCE", Width: 16},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	p := packsPage{
		table:  t,
		readme: viewport.New(0, 0),
		styles: styles,
		theme:  theme,
	}
	p.UpdateContent(rows)
	return p
}

// UpdateContent replaces the listed packs.
func (p *packsPage) UpdateContent(rows []PackInfo) {
	p.rows = rows

	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		source := r.Source
		if source == "" {
			source = "-"
		}
		tableRows = append(tableRows, table.Row{
			r.Name, r.Version, strconv.Itoa(r.Tables), r.Origin, source,
		})
	}
	p.table.SetRows(tableRows)
	if p.table.Cursor() >= len(rows) {
		p.table.SetCursor(0)
	}
}

func (p *packsPage) SetSize(width, height int) {
	p.width = width
	p.height = height

	p.table.SetWidth(max(width-2, 20))
	p.table.SetHeight(max(height-1, 3))
	p.readme.Width = max(width-4, 20)
	p.readme.Height = max(height-2, 3)
}

func (p packsPage) Update(msg tea.Msg) (packsPage, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if !p.showing {
				p.openReadme()
				return p, nil
			}
		case "esc":
			if p.showing {
				p.showing = false
				return p, nil
			}
		}
	}

	var cmd tea.Cmd
	if p.showing {
		p.readme, cmd = p.readme.Update(msg)
	} else {
		p.table, cmd = p.table.Update(msg)
	}
	return p, cmd
}

func (p packsPage) View() string {
	if p.showing {
		return p.styles.Pane.Render(p.readme.View())
	}
	if len(p.rows) == 0 {
		return p.styles.Muted.Render("no packs installed")
	}
	return p.table.View()
}

func (p *packsPage) openReadme() {
	cursor := p.table.Cursor()
	if cursor < 0 || cursor >= len(p.rows) {
		return
	}

	row := p.rows[cursor]
	content := row.Readme
	if strings.TrimSpace(content) == "" {
		content = p.styles.Muted.Render(fmt.Sprintf("%s ships no README", row.Name))
	} else {
		width := p.readme.Width
		if width <= 0 {
			width = 80
		}
		content = term.RenderMarkdown(content, p.theme, width)
	}

	p.readme.SetContent(content)
	p.readme.GotoTop()
	p.showing = true
}
