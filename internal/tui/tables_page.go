// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dndtiles/dndtiles/choice"
	"github.com/dndtiles/dndtiles/internal/tables"
)

// tableItem adapts a tables.Table to the bubbles list.
type tableItem struct {
	table tables.Table
}

func (i tableItem) Title() string { return i.table.Qualified() }

func (i tableItem) Description() string {
	kind := "uniform"
	if i.table.Set.Weighted() {
		kind = "weighted"
	}
	return fmt.Sprintf("%s, %d options, %s", kind, len(i.table.Set.Options()), i.table.Origin)
}

func (i tableItem) FilterValue() string { return i.table.Qualified() }

// rollEntry is one line of the session history.
type rollEntry struct {
	table string
	value string
	err   string
}

// tablesPage is the roll view: a filterable table list next to the
// history of everything rolled this session.
type tablesPage struct {
	list    list.Model
	history viewport.Model
	styles  Styles

	seed   int64
	rng    *rand.Rand
	unique bool
	rolls  []rollEntry
	drawn  map[string][]string

	width  int
	height int
}

func newTablesPage(view *tables.View, styles Styles, seed int64) tablesPage {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)

	p := tablesPage{
		list:    l,
		history: viewport.New(0, 0),
		styles:  styles,
	}
	p.reseed(seed)
	p.UpdateContent(view)
	return p
}

// UpdateContent replaces the listed tables, keeping the roll history.
func (p *tablesPage) UpdateContent(view *tables.View) {
	all := view.All()
	items := make([]list.Item, 0, len(all))
	for _, t := range all {
		items = append(items, tableItem{table: t})
	}
	p.list.SetItems(items)
	p.list.Title = fmt.Sprintf("Tables (%d)", len(items))
}

func (p *tablesPage) SetSize(width, height int) {
	p.width = width
	p.height = height

	listWidth := width / 2
	p.list.SetSize(listWidth, height)
	p.history.Width = max(width-listWidth-4, 10)
	p.history.Height = max(height-3, 1)
	p.renderHistory()
}

func (p tablesPage) Update(msg tea.Msg) (tablesPage, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && !p.filtering() {
		switch key.String() {
		case "enter", "r":
			return p.roll()
		case "u":
			p.unique = !p.unique
			state := "off"
			if p.unique {
				state = "on"
			}
			return p, p.list.NewStatusMessage("unique draws " + state)
		case "s":
			p.reseed(0)
			return p, p.list.NewStatusMessage(fmt.Sprintf("seed %d", p.seed))
		}
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p tablesPage) View() string {
	status := p.styles.Muted.Render("Rolls") + "  " +
		p.styles.Seed.Render(fmt.Sprintf("seed %d", p.seed))
	if p.unique {
		status += "  " + p.styles.Seed.Render("unique")
	}

	pane := lipgloss.JoinVertical(lipgloss.Left, status, p.history.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, p.list.View(), p.styles.Pane.Render(pane))
}

func (p tablesPage) filtering() bool {
	return p.list.FilterState() == list.Filtering
}

// roll draws from the selected table. With unique draws on, values
// already rolled for that table this session are excluded.
func (p tablesPage) roll() (tablesPage, tea.Cmd) {
	item, ok := p.list.SelectedItem().(tableItem)
	if !ok {
		return p, nil
	}

	name := item.table.Qualified()
	var exclude []string
	if p.unique {
		exclude = p.drawn[name]
	}

	value, err := item.table.Set.Draw(p.rng, exclude)
	if err != nil {
		p.rolls = append(p.rolls, rollEntry{table: name, err: err.Error()})
		p.renderHistory()
		return p, p.list.NewStatusMessage(fmt.Sprintf("%s: pool exhausted", name))
	}

	p.drawn[name] = append(p.drawn[name], value)
	p.rolls = append(p.rolls, rollEntry{table: name, value: value})
	p.renderHistory()
	return p, nil
}

// reseed restarts the session stream. Seed 0 picks a fresh random seed.
func (p *tablesPage) reseed(seed int64) {
	p.seed = choice.ResolveSeed(seed)
	p.rng = choice.NewRand(p.seed)
	p.rolls = nil
	p.drawn = make(map[string][]string)
	p.renderHistory()
}

func (p *tablesPage) renderHistory() {
	if len(p.rolls) == 0 {
		p.history.SetContent(p.styles.Muted.Render("press enter to roll the selected table"))
		return
	}

	var b strings.Builder
	for i, r := range p.rolls {
		fmt.Fprintf(&b, "%3d  ", i+1)
		if r.err != "" {
			b.WriteString(p.styles.Error.Render(r.err))
		} else {
			b.WriteString(p.styles.Value.Render(r.value))
		}
		b.WriteString("  ")
		b.WriteString(p.styles.Muted.Render(r.table))
		b.WriteByte('\n')
	}
	p.history.SetContent(b.String())
	p.history.GotoBottom()
}
