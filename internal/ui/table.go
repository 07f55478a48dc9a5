package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/abelbrown/geophone/internal/projection"
	"github.com/abelbrown/geophone/internal/record"
	"github.com/charmbracelet/lipgloss"
)

const (
	cellWidth    = 18
	markColWidth = 3
	chromeLines  = 6 // title + stats + header + footer lines around the table body
)

// countryItem is a filter choice in the country list.
type countryItem struct {
	name  string
	count int
}

func (c countryItem) Title() string {
	if c.name == projection.CountryAll {
		return "Tous les pays"
	}
	return c.name
}

func (c countryItem) Description() string {
	return fmt.Sprintf("%d lignes", c.count)
}

func (c countryItem) FilterValue() string { return c.name }

// name returns the display name of a loaded file.
func name(path string) string {
	return filepath.Base(path)
}

// View renders the whole program.
func (m Model) View() string {
	if !m.ready {
		return "Chargement..."
	}

	switch m.mode {
	case modeFilter:
		return m.countryList.View()
	case modeOpen:
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("geophone"),
			"",
			"Fichier à ouvrir :",
			m.pathInput.View(),
			"",
			statusTextStyle.Render("entrée pour charger · échap pour annuler"),
		)
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	if m.loading {
		b.WriteString(m.spin.View() + " Traitement du fichier en cours...\n")
	} else if !m.session.Loaded() {
		b.WriteString(statusTextStyle.Render("Aucun fichier chargé. Appuyez sur ") +
			statusKeyStyle.Render("o") +
			statusTextStyle.Render(" pour ouvrir un fichier Excel.") + "\n")
	} else {
		b.WriteString(m.tableView())
	}

	b.WriteString("\n")
	b.WriteString(m.statusView())
	return b.String()
}

func (m Model) headerView() string {
	title := titleStyle.Render("geophone")
	if ds := m.session.Dataset(); ds != nil {
		stats := m.session.Stats()
		line := fmt.Sprintf("%s · Total: %d · Identifiés: %d · Inconnus: %d",
			ds.Name, stats.Total, stats.Identified, stats.Unknown)
		if m.session.ActiveFilter() != projection.CountryAll {
			line += " · Filtre: " + m.session.ActiveFilter()
		}
		return title + "  " + statusTextStyle.Render(line)
	}
	return title
}

// tableView renders the visible window of the current view, keeping the
// row cursor on screen.
func (m Model) tableView() string {
	columns := m.session.Columns()
	var b strings.Builder

	// Header row with the sort indicator on the active column.
	cells := make([]string, 0, len(columns)+1)
	cells = append(cells, strings.Repeat(" ", markColWidth))
	sortSpec := m.session.Sort()
	for i, col := range columns {
		label := truncate(col, cellWidth-2)
		if sortSpec != nil && sortSpec.Column == col {
			if sortSpec.Descending {
				label += " ▼"
			} else {
				label += " ▲"
			}
		}
		style := headerCellStyle
		if i == m.colCursor {
			style = headerSelectedStyle
		}
		cells = append(cells, style.Render(pad(label, cellWidth)))
	}
	b.WriteString(strings.Join(cells, " "))
	b.WriteString("\n")

	rows := m.visibleRows()
	for i := m.scroll; i < m.scroll+rows && i < len(m.view); i++ {
		b.WriteString(m.rowView(columns, i))
		b.WriteString("\n")
	}

	shown := len(m.view)
	total := m.session.FilteredCount()
	line := fmt.Sprintf("Affichage des %d premières lignes sur %d", shown, total)
	if shown < total {
		line += " · " + statusKeyStyle.Render("m") + " pour afficher plus"
	}
	b.WriteString(statusTextStyle.Render(line))
	b.WriteString("\n")
	return b.String()
}

func (m Model) rowView(columns []string, i int) string {
	rec := m.view[i]

	mark := "  "
	switch m.session.Annotation(rec.ID) {
	case record.Answered:
		mark = answeredMarkStyle.Render("✓ ")
	case record.NoAnswer:
		mark = noAnswerMarkStyle.Render("✗ ")
	}

	cells := make([]string, 0, len(columns)+1)
	cells = append(cells, pad(mark, markColWidth))
	for _, col := range columns {
		value := pad(truncate(rec.Value(col), cellWidth), cellWidth)
		if col == record.CountryColumn && i != m.rowCursor {
			if rec.Country == record.CountryUnknown {
				value = unknownCellStyle.Render(value)
			} else {
				value = identifiedCellStyle.Render(value)
			}
		}
		cells = append(cells, value)
	}

	line := strings.Join(cells, " ")
	if i == m.rowCursor {
		return selectedRowStyle.Render(line)
	}
	return line
}

func (m Model) statusView() string {
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg)
	}
	if m.notice != "" {
		return noticeStyle.Render(m.notice)
	}

	hints := []struct{ k, h string }{
		{"o", "ouvrir"},
		{"f", "filtrer"},
		{"s", "trier"},
		{"a/n", "appel"},
		{"m", "plus"},
		{"e", "exporter"},
		{"r", "réinit."},
		{"q", "quitter"},
	}
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = statusKeyStyle.Render(h.k) + " " + statusTextStyle.Render(h.h)
	}
	return statusBarStyle.Render(strings.Join(parts, " · "))
}

// visibleRows is how many table body rows fit in the terminal.
func (m Model) visibleRows() int {
	rows := m.height - chromeLines
	if rows < 1 {
		rows = 1
	}
	return rows
}

// clampScroll keeps the row cursor inside the rendered window.
func (m *Model) clampScroll() {
	rows := m.visibleRows()
	if m.rowCursor < m.scroll {
		m.scroll = m.rowCursor
	}
	if m.rowCursor >= m.scroll+rows {
		m.scroll = m.rowCursor - rows + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}

func pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
