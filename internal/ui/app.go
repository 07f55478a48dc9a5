package ui

import (
	"github.com/abelbrown/geophone/internal/logging"
	"github.com/abelbrown/geophone/internal/projection"
	"github.com/abelbrown/geophone/internal/record"
	"github.com/abelbrown/geophone/internal/session"
	"github.com/abelbrown/geophone/internal/sheet"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loadErrMessage is the user-facing message for an undecodable file. It is
// deliberately non-technical; the real error goes to the log.
const loadErrMessage = "Erreur lors de la lecture du fichier. Assurez-vous qu'il s'agit d'un fichier Excel valide."

type mode int

const (
	modeTable mode = iota
	modeFilter
	modeOpen
)

// Model is the root Bubble Tea model. All session mutations happen here,
// on the update loop; commands only read files and report back.
type Model struct {
	session *session.Session
	keys    keyMap

	mode        mode
	spin        spinner.Model
	countryList list.Model
	pathInput   textinput.Model

	// view is the cached projection, re-derived after every mutation.
	view      []record.EnrichedRecord
	rowCursor int
	colCursor int
	scroll    int

	width   int
	height  int
	ready   bool
	loading bool

	errMsg string
	notice string

	// pendingPath is the file given on the command line, loaded by Init.
	pendingPath string
}

// New creates the root model. initialPath, when non-empty, is loaded as
// soon as the program starts.
func New(sess *session.Session, initialPath string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Filtrer par pays"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.Placeholder = "chemin du fichier .xlsx"
	ti.CharLimit = 512

	m := Model{
		session:     sess,
		keys:        defaultKeyMap(),
		spin:        sp,
		countryList: l,
		pathInput:   ti,
	}
	if initialPath != "" {
		m.loading = true
		m.pendingPath = initialPath
	}
	return m
}

// Init starts the spinner and the initial load, if any.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.pendingPath != "" {
		cmds = append(cmds, loadSheet(m.pendingPath))
	}
	return tea.Batch(cmds...)
}

// loadSheet decodes a spreadsheet off the update loop. Decoding is the
// single suspend point of the pipeline; the enrichment pass runs when the
// resulting message is handled.
func loadSheet(path string) tea.Cmd {
	return func() tea.Msg {
		columns, rows, err := sheet.Read(path)
		return SheetLoaded{Path: path, Columns: columns, Rows: rows, Err: err}
	}
}

// exportView writes a snapshotted view off the update loop.
func exportView(ex session.Export) tea.Cmd {
	return func() tea.Msg {
		return Exported{Path: ex.Path, Err: sheet.Write(ex.Path, ex.Columns, ex.Records, ex.Annotations)}
	}
}

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.countryList.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case SheetLoaded:
		return m.handleSheetLoaded(msg)

	case Exported:
		if msg.Err != nil {
			logging.Error("Export failed", "path", msg.Path, "error", msg.Err)
			m.errMsg = "Erreur lors de l'export du fichier."
			return m, nil
		}
		logging.Info("View exported", "path", msg.Path)
		m.notice = "Exporté : " + msg.Path
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case modeFilter:
			return m.updateFilter(msg)
		case modeOpen:
			return m.updateOpen(msg)
		default:
			return m.updateTable(msg)
		}
	}

	return m, nil
}

// handleSheetLoaded installs a decoded sheet. A decode failure leaves the
// previously loaded dataset untouched.
func (m Model) handleSheetLoaded(msg SheetLoaded) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.Err != nil {
		logging.Error("Failed to load spreadsheet", "path", msg.Path, "error", msg.Err)
		m.errMsg = loadErrMessage
		return m, nil
	}

	if err := m.session.Install(name(msg.Path), msg.Columns, msg.Rows); err != nil {
		logging.Error("Failed to install dataset", "path", msg.Path, "error", err)
		m.errMsg = loadErrMessage
		return m, nil
	}

	m.errMsg = ""
	m.notice = ""
	m.rowCursor = 0
	m.colCursor = 0
	m.scroll = 0
	m.refresh()
	return m, nil
}

// refresh re-derives the cached view and clamps the cursors to it.
func (m *Model) refresh() {
	m.view = m.session.View()
	if m.rowCursor >= len(m.view) {
		m.rowCursor = len(m.view) - 1
	}
	if m.rowCursor < 0 {
		m.rowCursor = 0
	}
	columns := m.session.Columns()
	if m.colCursor >= len(columns) {
		m.colCursor = 0
	}
	m.clampScroll()
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.errMsg != "" {
		m.errMsg = ""
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		if m.rowCursor < len(m.view)-1 {
			m.rowCursor++
			m.clampScroll()
		}

	case key.Matches(msg, m.keys.Up):
		if m.rowCursor > 0 {
			m.rowCursor--
			m.clampScroll()
		}

	case key.Matches(msg, m.keys.Left):
		if m.colCursor > 0 {
			m.colCursor--
		}

	case key.Matches(msg, m.keys.Right):
		if m.colCursor < len(m.session.Columns())-1 {
			m.colCursor++
		}

	case key.Matches(msg, m.keys.Sort):
		columns := m.session.Columns()
		if len(columns) > 0 {
			m.session.SortBy(columns[m.colCursor])
			m.refresh()
		}

	case key.Matches(msg, m.keys.Answered):
		m.toggleCursor(record.Answered)

	case key.Matches(msg, m.keys.NoAnswer):
		m.toggleCursor(record.NoAnswer)

	case key.Matches(msg, m.keys.More):
		if len(m.view) < m.session.FilteredCount() {
			m.session.ShowMore()
			m.refresh()
		}

	case key.Matches(msg, m.keys.Filter):
		if m.session.Loaded() {
			m.countryList.SetItems(m.countryItems())
			m.countryList.ResetSelected()
			m.mode = modeFilter
		}

	case key.Matches(msg, m.keys.Export):
		if ex, ok := m.session.Export(); ok {
			m.notice = ""
			return m, exportView(ex)
		}

	case key.Matches(msg, m.keys.Open):
		m.pathInput.SetValue("")
		m.pathInput.Focus()
		m.mode = modeOpen
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()
		m.view = nil
		m.rowCursor = 0
		m.colCursor = 0
		m.scroll = 0
		m.notice = ""
	}

	return m, nil
}

// toggleCursor toggles the annotation of the record under the cursor,
// addressed by its stable identity, never by position.
func (m *Model) toggleCursor(target record.Annotation) {
	if m.rowCursor < len(m.view) {
		id := m.view[m.rowCursor].ID
		got := m.session.Toggle(id, target)
		logging.Debug("Annotation toggled", "identity", id, "status", got.String())
	}
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeTable
		return m, nil
	case "enter":
		if item, ok := m.countryList.SelectedItem().(countryItem); ok {
			m.session.Filter(item.name)
			m.rowCursor = 0
			m.scroll = 0
			m.refresh()
		}
		m.mode = modeTable
		return m, nil
	}

	var cmd tea.Cmd
	m.countryList, cmd = m.countryList.Update(msg)
	return m, cmd
}

func (m Model) updateOpen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pathInput.Blur()
		m.mode = modeTable
		return m, nil
	case "enter":
		path := m.pathInput.Value()
		m.pathInput.Blur()
		m.mode = modeTable
		if path == "" {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spin.Tick, loadSheet(path))
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

// countryItems builds the filter list: "Tous" first, then the discovered
// countries with their row counts.
func (m Model) countryItems() []list.Item {
	counts := make(map[string]int)
	if ds := m.session.Dataset(); ds != nil {
		for _, rec := range ds.Records {
			counts[rec.Country]++
		}
	}

	items := []list.Item{countryItem{
		name:  projection.CountryAll,
		count: m.session.Stats().Total,
	}}
	for _, c := range m.session.Countries() {
		items = append(items, countryItem{name: c, count: counts[c]})
	}
	return items
}
