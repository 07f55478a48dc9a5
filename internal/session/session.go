// Package session owns the working state of one interactive session.
//
// The original tool kept this state in ambient UI variables; here it is an
// explicit object passed to the UI, and every mutation goes through it on
// the update loop. The enriched dataset is immutable once installed - the
// session swaps whole datasets, never edits one.
package session

import (
	"path/filepath"
	"strings"

	"github.com/abelbrown/geophone/internal/config"
	"github.com/abelbrown/geophone/internal/enrich"
	"github.com/abelbrown/geophone/internal/logging"
	"github.com/abelbrown/geophone/internal/projection"
	"github.com/abelbrown/geophone/internal/record"
	"github.com/abelbrown/geophone/internal/store"
)

// Session is the top-level controller state.
type Session struct {
	cfg     *config.Config
	engine  *enrich.Engine
	store   *store.Store
	proj    *projection.Projection
	dataset *record.Dataset
}

// New creates an empty session.
func New(cfg *config.Config, engine *enrich.Engine, st *store.Store) *Session {
	return &Session{
		cfg:    cfg,
		engine: engine,
		store:  st,
		proj:   projection.New(cfg.LocaleTag(), cfg.PageSize),
	}
}

// Loaded reports whether a dataset is installed.
func (s *Session) Loaded() bool {
	return s.dataset != nil
}

// Dataset returns the current dataset, nil when none is loaded.
func (s *Session) Dataset() *record.Dataset {
	return s.dataset
}

// Stats returns the aggregate identification stats of the full dataset.
func (s *Session) Stats() record.Stats {
	if s.dataset == nil {
		return record.Stats{}
	}
	return s.dataset.Stats
}

// Columns returns the dataset's column order, including the derived
// country column.
func (s *Session) Columns() []string {
	if s.dataset == nil {
		return nil
	}
	return s.dataset.Columns
}

// Install enriches decoded rows and atomically replaces the current
// dataset: annotations are cleared and the load recorded before the swap,
// then the projection is rebound, so no view ever mixes datasets. On error
// the previous dataset stays untouched.
func (s *Session) Install(name string, columns []string, rows []record.Row) error {
	ds := s.engine.Enrich(name, columns, rows)
	if err := s.store.BeginDataset(ds.Name, ds.Stats); err != nil {
		return err
	}
	s.dataset = ds
	s.proj.Rebind(ds.Columns)
	return nil
}

// Reset discards the dataset, its stats and every annotation.
func (s *Session) Reset() {
	s.dataset = nil
	s.proj = projection.New(s.cfg.LocaleTag(), s.cfg.PageSize)
	if err := s.store.Reset(); err != nil {
		logging.Error("Failed to clear annotations on reset", "error", err)
	}
	logging.Info("Session reset")
}

// View derives the visible records under the current filter, sort and
// window. It is always recomputed from the dataset.
func (s *Session) View() []record.EnrichedRecord {
	return s.proj.Apply(s.dataset)
}

// FilteredCount returns how many records the active filter keeps,
// regardless of the visible window.
func (s *Session) FilteredCount() int {
	if s.dataset == nil {
		return 0
	}
	if s.proj.Country == projection.CountryAll {
		return len(s.dataset.Records)
	}
	n := 0
	for _, rec := range s.dataset.Records {
		if rec.Country == s.proj.Country {
			n++
		}
	}
	return n
}

// Countries returns the selectable filter values for the current dataset.
func (s *Session) Countries() []string {
	return s.proj.Countries(s.dataset)
}

// Filter selects a country (or projection.CountryAll).
func (s *Session) Filter(country string) {
	s.proj.SetFilter(country)
}

// ActiveFilter returns the selected country filter.
func (s *Session) ActiveFilter() string {
	return s.proj.Country
}

// SortBy sorts the view by a column, flipping direction on repeat.
func (s *Session) SortBy(column string) {
	s.proj.SortBy(column)
}

// Sort returns the active sort, nil when unsorted.
func (s *Session) Sort() *projection.SortSpec {
	return s.proj.Sort
}

// ShowMore grows the visible window by one page, clamped to the filtered
// length.
func (s *Session) ShowMore() {
	s.proj.ShowMore(s.FilteredCount())
}

// Toggle flips a record's annotation and returns the new value.
func (s *Session) Toggle(identity int, target record.Annotation) record.Annotation {
	return s.store.Toggle(identity, target)
}

// Annotation returns a record's annotation, Unset when never set.
func (s *Session) Annotation(identity int) record.Annotation {
	return s.store.Get(identity)
}

// Loads returns the datasets loaded during this session.
func (s *Session) Loads() []store.Load {
	loads, err := s.store.Loads()
	if err != nil {
		logging.Error("Failed to read session loads", "error", err)
		return nil
	}
	return loads
}

// Export snapshots everything needed to serialize the current view, so the
// actual file write can happen off the update loop without racing later
// mutations. The snapshot carries every filtered record in the current
// sort order; the visible window limits rendering only, never the export.
// Returns false when no dataset is loaded.
func (s *Session) Export() (Export, bool) {
	if s.dataset == nil {
		return Export{}, false
	}
	return Export{
		Path:        filepath.Join(s.cfg.ExportDir, s.ExportName()),
		Columns:     append([]string(nil), s.dataset.Columns...),
		Records:     s.proj.ApplyAll(s.dataset),
		Annotations: s.store.Annotations(),
	}, true
}

// ExportName derives the output filename: a generic name when unfiltered,
// otherwise one derived from the selected country.
func (s *Session) ExportName() string {
	if s.proj.Country == projection.CountryAll {
		return "output_avec_pays.xlsx"
	}
	country := strings.ReplaceAll(strings.ToLower(s.proj.Country), " ", "_")
	return "contacts_" + country + ".xlsx"
}

// Export is a self-contained serialization request for the exporter.
type Export struct {
	Path        string
	Columns     []string
	Records     []record.EnrichedRecord
	Annotations map[int]record.Annotation
}
