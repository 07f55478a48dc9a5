package session

import (
	"strings"
	"testing"

	"github.com/abelbrown/geophone/internal/config"
	"github.com/abelbrown/geophone/internal/enrich"
	"github.com/abelbrown/geophone/internal/projection"
	"github.com/abelbrown/geophone/internal/record"
	"github.com/abelbrown/geophone/internal/store"
)

type prefixResolver struct{}

func (prefixResolver) Resolve(raw string) string {
	switch {
	case strings.HasPrefix(raw, "+33"):
		return "France"
	case strings.HasPrefix(raw, "+32"):
		return "Belgique"
	default:
		return record.CountryUnknown
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	st, err := store.New()
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := config.Default()
	return New(cfg, enrich.New(prefixResolver{}, cfg.PhoneColumn), st)
}

func install(t *testing.T, s *Session, numbers ...string) {
	t.Helper()
	rows := make([]record.Row, len(numbers))
	for i, n := range numbers {
		rows[i] = record.Row{"Numéro": n}
	}
	if err := s.Install("contacts.xlsx", []string{"Numéro"}, rows); err != nil {
		t.Fatalf("Install: %v", err)
	}
}

func TestInstallAndStats(t *testing.T) {
	s := newTestSession(t)
	install(t, s, "+33612345678", "0612345678", "+32470123456")

	if !s.Loaded() {
		t.Fatal("session should be loaded")
	}
	st := s.Stats()
	if st.Total != 3 || st.Identified != 2 || st.Unknown != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestInstallReplacesWholesale(t *testing.T) {
	s := newTestSession(t)
	install(t, s, "+33612345678", "+33698765432")
	s.Toggle(1, record.Answered)
	s.Filter("France")
	s.SortBy("Numéro")

	install(t, s, "+32470123456")

	if got := s.Annotation(1); got != record.Unset {
		t.Errorf("annotation leaked across datasets: %v", got)
	}
	if s.ActiveFilter() != projection.CountryAll {
		t.Errorf("filter after replacement = %q, want all", s.ActiveFilter())
	}
	if s.Stats().Total != 1 {
		t.Errorf("stats not replaced: %+v", s.Stats())
	}
}

func TestResetDiscardsEverything(t *testing.T) {
	s := newTestSession(t)
	install(t, s, "+33612345678")
	s.Toggle(0, record.Answered)

	s.Reset()

	if s.Loaded() {
		t.Error("dataset should be gone after reset")
	}
	if s.View() != nil {
		t.Error("view should be empty after reset")
	}
	if got := s.Annotation(0); got != record.Unset {
		t.Errorf("annotation survived reset: %v", got)
	}
}

func TestFilterView(t *testing.T) {
	s := newTestSession(t)
	install(t, s, "+33612345678", "0612345678", "+33698765432")

	s.Filter("France")
	view := s.View()

	if len(view) != 2 {
		t.Fatalf("filtered view has %d rows, want 2", len(view))
	}
	if view[0].ID != 0 || view[1].ID != 2 {
		t.Errorf("filtered view IDs = %d,%d want 0,2", view[0].ID, view[1].ID)
	}
	if s.FilteredCount() != 2 {
		t.Errorf("FilteredCount = %d, want 2", s.FilteredCount())
	}
}

func TestAnnotationFollowsIdentityThroughSort(t *testing.T) {
	s := newTestSession(t)
	install(t, s, "+33612345678", "+32470123456", "0612345678")
	s.Toggle(0, record.Answered)

	// Sort descending by country: the annotated record moves position.
	s.SortBy("Pays")
	s.SortBy("Pays")

	ex, ok := s.Export()
	if !ok {
		t.Fatal("Export should succeed with a dataset loaded")
	}

	found := false
	for _, rec := range ex.Records {
		if rec.ID == 0 {
			found = true
			if ex.Annotations[rec.ID].ExportLabel() != "Patient a pris l'appel" {
				t.Errorf("identity 0 lost its annotation after sorting")
			}
		}
	}
	if !found {
		t.Fatal("identity 0 missing from exported view")
	}
}

func TestExportNamePolicy(t *testing.T) {
	s := newTestSession(t)
	install(t, s, "+33612345678")

	if got := s.ExportName(); got != "output_avec_pays.xlsx" {
		t.Errorf("unfiltered export name = %q", got)
	}

	s.Filter("France")
	if got := s.ExportName(); got != "contacts_france.xlsx" {
		t.Errorf("filtered export name = %q", got)
	}

	s.Filter("Corée du Sud")
	if got := s.ExportName(); got != "contacts_corée_du_sud.xlsx" {
		t.Errorf("multi-word export name = %q", got)
	}
}

func TestExportIncludesAllFilteredRows(t *testing.T) {
	s := newTestSession(t)
	numbers := make([]string, 120)
	for i := range numbers {
		numbers[i] = "+33612345678"
	}
	install(t, s, numbers...)

	if got := len(s.View()); got != 50 {
		t.Fatalf("rendered view = %d rows, want the initial window of 50", got)
	}

	ex, ok := s.Export()
	if !ok {
		t.Fatal("Export should succeed with a dataset loaded")
	}
	if len(ex.Records) != 120 {
		t.Fatalf("exported %d rows, want all 120 filtered rows", len(ex.Records))
	}
}

func TestExportHonorsFilterNotWindow(t *testing.T) {
	s := newTestSession(t)
	numbers := make([]string, 80)
	for i := range numbers {
		if i%4 == 0 {
			numbers[i] = "+32470123456"
		} else {
			numbers[i] = "+33612345678"
		}
	}
	install(t, s, numbers...)
	s.Filter("France")

	ex, ok := s.Export()
	if !ok {
		t.Fatal("Export should succeed with a dataset loaded")
	}
	if len(ex.Records) != 60 {
		t.Fatalf("exported %d rows, want the 60 French rows", len(ex.Records))
	}
	for _, rec := range ex.Records {
		if rec.Country != "France" {
			t.Fatalf("identity %d has country %q, want France", rec.ID, rec.Country)
		}
	}
}

func TestExportWithoutDataset(t *testing.T) {
	s := newTestSession(t)
	if _, ok := s.Export(); ok {
		t.Error("Export should report no dataset")
	}
}

func TestShowMoreClampsThroughSession(t *testing.T) {
	s := newTestSession(t)
	numbers := make([]string, 120)
	for i := range numbers {
		numbers[i] = "+33612345678"
	}
	install(t, s, numbers...)

	if got := len(s.View()); got != 50 {
		t.Fatalf("initial view = %d rows, want 50", got)
	}
	s.ShowMore()
	if got := len(s.View()); got != 100 {
		t.Fatalf("after show-more = %d rows, want 100", got)
	}
	s.ShowMore()
	if got := len(s.View()); got != 120 {
		t.Fatalf("after second show-more = %d rows, want 120", got)
	}
}

func TestLoadsBookkeeping(t *testing.T) {
	s := newTestSession(t)
	install(t, s, "+33612345678")
	install(t, s, "+32470123456", "0612345678")

	loads := s.Loads()
	if len(loads) != 2 {
		t.Fatalf("got %d loads, want 2", len(loads))
	}
	if loads[1].Stats.Total != 2 {
		t.Errorf("second load stats = %+v", loads[1].Stats)
	}
}
