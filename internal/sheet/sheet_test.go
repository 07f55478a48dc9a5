package sheet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/abelbrown/geophone/internal/record"
	"github.com/google/go-cmp/cmp"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")

	columns := []string{"Numéro", "Nom", "Pays"}
	view := []record.EnrichedRecord{
		{ID: 0, Country: "France", Values: record.Row{"Numéro": "+33612345678", "Nom": "Dupont", "Pays": "France"}},
		{ID: 1, Country: record.CountryUnknown, Values: record.Row{"Numéro": "0612345678", "Nom": "Martin", "Pays": record.CountryUnknown}},
	}
	annotations := map[int]record.Annotation{0: record.Answered}

	if err := Write(path, columns, view, annotations); err != nil {
		t.Fatalf("Write: %v", err)
	}

	gotColumns, gotRows, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	wantColumns := []string{"Numéro", "Nom", "Pays", record.AnnotationColumn}
	if diff := cmp.Diff(wantColumns, gotColumns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	if len(gotRows) != len(view) {
		t.Fatalf("got %d rows, want %d", len(gotRows), len(view))
	}
	// Original column values must survive the trip, ignoring the appended
	// annotation column.
	for i, rec := range view {
		for _, col := range columns {
			if gotRows[i][col] != rec.Value(col) {
				t.Errorf("row %d column %q = %q, want %q", i, col, gotRows[i][col], rec.Value(col))
			}
		}
	}
}

func TestWriteResolvesAnnotations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")

	columns := []string{"Numéro"}
	view := []record.EnrichedRecord{
		{ID: 0, Values: record.Row{"Numéro": "a"}},
		{ID: 1, Values: record.Row{"Numéro": "b"}},
		{ID: 2, Values: record.Row{"Numéro": "c"}},
	}
	annotations := map[int]record.Annotation{
		0: record.Answered,
		1: record.NoAnswer,
	}

	if err := Write(path, columns, view, annotations); err != nil {
		t.Fatalf("Write: %v", err)
	}
	_, rows, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	want := []string{"Patient a pris l'appel", "Patient n'a pas pris l'appel", ""}
	for i, label := range want {
		if got := rows[i][record.AnnotationColumn]; got != label {
			t.Errorf("row %d annotation = %q, want %q", i, got, label)
		}
	}
}

func TestWritePreservesViewOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")

	columns := []string{"Nom"}
	view := []record.EnrichedRecord{
		{ID: 2, Values: record.Row{"Nom": "zz"}},
		{ID: 0, Values: record.Row{"Nom": "aa"}},
		{ID: 1, Values: record.Row{"Nom": "mm"}},
	}

	if err := Write(path, columns, view, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	_, rows, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	want := []string{"zz", "aa", "mm"}
	for i, name := range want {
		if rows[i]["Nom"] != name {
			t.Errorf("row %d = %q, want %q", i, rows[i]["Nom"], name)
		}
	}
}

func TestReadShortRowsGetEmptyCells(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.xlsx")

	columns := []string{"Numéro", "Nom"}
	view := []record.EnrichedRecord{
		{ID: 0, Values: record.Row{"Numéro": "+33612345678", "Nom": ""}},
	}
	if err := Write(path, columns, view, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}

	_, rows, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, ok := rows[0]["Nom"]; !ok {
		t.Error("short row should still carry an empty cell for every header column")
	}
}

func TestReadInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.xlsx")
	if err := os.WriteFile(path, []byte("definitely not a zip archive"), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := Read(path)
	if !errors.Is(err, ErrInvalidFile) {
		t.Errorf("Read(garbage) error = %v, want ErrInvalidFile", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, _, err := Read(filepath.Join(t.TempDir(), "nope.xlsx"))
	if !errors.Is(err, ErrInvalidFile) {
		t.Errorf("Read(missing) error = %v, want ErrInvalidFile", err)
	}
}
