// Package enrich turns raw spreadsheet rows into an enriched dataset.
//
// Enrichment is one synchronous pass: each row gets a stable identity equal
// to its input index, a derived country from the phone resolver, and the
// aggregate identification stats are accumulated alongside. A row that
// cannot be resolved never aborts the batch - it only counts as unknown.
package enrich

import (
	"github.com/abelbrown/geophone/internal/logging"
	"github.com/abelbrown/geophone/internal/record"
)

// Resolver infers a country display name from a raw phone cell, returning
// record.CountryUnknown when no single country can be determined.
type Resolver interface {
	Resolve(raw string) string
}

// Engine maps raw rows through the resolver.
type Engine struct {
	resolver    Resolver
	phoneColumn string
}

// New creates an engine reading phone numbers from the named column.
func New(resolver Resolver, phoneColumn string) *Engine {
	return &Engine{resolver: resolver, phoneColumn: phoneColumn}
}

// PhoneColumn returns the configured phone-number column name.
func (e *Engine) PhoneColumn() string {
	return e.phoneColumn
}

// Enrich builds a dataset from the decoded sheet.
//
// Output ordering matches input ordering exactly; record IDs are the
// contiguous set 0..N-1 in input order. A missing phone column is not an
// error: every row simply resolves to the unknown sentinel (logged once).
func (e *Engine) Enrich(name string, columns []string, rows []record.Row) *record.Dataset {
	if !contains(columns, e.phoneColumn) {
		logging.Warn("Phone column absent, all rows will be unresolved",
			"column", e.phoneColumn, "file", name)
	}

	ds := &record.Dataset{
		Name:    name,
		Columns: append([]string(nil), columns...),
		Records: make([]record.EnrichedRecord, 0, len(rows)),
	}
	if !contains(ds.Columns, record.CountryColumn) {
		ds.Columns = append(ds.Columns, record.CountryColumn)
	}

	for i, row := range rows {
		country := e.resolver.Resolve(row[e.phoneColumn])
		if country == record.CountryUnknown {
			ds.Stats.Unknown++
		} else {
			ds.Stats.Identified++
		}

		values := make(record.Row, len(row)+1)
		for k, v := range row {
			values[k] = v
		}
		// The country lives in a regular cell so filtering, sorting and
		// export treat it like any other column.
		values[record.CountryColumn] = country

		ds.Records = append(ds.Records, record.EnrichedRecord{
			ID:      i,
			Country: country,
			Values:  values,
		})
	}
	ds.Stats.Total = len(rows)

	logging.Info("Dataset enriched",
		"file", name,
		"total", ds.Stats.Total,
		"identified", ds.Stats.Identified,
		"unknown", ds.Stats.Unknown)

	return ds
}

func contains(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
