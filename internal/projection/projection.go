// Package projection derives read-only views over an enriched dataset.
//
// A projection is the combination of a country filter, an optional sort and
// a growing visible window. Applying it never mutates the dataset - the
// dataset stays the single source of truth and every view is recomputed
// from it.
package projection

import (
	"sort"
	"strconv"

	"github.com/abelbrown/geophone/internal/record"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CountryAll is the distinguished filter value that bypasses filtering.
const CountryAll = "Tous"

// DefaultPageSize is the initial visible-window size, grown by the same
// amount on every show-more request.
const DefaultPageSize = 50

// SortSpec names the column the view is ordered by.
type SortSpec struct {
	Column     string
	Descending bool
}

// Projection holds the current derived-view parameters.
type Projection struct {
	Country string
	Sort    *SortSpec
	Visible int

	collator *collate.Collator
	pageSize int
}

// New creates a projection with no filter, no sort and the initial window.
// String comparison is collated for the given locale so accented values
// order correctly.
func New(locale language.Tag, pageSize int) *Projection {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Projection{
		Country:  CountryAll,
		Visible:  pageSize,
		collator: collate.New(locale),
		pageSize: pageSize,
	}
}

// Rebind resets the projection for a new dataset: filter back to all, window
// back to the initial size, and the sort dropped when its column no longer
// exists.
func (p *Projection) Rebind(columns []string) {
	p.Country = CountryAll
	p.Visible = p.pageSize
	if p.Sort != nil && !hasColumn(columns, p.Sort.Column) {
		p.Sort = nil
	}
}

// SetFilter selects a country (or CountryAll) and resets the window.
func (p *Projection) SetFilter(country string) {
	p.Country = country
	p.Visible = p.pageSize
}

// SortBy sorts by the given column. Selecting the current sort column flips
// the direction; selecting a new column resets to ascending.
func (p *Projection) SortBy(column string) {
	if p.Sort != nil && p.Sort.Column == column {
		p.Sort.Descending = !p.Sort.Descending
		return
	}
	p.Sort = &SortSpec{Column: column}
}

// ShowMore grows the visible window by one page, clamped to the filtered
// length so the counter itself never overshoots the data. The window never
// shrinks except through SetFilter or Rebind.
func (p *Projection) ShowMore(filtered int) {
	next := p.Visible + p.pageSize
	if next > filtered {
		next = filtered
	}
	if next > p.Visible {
		p.Visible = next
	}
}

// Apply derives the visible records: filter, stable sort, then a prefix of
// length min(Visible, filtered length). The result is a fresh slice; the
// dataset is never reordered.
func (p *Projection) Apply(ds *record.Dataset) []record.EnrichedRecord {
	view := p.ApplyAll(ds)
	if p.Visible < len(view) {
		view = view[:p.Visible]
	}
	return view
}

// ApplyAll derives the filtered and sorted records without the visible
// window. Export reads this: the window only limits what is rendered,
// never what leaves the program.
func (p *Projection) ApplyAll(ds *record.Dataset) []record.EnrichedRecord {
	if ds == nil {
		return nil
	}

	view := make([]record.EnrichedRecord, 0, len(ds.Records))
	for _, rec := range ds.Records {
		if p.Country == CountryAll || rec.Country == p.Country {
			view = append(view, rec)
		}
	}

	if p.Sort != nil {
		col, desc := p.Sort.Column, p.Sort.Descending
		sort.SliceStable(view, func(i, j int) bool {
			c := p.compare(view[i].Value(col), view[j].Value(col))
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	return view
}

// Countries returns the distinct countries of the dataset in collated
// order, excluding the unknown sentinel. Rows carrying the sentinel are
// still reachable under CountryAll.
func (p *Projection) Countries(ds *record.Dataset) []string {
	if ds == nil {
		return nil
	}
	seen := make(map[string]bool)
	var countries []string
	for _, rec := range ds.Records {
		if rec.Country == "" || rec.Country == record.CountryUnknown {
			continue
		}
		if !seen[rec.Country] {
			seen[rec.Country] = true
			countries = append(countries, rec.Country)
		}
	}
	sort.Slice(countries, func(i, j int) bool {
		return p.collator.CompareString(countries[i], countries[j]) < 0
	})
	return countries
}

// compare orders two cell values: numerically when both parse as numbers,
// otherwise by locale-aware collation. Absent cells arrive as "" and sort
// first ascending.
func (p *Projection) compare(a, b string) int {
	if a != "" && b != "" {
		af, aerr := strconv.ParseFloat(a, 64)
		bf, berr := strconv.ParseFloat(b, 64)
		if aerr == nil && berr == nil {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	return p.collator.CompareString(a, b)
}

func hasColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
