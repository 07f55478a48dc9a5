// Package record defines the data model for enriched contact lists.
//
// Records are schema-less: a row is an ordered set of named cells whose
// column order is carried by the dataset, not the row. The only column the
// pipeline inspects by name is the phone-number column; everything else
// passes through untouched.
package record

// CountryUnknown is the sentinel country for numbers that could not be
// resolved. It is a real cell value, distinct from an absent cell.
const CountryUnknown = "Inconnu"

// CountryColumn is the name of the derived country column appended to the
// dataset during enrichment.
const CountryColumn = "Pays"

// AnnotationColumn is the name of the call-outcome column appended on export.
const AnnotationColumn = "Suite appel effectué"

// Row holds the cell values of a single spreadsheet row, keyed by column
// name. Cells absent from the source sheet are simply missing from the map.
type Row map[string]string

// Annotation is the user-assigned call outcome for a record.
type Annotation int

const (
	Unset Annotation = iota
	Answered
	NoAnswer
)

// String returns the stable storage form of the annotation.
func (a Annotation) String() string {
	switch a {
	case Answered:
		return "answered"
	case NoAnswer:
		return "no_answer"
	default:
		return "unset"
	}
}

// ParseAnnotation is the inverse of String. Unrecognized input maps to Unset.
func ParseAnnotation(s string) Annotation {
	switch s {
	case "answered":
		return Answered
	case "no_answer":
		return NoAnswer
	default:
		return Unset
	}
}

// ExportLabel returns the French display phrase written to the exported
// annotation column. Unset exports as an empty cell.
func (a Annotation) ExportLabel() string {
	switch a {
	case Answered:
		return "Patient a pris l'appel"
	case NoAnswer:
		return "Patient n'a pas pris l'appel"
	default:
		return ""
	}
}

// Toggle applies the click-to-toggle transition: selecting the annotation a
// record already carries clears it back to Unset, selecting anything else
// replaces the current value. Answered and NoAnswer are mutually exclusive
// as a consequence.
func Toggle(current, target Annotation) Annotation {
	if current == target {
		return Unset
	}
	return target
}

// EnrichedRecord is a source row plus the attributes derived during
// enrichment.
//
// ID is assigned in input order, 0-based and unique within a dataset. It
// never changes once assigned, no matter how the dataset is filtered or
// sorted, and is the sole key for annotation lookups.
type EnrichedRecord struct {
	ID      int
	Country string
	Values  Row
}

// Value returns the cell for the given column, or "" when the cell is
// absent. Absent and empty cells are indistinguishable downstream, which is
// exactly the sort/export semantics we want.
func (r EnrichedRecord) Value(column string) string {
	return r.Values[column]
}

// Stats are the aggregate identification counts for one enrichment pass
// over the full, unfiltered dataset. Identified+Unknown == Total always.
type Stats struct {
	Total      int
	Identified int
	Unknown    int
}

// Dataset is the source of truth produced by one enrichment pass. It is
// treated as immutable once built; derived views copy, never mutate.
type Dataset struct {
	Name    string
	Columns []string
	Records []EnrichedRecord
	Stats   Stats
}
