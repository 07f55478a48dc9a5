package phone

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Localizer turns an ISO 3166-1 region code into a display name in one
// target locale. Keeping this behind an interface keeps the resolver's core
// logic locale-agnostic and testable without CLDR data.
type Localizer interface {
	Name(region string) string
}

// DisplayLocalizer localizes region codes with the CLDR display-name tables
// from golang.org/x/text.
type DisplayLocalizer struct {
	namer display.Namer
}

// NewLocalizer creates a localizer for the given locale, e.g. language.French.
func NewLocalizer(locale language.Tag) *DisplayLocalizer {
	return &DisplayLocalizer{namer: display.Regions(locale)}
}

// Name returns the localized region name, or "" when the code is not a
// region the tables know about. Callers decide the fallback.
func (l *DisplayLocalizer) Name(region string) string {
	r, err := language.ParseRegion(region)
	if err != nil {
		return ""
	}
	return l.namer.Name(r)
}
