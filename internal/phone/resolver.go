// Package phone infers the country of origin of a phone number.
//
// Resolution is purely offline: a number resolves only when it carries
// enough information to name exactly one country (an explicit +CC prefix)
// and is structurally valid under that country's numbering plan. There is
// deliberately no default region - a nationally formatted number like
// "0612345678" is valid in several plans at once, and guessing one would
// silently skew the identification stats.
package phone

import (
	"strings"

	"github.com/abelbrown/geophone/internal/record"
	"github.com/nyaruka/phonenumbers"
)

// Resolver maps raw phone-number cells to country display names.
// It is stateless, deterministic and safe for concurrent use.
type Resolver struct {
	localizer Localizer
}

// NewResolver creates a resolver that localizes country names through the
// given localizer.
func NewResolver(localizer Localizer) *Resolver {
	return &Resolver{localizer: localizer}
}

// Resolve returns the localized country name for a raw cell value, or
// record.CountryUnknown when the value is empty, unparseable, ambiguous or
// invalid for the country it claims. It never panics: every parse failure
// maps to the sentinel.
func (r *Resolver) Resolve(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return record.CountryUnknown
	}

	// No default region: only numbers in international form can resolve.
	num, err := phonenumbers.Parse(s, "")
	if err != nil {
		return record.CountryUnknown
	}

	region := phonenumbers.GetRegionCodeForNumber(num)
	if region == "" || region == "ZZ" {
		return record.CountryUnknown
	}
	if !phonenumbers.IsValidNumberForRegion(num, region) {
		return record.CountryUnknown
	}

	if name := r.localizer.Name(region); name != "" {
		return name
	}
	// A resolvable region the locale tables cannot name still counts as
	// identified; surface the bare code.
	return region
}
