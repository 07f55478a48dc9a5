package config

import (
	"testing"

	"golang.org/x/text/language"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.PhoneColumn != "Numéro" {
		t.Errorf("PhoneColumn = %q, want Numéro", cfg.PhoneColumn)
	}
	if cfg.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", cfg.PageSize)
	}
	if cfg.Locale != "fr" {
		t.Errorf("Locale = %q, want fr", cfg.Locale)
	}
}

func TestLocaleTag(t *testing.T) {
	tests := []struct {
		locale   string
		expected language.Tag
	}{
		{"fr", language.French},
		{"de", language.German},
		{"not a locale !!", language.French},
		{"", language.French},
	}
	for _, tt := range tests {
		cfg := &Config{Locale: tt.locale}
		if got := cfg.LocaleTag(); got != tt.expected {
			t.Errorf("LocaleTag(%q) = %v, want %v", tt.locale, got, tt.expected)
		}
	}
}
