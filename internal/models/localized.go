package models

import (
	"encoding/json"
	"fmt"
)

// LocalizedText carries a display name that the store serves either as a plain
// string or as an {en, ar} object. Normalisation happens here, at the decode
// boundary; business logic never inspects the wire shape.
type LocalizedText struct {
	En string `json:"en"`
	Ar string `json:"ar,omitempty"`
}

// Plain reports whether the value carries no Arabic variant.
func (t LocalizedText) Plain() bool {
	return t.Ar == ""
}

// In returns the text for the requested language, falling back to English.
func (t LocalizedText) In(lang string) string {
	if lang == "ar" && t.Ar != "" {
		return t.Ar
	}
	return t.En
}

// String implements fmt.Stringer using the English variant.
func (t LocalizedText) String() string {
	return t.En
}

// UnmarshalJSON accepts both the legacy plain-string form and the bilingual
// object form.
func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		t.En = plain
		t.Ar = ""
		return nil
	}

	var bilingual struct {
		En string `json:"en"`
		Ar string `json:"ar"`
	}
	if err := json.Unmarshal(data, &bilingual); err != nil {
		return fmt.Errorf("localized text: expected string or {en,ar} object: %w", err)
	}
	t.En = bilingual.En
	t.Ar = bilingual.Ar
	return nil
}

// MarshalJSON emits the plain form when only English is present, preserving
// round-trips with legacy records.
func (t LocalizedText) MarshalJSON() ([]byte, error) {
	if t.Plain() {
		return json.Marshal(t.En)
	}
	return json.Marshal(struct {
		En string `json:"en"`
		Ar string `json:"ar"`
	}{En: t.En, Ar: t.Ar})
}

// NewLocalizedText builds a bilingual value from its parts.
func NewLocalizedText(en, ar string) LocalizedText {
	return LocalizedText{En: en, Ar: ar}
}
