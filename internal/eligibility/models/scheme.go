package models

import (
	"maps"
	"slices"
)

// DefaultSchemeName is used when extracted data carries no usable name.
const DefaultSchemeName = "Unknown Scheme"

// Criteria maps canonical keys to typed values.
type Criteria map[string]Value

// Keys returns the criterion keys in sorted order.
func (c Criteria) Keys() []string {
	return slices.Sorted(maps.Keys(c))
}

// Scheme is a normalized assistance program. Treat as immutable once built.
type Scheme struct {
	Name     string   `json:"scheme_name"`
	Benefits string   `json:"benefits"`
	Criteria Criteria `json:"criteria"`
}
