// Package prefs encodes and decodes the comma-joined preference lists
// stored on the user row. An empty list means "no filter", not "match
// nothing".
package prefs

import (
	"strconv"
	"strings"
)

// DecodeCountries splits a stored country preference string into its
// trimmed, non-empty entries.
func DecodeCountries(stored string) []string {
	countries := []string{}
	for _, part := range strings.Split(stored, ",") {
		if part = strings.TrimSpace(part); part != "" {
			countries = append(countries, part)
		}
	}
	return countries
}

// DecodeCategoryIDs splits a stored category preference string into
// category ids. Tokens that do not parse as integers are silently
// dropped rather than failing the whole resolution.
func DecodeCategoryIDs(stored string) []uint {
	ids := []uint{}
	for _, part := range strings.Split(stored, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

// EncodeCountries joins country names for storage, dropping empties.
func EncodeCountries(countries []string) string {
	kept := make([]string, 0, len(countries))
	for _, country := range countries {
		if country = strings.TrimSpace(country); country != "" {
			kept = append(kept, country)
		}
	}
	return strings.Join(kept, ",")
}

// EncodeCategoryIDs joins category ids for storage.
func EncodeCategoryIDs(ids []uint) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatUint(uint64(id), 10))
	}
	return strings.Join(parts, ",")
}
