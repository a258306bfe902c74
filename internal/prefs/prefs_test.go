package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeCountries(t *testing.T) {
	assert.Equal(t, []string{"United States", "Canada"}, DecodeCountries("United States, Canada"))
	assert.Equal(t, []string{"India"}, DecodeCountries(" India ,, "))
	assert.Empty(t, DecodeCountries(""))
	assert.Empty(t, DecodeCountries(" , ,"))
}

func TestDecodeCategoryIDs(t *testing.T) {
	assert.Equal(t, []uint{1, 4, 7}, DecodeCategoryIDs("1, 4,7"))
	assert.Empty(t, DecodeCategoryIDs(""))
}

func TestDecodeCategoryIDs_DropsMalformedTokens(t *testing.T) {
	// Non-numeric entries are skipped, not an error.
	assert.Equal(t, []uint{2, 5}, DecodeCategoryIDs("2,beauty,5,-1"))
	assert.Empty(t, DecodeCategoryIDs("abc,def"))
}

func TestEncodeRoundTrip(t *testing.T) {
	countries := []string{"United States", "South Africa"}
	assert.Equal(t, countries, DecodeCountries(EncodeCountries(countries)))

	ids := []uint{3, 1, 6}
	assert.Equal(t, ids, DecodeCategoryIDs(EncodeCategoryIDs(ids)))

	assert.Equal(t, "", EncodeCountries(nil))
	assert.Equal(t, "", EncodeCategoryIDs(nil))
	assert.Equal(t, "A,B", EncodeCountries([]string{" A", "", "B "}))
}
