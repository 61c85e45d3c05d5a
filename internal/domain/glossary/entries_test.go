package glossary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/translate-mock/internal/utils/platformerrors"
)

func TestParseTSV(t *testing.T) {
	entries, err := ParseEntries(FormatTSV, "artist\tMaler\n\n  prize\tPreis  \n", "en", "de")
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"artist", "Maler"}, {"prize", "Preis"}}, entries)
}

func TestParseTSVErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		detail string
	}{
		{"missing tab", "artist\tMaler\nprize", "Key with the index 1 (starting at position 13) misses tab separator"},
		{"duplicate", "a\tb\nc\td\na\te", "Key with the index 2 (starting at position 8) duplicates key with the index 0 (starting at position 0)"},
		{"empty", "\n \n", "Missing or invalid argument: entries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEntries(FormatTSV, tt.input, "en", "de")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidEntries)
			pe := platformerrors.GetPlatformError(err)
			require.NotNil(t, pe)
			assert.Equal(t, tt.detail, pe.Detail)
		})
	}
}

func TestParseCSV(t *testing.T) {
	input := "artist,Maler\n" +
		"prize,Preis,en,de\n" +
		"ignored,Ignoriert,fr,de\n" +
		"\"quoted, phrase\",Zitat\n" +
		"lonely\n"

	entries, err := ParseEntries(FormatCSV, input, "EN", "DE")
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{"artist", "Maler"},
		{"prize", "Preis"},
		{"quoted, phrase", "Zitat"},
	}, entries)
}

func TestParseCSVRejectsEmptyAndDuplicates(t *testing.T) {
	_, err := ParseEntries(FormatCSV, "", "en", "de")
	assert.ErrorIs(t, err, ErrInvalidEntries)

	_, err = ParseEntries(FormatCSV, "a,b,fr,es\n", "en", "de")
	assert.ErrorIs(t, err, ErrInvalidEntries)

	_, err = ParseEntries(FormatCSV, "a,b\na,c\n", "en", "de")
	assert.ErrorIs(t, err, ErrInvalidEntries)
}

func TestParseUnknownFormat(t *testing.T) {
	_, err := ParseEntries("xml", "a\tb", "en", "de")
	assert.ErrorIs(t, err, ErrEntriesFormat)
}

func TestEncodeTSV(t *testing.T) {
	assert.Equal(t, "a\tb\nc\td", EncodeTSV([]Entry{{"a", "b"}, {"c", "d"}}))
	assert.Equal(t, "", EncodeTSV(nil))
}
