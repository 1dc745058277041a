package index

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// asciiIndex covers printable ASCII, enough for every test here and cheap to
// rebuild per test.
func asciiIndex() *Index {
	return New(32, 128)
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		text string
		want []string
	}{
		{"single word", "sign", []string{"SIGN"}},
		{"uppercases", "Digit Nine", []string{"DIGIT", "NINE"}},
		{"hyphens split", "quotation-mark", []string{"QUOTATION", "MARK"}},
		{"collapses whitespace", "  full   stop ", []string{"FULL", "STOP"}},
		{"empty", "", []string{}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Tokenize(tc.text))
		})
	}
}

func TestSearchSingleWord(t *testing.T) {
	t.Parallel()

	ix := asciiIndex()
	runes := ix.Search("nine")
	require.Contains(t, runes, '9')
}

func TestSearchIntersectsAllWords(t *testing.T) {
	t.Parallel()

	ix := asciiIndex()
	runes := ix.Search("digit nine")
	require.Equal(t, []rune{'9'}, runes)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	ix := asciiIndex()
	require.Equal(t, ix.Search("DIGIT NINE"), ix.Search("digit nine"))
}

func TestSearchResultsSortedByCodepoint(t *testing.T) {
	t.Parallel()

	ix := asciiIndex()
	runes := ix.Search("digit")
	require.Equal(t, []rune("0123456789"), runes)
}

func TestSearchEmptyQueryMatchesNothing(t *testing.T) {
	t.Parallel()

	ix := asciiIndex()
	require.Empty(t, ix.Search(""))
	require.Empty(t, ix.Search("   "))
}

func TestSearchUnknownWordMatchesNothing(t *testing.T) {
	t.Parallel()

	ix := asciiIndex()
	require.Empty(t, ix.Search("zzyzx"))
	require.Empty(t, ix.Search("digit zzyzx"))
}

func TestFormatLine(t *testing.T) {
	t.Parallel()

	require.Equal(t, "U+0039\t9\tDIGIT NINE", FormatLine('9'))
}
