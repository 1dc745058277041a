// Package index builds an in-memory inverted index over Unicode character
// names, mapping each word of a name to the set of runes whose name contains
// it. Queries intersect the posting sets of every query word.
package index

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/runenames"
)

// DefaultStart is the first rune scanned by NewDefault; everything below it
// is a control character with no searchable name.
const DefaultStart rune = 32

// Index is an immutable word-to-runes inverted index. Build it once with New
// and share it freely; Search never mutates it.
type Index struct {
	entries map[string]map[rune]struct{}
}

// Tokenize splits text into uppercase words, treating hyphens as spaces so
// "NINE-THIRTY" matches both "nine" and "thirty".
func Tokenize(text string) []string {
	normalized := strings.ReplaceAll(strings.ToUpper(text), "-", " ")
	return strings.Fields(normalized)
}

// New scans [start, stop) and indexes every rune with an assigned name.
func New(start, stop rune) *Index {
	entries := make(map[string]map[rune]struct{})
	for r := start; r < stop; r++ {
		name := runenames.Name(r)
		// Unassigned and control runes come back empty or bracketed.
		if name == "" || strings.HasPrefix(name, "<") {
			continue
		}
		for _, word := range Tokenize(name) {
			set := entries[word]
			if set == nil {
				set = make(map[rune]struct{})
				entries[word] = set
			}
			set[r] = struct{}{}
		}
	}
	return &Index{entries: entries}
}

// NewDefault indexes the full assigned Unicode range.
func NewDefault() *Index {
	return New(DefaultStart, unicode.MaxRune+1)
}

// Search returns the runes whose names contain every word of query, sorted
// by codepoint. An empty query matches nothing.
func (ix *Index) Search(query string) []rune {
	words := Tokenize(query)
	if len(words) == 0 {
		return nil
	}
	found := ix.entries[words[0]]
	for _, word := range words[1:] {
		if len(found) == 0 {
			return nil
		}
		next := ix.entries[word]
		narrowed := make(map[rune]struct{})
		for r := range found {
			if _, ok := next[r]; ok {
				narrowed[r] = struct{}{}
			}
		}
		found = narrowed
	}
	out := make([]rune, 0, len(found))
	for r := range found {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FormatLine renders one result rune as "U+XXXX\t<char>\t<NAME>".
func FormatLine(r rune) string {
	return fmt.Sprintf("U+%04X\t%c\t%s", r, r, runenames.Name(r))
}
