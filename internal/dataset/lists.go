package dataset

import (
	"encoding/json"
	"strings"
)

// ListKind reports how a string-encoded list was interpreted.
type ListKind int

const (
	// ListEmpty means nothing usable was found.
	ListEmpty ListKind = iota
	// ListParsed means the field was a bracketed list.
	ListParsed
	// ListFallback means the field was a bare value, used whole.
	ListFallback
)

func (k ListKind) String() string {
	switch k {
	case ListParsed:
		return "parsed"
	case ListFallback:
		return "fallback"
	}
	return "empty"
}

// ArtistList is the result of parsing an artist field.
type ArtistList struct {
	Kind  ListKind
	Names []string
}

var listStripper = strings.NewReplacer("[", "", "]", "", "'", "", `"`, "")

// ParseArtists parses a Python-style list such as "['Drake', 'Future']".
// Quotes are dropped everywhere, so "Guns N' Roses" keys the same with or
// without brackets. A quoted list missing its brackets still splits; any
// other bare value is a single artist name, so names containing commas
// survive. Order is preserved.
func ParseArtists(field string) ArtistList {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return ArtistList{Kind: ListEmpty, Names: []string{}}
	}

	if !strings.HasPrefix(trimmed, "[") && !isQuotedList(trimmed) {
		name := TitleCase(listStripper.Replace(trimmed))
		if name == "" {
			return ArtistList{Kind: ListEmpty, Names: []string{}}
		}
		return ArtistList{Kind: ListFallback, Names: []string{name}}
	}

	names := []string{}
	for _, piece := range strings.Split(listStripper.Replace(trimmed), ",") {
		name := TitleCase(piece)
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ArtistList{Kind: ListEmpty, Names: names}
	}
	return ArtistList{Kind: ListParsed, Names: names}
}

// isQuotedList reports whether a comma separates two quoted items.
func isQuotedList(s string) bool {
	for _, sep := range []string{"',", `",`} {
		if strings.Contains(s, sep) {
			return true
		}
	}
	return false
}

func unmarshalList(field string, v any) bool {
	field = strings.TrimSpace(field)
	if field == "" {
		return false
	}
	if json.Unmarshal([]byte(field), v) == nil {
		return true
	}
	// Python reprs use single quotes.
	return json.Unmarshal([]byte(strings.ReplaceAll(field, "'", `"`)), v) == nil
}

// ParseIntList parses a JSON array of numbers. Invalid input yields an empty slice.
func ParseIntList(field string) []int {
	var raw []float64
	if !unmarshalList(field, &raw) {
		return []int{}
	}
	out := make([]int, 0, len(raw))
	for _, f := range raw {
		n, ok := toInt(f)
		if !ok {
			continue
		}
		out = append(out, n)
	}
	return out
}

// ParseStringList parses a JSON array of strings. Invalid input yields an empty slice.
func ParseStringList(field string) []string {
	var out []string
	if !unmarshalList(field, &out) {
		return []string{}
	}
	if out == nil {
		return []string{}
	}
	return out
}
