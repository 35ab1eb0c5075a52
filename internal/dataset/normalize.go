package dataset

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TitleCase upper-cases the first letter of each whitespace-separated word
// and lower-cases the rest. Runs of whitespace collapse to a single space.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
	}
	return strings.Join(words, " ")
}

// ParseFloat parses a locale-independent decimal. Anything unusable,
// including NaN and infinities, reads as 0.
func ParseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseInt parses an integer count, accepting float spellings such as "12.0".
// Anything unusable reads as 0.
func ParseInt(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	n, _ := toInt(ParseFloat(s))
	return n
}

// toInt truncates f, refusing NaN, infinities and values outside the int range.
func toInt(f float64) (int, bool) {
	if math.IsNaN(f) || f >= math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// Normalize turns a raw dataset row into a Song. It never fails: malformed
// fields degrade to empty strings and zero values.
func Normalize(row RawRow) Song {
	return Song{
		Title:           TitleCase(row.Get(ColTitle)),
		Artists:         ParseArtists(row.Get(ColArtist)).Names,
		Genre:           TitleCase(row.Get(ColGenre)),
		GenreSimplified: TitleCase(row.Get(ColGenreSimplified)),
		Country:         strings.TrimSpace(row.Get(ColCountry)),
		URI:             strings.TrimSpace(row.Get(ColURI)),
		Explicit:        parseBool(row.Get(ColExplicit)),

		Popularity:       math.Max(0, ParseFloat(row.Get(ColPopularity))),
		Tempo:            ParseFloat(row.Get(ColTempo)),
		Energy:           ParseFloat(row.Get(ColEnergy)),
		Danceability:     ParseFloat(row.Get(ColDanceability)),
		Valence:          ParseFloat(row.Get(ColValence)),
		Acoustics:        ParseFloat(row.Get(ColAcoustics)),
		Instrumentalness: ParseFloat(row.Get(ColInstrumentalness)),
		Speechiness:      ParseFloat(row.Get(ColSpeechiness)),
		Liveliness:       ParseFloat(row.Get(ColLiveliness)),
	}
}

// NormalizeAll normalizes rows in order.
func NormalizeAll(rows []RawRow) []Song {
	songs := make([]Song, 0, len(rows))
	for _, row := range rows {
		songs = append(songs, Normalize(row))
	}
	return songs
}
