package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Column names used by the chart dataset. Lookups are case-sensitive.
const (
	ColCountry          = "Country"
	ColGenre            = "Genre"
	ColGenreSimplified  = "Genre_new"
	ColArtist           = "Artist"
	ColTitle            = "Title"
	ColPopularity       = "Popularity"
	ColTempo            = "tempo"
	ColEnergy           = "energy"
	ColDanceability     = "danceability"
	ColValence          = "valence"
	ColAcoustics        = "acoustics"
	ColInstrumentalness = "instrumentalness"
	ColSpeechiness      = "speechiness"
	ColLiveliness       = "liveliness"
	ColURI              = "Uri"
	ColExplicit         = "Explicit"
)

// RawRow is one record of a delimited source, keyed by header name.
type RawRow map[string]string

// Get returns the named field, or "" when the column is absent.
func (r RawRow) Get(column string) string {
	return r[column]
}

// ReadRows reads a header-prefixed CSV source into raw rows. Short or long
// records are tolerated; missing trailing fields read as empty.
func ReadRows(in io.Reader) ([]RawRow, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var rows []RawRow
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading record %d: %w", line, err)
		}

		row := make(RawRow, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
