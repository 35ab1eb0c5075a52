package dataset

import "strings"

// Columns of the precomputed per-artist summary source.
const (
	ColArtistKey        = "Artist"
	ColArtistPopularity = "popularity"
	ColSongCount        = "song_count"
	ColTrackCount       = "track_count"
	ColTop50Count       = "top50_count"
	ColTop10Count       = "top10_count"
	ColPeakRanks        = "popu_max_list"
	ColTitles           = "title"
	ColURIs             = "uri"
)

// ArtistRecord is one row of the artist summary source, kept as text.
// Parsing happens when stats are requested.
type ArtistRecord struct {
	Artist     string
	Popularity string
	Attributes map[Attribute]string

	SongCount  string
	TrackCount string
	Top50Count string
	Top10Count string

	PeakRanks string
	Titles    string
	URIs      string
}

// ArtistRecordFromRow maps a raw artist summary row to a record. The key is
// trimmed but otherwise kept verbatim so lookups are exact.
func ArtistRecordFromRow(row RawRow) ArtistRecord {
	rec := ArtistRecord{
		Artist:     strings.TrimSpace(row.Get(ColArtistKey)),
		Popularity: row.Get(ColArtistPopularity),
		Attributes: make(map[Attribute]string, len(AllAttributes)),
		SongCount:  row.Get(ColSongCount),
		TrackCount: row.Get(ColTrackCount),
		Top50Count: row.Get(ColTop50Count),
		Top10Count: row.Get(ColTop10Count),
		PeakRanks:  row.Get(ColPeakRanks),
		Titles:     row.Get(ColTitles),
		URIs:       row.Get(ColURIs),
	}
	for _, a := range AllAttributes {
		rec.Attributes[a] = row.Get(string(a))
	}
	return rec
}

// ArtistRecordsFromRows skips rows without an artist key.
func ArtistRecordsFromRows(rows []RawRow) []ArtistRecord {
	records := make([]ArtistRecord, 0, len(rows))
	for _, row := range rows {
		rec := ArtistRecordFromRow(row)
		if rec.Artist == "" {
			continue
		}
		records = append(records, rec)
	}
	return records
}
