package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ademuri/spotify-chart-tools/internal/dataset"
)

// LookupArtist finds a summary by its exact, trimmed artist key.
func (s *Store) LookupArtist(name string) (dataset.ArtistRecord, bool, error) {
	columns := []string{
		"artist", "popularity", "song_count", "track_count", "top50_count",
		"top10_count", "peak_ranks", "titles", "uris",
	}
	for _, attr := range dataset.AllAttributes {
		columns = append(columns, string(attr))
	}
	query := fmt.Sprintf("SELECT %s FROM ArtistStats WHERE artist = ?", strings.Join(columns, ", "))

	var rec dataset.ArtistRecord
	var text [9]sql.NullString
	attrs := make([]sql.NullString, len(dataset.AllAttributes))
	dest := make([]any, 0, len(columns))
	for i := range text {
		dest = append(dest, &text[i])
	}
	for i := range attrs {
		dest = append(dest, &attrs[i])
	}

	err := s.db.QueryRow(query, strings.TrimSpace(name)).Scan(dest...)
	if err == sql.ErrNoRows {
		return rec, false, nil
	}
	if err != nil {
		return rec, false, fmt.Errorf("looking up artist %q: %w", name, err)
	}

	rec.Artist = text[0].String
	rec.Popularity = text[1].String
	rec.SongCount = text[2].String
	rec.TrackCount = text[3].String
	rec.Top50Count = text[4].String
	rec.Top10Count = text[5].String
	rec.PeakRanks = text[6].String
	rec.Titles = text[7].String
	rec.URIs = text[8].String
	rec.Attributes = make(map[dataset.Attribute]string, len(dataset.AllAttributes))
	for i, attr := range dataset.AllAttributes {
		rec.Attributes[attr] = attrs[i].String
	}
	return rec, true, nil
}

func (s *Store) CountArtists() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM ArtistStats").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting artists: %w", err)
	}
	return count, nil
}

// LastImported returns the zero time when nothing has been imported.
func (s *Store) LastImported() (time.Time, error) {
	row := s.db.QueryRow("SELECT MAX(imported_at) FROM ArtistStats")
	var t sql.NullString
	if err := row.Scan(&t); err != nil {
		return time.Time{}, fmt.Errorf("getting last import: %w", err)
	}
	if !t.Valid {
		return time.Time{}, nil
	}
	return parseTimestamp(t.String)
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing timestamp %q", s)
}
