package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ademuri/spotify-chart-tools/internal/dataset"
)

// SaveArtistRecords upserts a batch of artist summaries transactionally.
// Records without an artist key are skipped. It returns the number saved.
func (s *Store) SaveArtistRecords(records []dataset.ArtistRecord) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(upsertQuery())
	if err != nil {
		return 0, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	saved := 0
	for _, rec := range records {
		if strings.TrimSpace(rec.Artist) == "" {
			continue
		}
		if err := saveArtistRecord(stmt, rec, now); err != nil {
			return 0, err
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return saved, nil
}

func upsertQuery() string {
	columns := []string{
		"artist", "popularity", "song_count", "track_count", "top50_count",
		"top10_count", "peak_ranks", "titles", "uris", "imported_at",
	}
	for _, attr := range dataset.AllAttributes {
		columns = append(columns, string(attr))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf("INSERT OR REPLACE INTO ArtistStats (%s) VALUES (%s)",
		strings.Join(columns, ", "), placeholders)
}

func saveArtistRecord(stmt *sql.Stmt, rec dataset.ArtistRecord, now time.Time) error {
	args := []any{
		strings.TrimSpace(rec.Artist), rec.Popularity, rec.SongCount, rec.TrackCount, rec.Top50Count,
		rec.Top10Count, rec.PeakRanks, rec.Titles, rec.URIs, now,
	}
	for _, attr := range dataset.AllAttributes {
		args = append(args, rec.Attributes[attr])
	}
	if _, err := stmt.Exec(args...); err != nil {
		return fmt.Errorf("saving artist %q: %w", rec.Artist, err)
	}
	return nil
}

// DeleteArtists removes every stored summary.
func (s *Store) DeleteArtists() error {
	if _, err := s.db.Exec("DELETE FROM ArtistStats"); err != nil {
		return fmt.Errorf("deleting artists: %w", err)
	}
	return nil
}
