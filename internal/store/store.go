package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ademuri/spotify-chart-tools/internal/dataset"
)

// Store keeps the precomputed per-artist summaries in SQLite, so artist
// lookups do not need the summary CSV on every run.
type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	query := `
CREATE TABLE IF NOT EXISTS ArtistStats (
  artist TEXT PRIMARY KEY,
  popularity TEXT,
  song_count TEXT,
  track_count TEXT,
  top50_count TEXT,
  top10_count TEXT,
  peak_ranks TEXT,
  titles TEXT,
  uris TEXT,
  imported_at DATETIME
);
`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("creating ArtistStats: %w", err)
	}
	return nil
}

// ensureSchema adds one text column per audio attribute. Databases written
// before an attribute was tracked gain the column on open.
func ensureSchema(db *sql.DB) error {
	for _, attr := range dataset.AllAttributes {
		if err := addColumnIfNotExists(db, "ArtistStats", string(attr), "TEXT"); err != nil {
			return err
		}
	}
	return nil
}

func addColumnIfNotExists(db *sql.DB, table, column, typeDef string) error {
	exists, err := columnExists(db, table, column)
	if err != nil {
		return fmt.Errorf("checking column %s.%s: %w", table, column, err)
	}
	if !exists {
		query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, typeDef)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("adding column %s.%s: %w", table, column, err)
		}
	}
	return nil
}

func columnExists(db *sql.DB, tableName string, columnName string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", tableName))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name string
		var ctype string
		var notnull int
		var dfltValue any
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == columnName {
			return true, nil
		}
	}
	return false, rows.Err()
}
