package analysis

import (
	"github.com/ademuri/spotify-chart-tools/internal/dataset"
)

// ArtistSource looks up precomputed per-artist summaries by exact name.
type ArtistSource interface {
	LookupArtist(name string) (dataset.ArtistRecord, bool, error)
}

// ArtistTable is an in-memory ArtistSource.
type ArtistTable map[string]dataset.ArtistRecord

func NewArtistTable(records []dataset.ArtistRecord) ArtistTable {
	table := make(ArtistTable, len(records))
	for _, rec := range records {
		table[rec.Artist] = rec
	}
	return table
}

func (t ArtistTable) LookupArtist(name string) (dataset.ArtistRecord, bool, error) {
	rec, ok := t[name]
	return rec, ok, nil
}

// ArtistStats is the parsed form of an artist summary.
type ArtistStats struct {
	Artist     string                        `yaml:"artist" json:"artist"`
	Popularity float64                       `yaml:"popularity" json:"popularity"`
	Attributes map[dataset.Attribute]float64 `yaml:"attributes" json:"attributes"`
	SongCount  int                           `yaml:"song_count" json:"song_count"`
	TrackCount int                           `yaml:"track_count" json:"track_count"`
	Top50Count int                           `yaml:"top50_count" json:"top50_count"`
	Top10Count int                           `yaml:"top10_count" json:"top10_count"`

	// PeakRanks holds one best chart position per charted track. Titles
	// and URIs run parallel to it when the source provides them.
	PeakRanks []int    `yaml:"peak_ranks" json:"peak_ranks"`
	Titles    []string `yaml:"titles" json:"titles"`
	URIs      []string `yaml:"uris" json:"uris"`
}

// RankSummary condenses the peak ranks of an artist.
type RankSummary struct {
	Best  int `yaml:"best" json:"best"`
	Top10 int `yaml:"top10" json:"top10"`
	Top50 int `yaml:"top50" json:"top50"`
	Total int `yaml:"total" json:"total"`
}

// RankSummary counts peaks inside the top 10 and top 50. Best is 0 when the
// artist never charted.
func (s *ArtistStats) RankSummary() RankSummary {
	summary := RankSummary{Total: len(s.PeakRanks)}
	for _, rank := range s.PeakRanks {
		if rank <= 0 {
			continue
		}
		if summary.Best == 0 || rank < summary.Best {
			summary.Best = rank
		}
		if rank <= 10 {
			summary.Top10++
		}
		if rank <= 50 {
			summary.Top50++
		}
	}
	return summary
}

func parseArtistRecord(rec dataset.ArtistRecord) *ArtistStats {
	stats := &ArtistStats{
		Artist:     rec.Artist,
		Popularity: dataset.ParseFloat(rec.Popularity),
		Attributes: make(map[dataset.Attribute]float64, len(dataset.AllAttributes)),
		SongCount:  dataset.ParseInt(rec.SongCount),
		TrackCount: dataset.ParseInt(rec.TrackCount),
		Top50Count: dataset.ParseInt(rec.Top50Count),
		Top10Count: dataset.ParseInt(rec.Top10Count),
		PeakRanks:  dataset.ParseIntList(rec.PeakRanks),
		Titles:     dataset.ParseStringList(rec.Titles),
		URIs:       dataset.ParseStringList(rec.URIs),
	}
	for _, attr := range dataset.AllAttributes {
		stats.Attributes[attr] = dataset.ParseFloat(rec.Attributes[attr])
	}
	return stats
}
