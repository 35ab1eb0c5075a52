package analysis

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/ademuri/spotify-chart-tools/internal/dataset"
)

const countryTopLimit = 5

// CountryStats summarizes one country. Values handed out by the cache are
// shared and must not be modified.
type CountryStats struct {
	Country         string                             `yaml:"country" json:"country"`
	TotalSongs      int                                `yaml:"total_songs" json:"total_songs"`
	TotalPopularity float64                            `yaml:"total_popularity" json:"total_popularity"`
	AvgPopularity   float64                            `yaml:"avg_popularity" json:"avg_popularity"`
	TopGenres       []GenreShare                       `yaml:"top_genres" json:"top_genres"`
	TopArtists      []ArtistShare                      `yaml:"top_artists" json:"top_artists"`
	TopSongs        []SongShare                        `yaml:"top_songs" json:"top_songs"`
	Distributions   map[dataset.Attribute]Distribution `yaml:"distributions" json:"distributions"`
}

type GenreShare struct {
	Genre      string  `yaml:"genre" json:"genre"`
	Songs      int     `yaml:"songs" json:"songs"`
	Percentage float64 `yaml:"percentage" json:"percentage"`
}

type ArtistShare struct {
	Artist        string  `yaml:"artist" json:"artist"`
	Popularity    float64 `yaml:"popularity" json:"popularity"`
	Songs         int     `yaml:"songs" json:"songs"`
	AvgPopularity float64 `yaml:"avg_popularity" json:"avg_popularity"`
}

type SongShare struct {
	Title      string  `yaml:"title" json:"title"`
	Artist     string  `yaml:"artist" json:"artist"`
	Popularity float64 `yaml:"popularity" json:"popularity"`
}

// Distribution holds the share of songs per level, in percent.
type Distribution struct {
	Low    float64 `yaml:"low" json:"low"`
	Medium float64 `yaml:"medium" json:"medium"`
	High   float64 `yaml:"high" json:"high"`
}

// computeCountryStats aggregates a country's songs against the global
// thresholds. An empty song list yields zeroed stats.
func computeCountryStats(country string, songs []dataset.Song, thresholds Thresholds) CountryStats {
	stats := CountryStats{
		Country:       country,
		TotalSongs:    len(songs),
		TopGenres:     []GenreShare{},
		TopArtists:    []ArtistShare{},
		TopSongs:      []SongShare{},
		Distributions: make(map[dataset.Attribute]Distribution, len(dataset.BucketAttributes)),
	}
	for _, attr := range dataset.BucketAttributes {
		stats.Distributions[attr] = Distribution{}
	}
	if len(songs) == 0 {
		return stats
	}

	total := float64(len(songs))
	artistSongs := make(map[string]int)
	for _, song := range songs {
		stats.TotalPopularity += song.Popularity
		artistSongs[song.PrimaryArtist()]++
	}
	stats.AvgPopularity = stats.TotalPopularity / total

	genres := TopN(songs, func(s dataset.Song) string { return s.Genre },
		func(dataset.Song) float64 { return 1 }, countryTopLimit)
	for _, g := range genres {
		stats.TopGenres = append(stats.TopGenres, GenreShare{
			Genre:      g.Key,
			Songs:      int(g.Value),
			Percentage: g.Value / total * 100,
		})
	}

	artists := TopN(songs, dataset.Song.PrimaryArtist, popularity, countryTopLimit)
	for _, a := range artists {
		n := artistSongs[a.Key]
		stats.TopArtists = append(stats.TopArtists, ArtistShare{
			Artist:        a.Key,
			Popularity:    a.Value,
			Songs:         n,
			AvgPopularity: a.Value / float64(n),
		})
	}

	// Songs are keyed by title and primary artist so covers stay distinct.
	type songKey struct{ title, artist string }
	keys := make(map[string]songKey)
	top := TopN(songs, func(s dataset.Song) string {
		if s.Title == "" && s.PrimaryArtist() == "" {
			return ""
		}
		k := s.Title + "\x00" + s.PrimaryArtist()
		if _, ok := keys[k]; !ok {
			keys[k] = songKey{s.Title, s.PrimaryArtist()}
		}
		return k
	}, popularity, countryTopLimit)
	for _, s := range top {
		k := keys[s.Key]
		stats.TopSongs = append(stats.TopSongs, SongShare{Title: k.title, Artist: k.artist, Popularity: s.Value})
	}

	for _, attr := range dataset.BucketAttributes {
		stats.Distributions[attr] = distribution(songs, attr, thresholds[attr])
	}
	return stats
}

func popularity(s dataset.Song) float64 {
	return s.Popularity
}

func distribution(songs []dataset.Song, attr dataset.Attribute, t Threshold) Distribution {
	if len(songs) == 0 {
		return Distribution{}
	}
	var counts [3]int
	for _, song := range songs {
		counts[t.Classify(song.Value(attr))]++
	}
	total := float64(len(songs))
	return Distribution{
		Low:    float64(counts[Low]) / total * 100,
		Medium: float64(counts[Medium]) / total * 100,
		High:   float64(counts[High]) / total * 100,
	}
}

// CountryCache memoizes country stats for the life of a dataset. The first
// request for a country computes it; later requests are map lookups.
// Concurrent misses for the same country share one computation.
type CountryCache struct {
	compute func(country string) CountryStats

	mu      sync.RWMutex
	entries map[string]CountryStats
	group   singleflight.Group

	computations atomic.Int64
}

func NewCountryCache(compute func(country string) CountryStats) *CountryCache {
	return &CountryCache{
		compute: compute,
		entries: make(map[string]CountryStats),
	}
}

func (c *CountryCache) lookup(country string) (CountryStats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stats, ok := c.entries[country]
	return stats, ok
}

// Get returns the cached stats for country, computing them on first use.
func (c *CountryCache) Get(country string) CountryStats {
	if stats, ok := c.lookup(country); ok {
		return stats
	}

	v, _, _ := c.group.Do(country, func() (any, error) {
		if stats, ok := c.lookup(country); ok {
			return stats, nil
		}
		stats := c.compute(country)
		c.computations.Add(1)

		c.mu.Lock()
		c.entries[country] = stats
		c.mu.Unlock()
		return stats, nil
	})
	return v.(CountryStats)
}

// Computations is the number of cache misses that ran the aggregation.
func (c *CountryCache) Computations() int64 {
	return c.computations.Load()
}

// Len is the number of cached countries.
func (c *CountryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset drops every cached entry.
func (c *CountryCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]CountryStats)
	c.computations.Store(0)
}
