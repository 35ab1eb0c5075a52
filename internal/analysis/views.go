package analysis

import (
	"strings"

	"github.com/ademuri/spotify-chart-tools/internal/dataset"
)

// compareAttributes are the characteristics shown against the global average.
var compareAttributes = []dataset.Attribute{
	dataset.Valence,
	dataset.Energy,
	dataset.Danceability,
	dataset.Speechiness,
	dataset.Acoustics,
	dataset.Instrumentalness,
	dataset.Liveliness,
	dataset.Tempo,
}

// Comparison is a country's average for one attribute next to the global one.
type Comparison struct {
	Attribute dataset.Attribute `yaml:"attribute" json:"attribute"`
	Country   float64           `yaml:"country" json:"country"`
	Global    float64           `yaml:"global" json:"global"`
	// Difference is (country - global) / global in percent; 0 when the
	// global average is 0 or the country has no songs.
	Difference float64 `yaml:"difference" json:"difference"`
}

// CompareCountry relates a country's average characteristics to the dataset.
func (e *Engine) CompareCountry(country string) []Comparison {
	var songs []dataset.Song
	if bucket := e.index.Bucket(strings.TrimSpace(country)); bucket != nil {
		songs = bucket.Songs
	}
	local := averages(songs)
	global := averages(e.index.Songs())

	out := make([]Comparison, 0, len(compareAttributes))
	for _, attr := range compareAttributes {
		c := Comparison{Attribute: attr, Country: local[attr], Global: global[attr]}
		if len(songs) > 0 && c.Global != 0 {
			c.Difference = (c.Country - c.Global) / c.Global * 100
		}
		out = append(out, c)
	}
	return out
}

func averages(songs []dataset.Song) map[dataset.Attribute]float64 {
	sums := make(map[dataset.Attribute]float64, len(dataset.AllAttributes))
	for _, attr := range dataset.AllAttributes {
		sums[attr] = 0
	}
	if len(songs) == 0 {
		return sums
	}
	for _, song := range songs {
		for _, attr := range dataset.AllAttributes {
			sums[attr] += song.Value(attr)
		}
	}
	for attr := range sums {
		sums[attr] /= float64(len(songs))
	}
	return sums
}

// Overview summarizes the whole dataset.
type Overview struct {
	Records          int `yaml:"records" json:"records"`
	Countries        int `yaml:"countries" json:"countries"`
	Genres           int `yaml:"genres" json:"genres"`
	GenresSimplified int `yaml:"genres_simplified" json:"genres_simplified"`
	Artists          int `yaml:"artists" json:"artists"`
	Songs            int `yaml:"songs" json:"songs"`

	TopArtists          []Entry `yaml:"top_artists" json:"top_artists"`
	TopSongs            []Entry `yaml:"top_songs" json:"top_songs"`
	TopGenres           []Entry `yaml:"top_genres" json:"top_genres"`
	TopGenresSimplified []Entry `yaml:"top_genres_simplified" json:"top_genres_simplified"`
}

func (e *Engine) Overview(n int) Overview {
	return Overview{
		Records:             len(e.index.Songs()),
		Countries:           len(e.index.Countries()),
		Genres:              len(e.index.Genres()),
		GenresSimplified:    len(e.index.GenresSimplified()),
		Artists:             len(e.index.Artists()),
		Songs:               len(e.index.Titles()),
		TopArtists:          e.Top(FieldArtist, n),
		TopSongs:            e.Top(FieldSong, n),
		TopGenres:           e.Top(FieldGenre, n),
		TopGenresSimplified: e.Top(FieldGenreSimplified, n),
	}
}

// PopularityFilter restricts the popularity map to matching songs. Empty
// fields match everything; values are compared after title-casing.
type PopularityFilter struct {
	Genre  string
	Artist string
	Song   string
}

func (f PopularityFilter) normalized() PopularityFilter {
	return PopularityFilter{
		Genre:  dataset.TitleCase(f.Genre),
		Artist: dataset.TitleCase(f.Artist),
		Song:   dataset.TitleCase(f.Song),
	}
}

func (f PopularityFilter) matches(s dataset.Song) bool {
	if f.Genre != "" && s.Genre != f.Genre {
		return false
	}
	if f.Artist != "" && s.PrimaryArtist() != f.Artist {
		return false
	}
	if f.Song != "" && s.Title != f.Song {
		return false
	}
	return true
}

// CountryPopularity is one country's shade on the popularity map.
type CountryPopularity struct {
	Country    string  `yaml:"country" json:"country"`
	Songs      int     `yaml:"songs" json:"songs"`
	Popularity float64 `yaml:"popularity" json:"popularity"`
}

// CountryPopularity averages popularity per country over matching songs.
// Countries without a match report 0.
func (e *Engine) CountryPopularity(filter PopularityFilter) []CountryPopularity {
	filter = filter.normalized()
	countries := e.index.Countries()
	out := make([]CountryPopularity, 0, len(countries))
	for _, name := range countries {
		cp := CountryPopularity{Country: name}
		var sum float64
		for _, song := range e.index.Bucket(name).Songs {
			if filter.matches(song) {
				cp.Songs++
				sum += song.Popularity
			}
		}
		if cp.Songs > 0 {
			cp.Popularity = sum / float64(cp.Songs)
		}
		out = append(out, cp)
	}
	return out
}
