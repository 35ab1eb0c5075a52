package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ademuri/spotify-chart-tools/internal/dataset"
)

// DefaultMinCountrySongs is the sample size below which a country is left
// out of ListCountries.
const DefaultMinCountrySongs = 30

// Engine answers queries over one loaded dataset. Build it once per load;
// it is safe for concurrent use.
type Engine struct {
	index      *dataset.Index
	thresholds Thresholds
	bounds     map[dataset.Attribute]Range
	countries  *CountryCache
	artists    ArtistSource

	minCountrySongs int
	log             logrus.FieldLogger
}

type Option func(*Engine)

func WithMinCountrySongs(n int) Option {
	return func(e *Engine) {
		e.minCountrySongs = n
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// New indexes songs and computes the global thresholds. artists may be nil,
// in which case every artist lookup misses.
func New(songs []dataset.Song, artists ArtistSource, opts ...Option) *Engine {
	e := &Engine{
		artists:         artists,
		minCountrySongs: DefaultMinCountrySongs,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		e.log = quiet
	}
	if e.artists == nil {
		e.artists = ArtistTable{}
	}

	e.index = dataset.BuildIndex(songs)
	e.thresholds = ComputeThresholds(songs)
	e.bounds = attributeBounds(songs)
	e.countries = NewCountryCache(e.computeCountry)

	e.log.WithFields(logrus.Fields{
		"songs":      len(songs),
		"countries":  len(e.index.Countries()),
		"genres":     len(e.index.Genres()),
		"artists":    len(e.index.Artists()),
		"titles":     len(e.index.Titles()),
		"unbucketed": e.index.Unbucketed,
	}).Info("Indexed dataset")
	return e
}

func (e *Engine) computeCountry(country string) CountryStats {
	var songs []dataset.Song
	if bucket := e.index.Bucket(country); bucket != nil {
		songs = bucket.Songs
	}
	e.log.WithFields(logrus.Fields{"country": country, "songs": len(songs)}).Debug("Computing country stats")
	return computeCountryStats(country, songs, e.thresholds)
}

// CountryStats returns the memoized stats for a country. Unknown countries
// yield zeroed stats.
func (e *Engine) CountryStats(country string) CountryStats {
	return e.countries.Get(strings.TrimSpace(country))
}

// Cache exposes the country cache, mainly for tests and diagnostics.
func (e *Engine) Cache() *CountryCache {
	return e.countries
}

// ArtistStats returns nil, nil when the artist is not in the source.
func (e *Engine) ArtistStats(artist string) (*ArtistStats, error) {
	artist = strings.TrimSpace(artist)
	rec, ok, err := e.artists.LookupArtist(artist)
	if err != nil {
		return nil, fmt.Errorf("looking up artist %q: %w", artist, err)
	}
	if !ok {
		return nil, nil
	}
	return parseArtistRecord(rec), nil
}

func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

func (e *Engine) Index() *dataset.Index {
	return e.index
}

// ListCountries returns countries with enough songs for stable statistics.
func (e *Engine) ListCountries() []string {
	names := []string{}
	for _, name := range e.index.Countries() {
		if e.index.Bucket(name).Count() >= e.minCountrySongs {
			names = append(names, name)
		}
	}
	return names
}

func (e *Engine) ListGenres() []string           { return e.index.Genres() }
func (e *Engine) ListGenresSimplified() []string { return e.index.GenresSimplified() }
func (e *Engine) ListArtists() []string          { return e.index.Artists() }
func (e *Engine) ListSongs() []string            { return e.index.Titles() }

// Field selects what Top groups songs by.
type Field string

const (
	FieldArtist          Field = "artist"
	FieldSong            Field = "song"
	FieldGenre           Field = "genre"
	FieldGenreSimplified Field = "genre_simplified"
)

var Fields = []Field{FieldArtist, FieldSong, FieldGenre, FieldGenreSimplified}

func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == strings.ToLower(strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q, expected one of %v", s, Fields)
}

func (f Field) key(s dataset.Song) string {
	switch f {
	case FieldArtist:
		return s.PrimaryArtist()
	case FieldSong:
		if artist := s.PrimaryArtist(); artist != "" {
			return s.Title + " - " + artist
		}
		return s.Title
	case FieldGenre:
		return s.Genre
	case FieldGenreSimplified:
		return s.GenreSimplified
	}
	return ""
}

// Top ranks the whole dataset by summed popularity.
func (e *Engine) Top(field Field, n int) []Entry {
	return TopN(e.index.Songs(), field.key, popularity, n)
}
