package analysis

import (
	"math"
	"math/rand"
	"sort"

	"golang.org/x/text/cases"

	"github.com/ademuri/spotify-chart-tools/internal/dataset"
)

const defaultRecommendations = 5

// Range is an inclusive interval.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// RecommendQuery describes the songs a listener is looking for.
type RecommendQuery struct {
	Tempo        Range
	Valence      Range
	Energy       Range
	Danceability Range
	Acoustics    Range

	// Genres and Artists match any listed value; empty matches all.
	Genres  []string
	Artists []string

	Limit int
}

// DefaultRecommendQuery spans the whole usual range of every attribute.
func DefaultRecommendQuery() RecommendQuery {
	return RecommendQuery{
		Tempo:        Range{60, 200},
		Valence:      Range{0, 1},
		Energy:       Range{0, 1},
		Danceability: Range{0, 1},
		Acoustics:    Range{0, 1},
		Limit:        defaultRecommendations,
	}
}

func (q RecommendQuery) ranges() map[dataset.Attribute]Range {
	return map[dataset.Attribute]Range{
		dataset.Tempo:        q.Tempo,
		dataset.Valence:      q.Valence,
		dataset.Energy:       q.Energy,
		dataset.Danceability: q.Danceability,
		dataset.Acoustics:    q.Acoustics,
	}
}

var recommendAttributes = []dataset.Attribute{
	dataset.Tempo, dataset.Valence, dataset.Energy, dataset.Danceability, dataset.Acoustics,
}

// Recommendation is a suggested song.
type Recommendation struct {
	Title        string  `yaml:"title" json:"title"`
	Artist       string  `yaml:"artist" json:"artist"`
	Genre        string  `yaml:"genre" json:"genre"`
	URI          string  `yaml:"uri" json:"uri"`
	Popularity   float64 `yaml:"popularity" json:"popularity"`
	Tempo        float64 `yaml:"tempo" json:"tempo"`
	Valence      float64 `yaml:"valence" json:"valence"`
	Energy       float64 `yaml:"energy" json:"energy"`
	Danceability float64 `yaml:"danceability" json:"danceability"`
	Acoustics    float64 `yaml:"acoustics" json:"acoustics"`
	// Score is 1 for strict matches and the proximity score otherwise.
	Score float64 `yaml:"score" json:"score"`
}

// ProximityScore is 1 inside the wanted range and falls off linearly with
// the distance from its center, reaching 0 at the farthest dataset value.
func ProximityScore(v float64, want, bounds Range) float64 {
	if want.Contains(v) {
		return 1
	}
	center := (want.Min + want.Max) / 2
	maxDistance := math.Max(math.Abs(bounds.Max-center), math.Abs(bounds.Min-center))
	if maxDistance == 0 {
		return 0
	}
	return math.Max(0, 1-math.Abs(v-center)/maxDistance)
}

func categoricalScore(value string, wanted []string) float64 {
	if len(wanted) == 0 {
		return 1
	}
	for _, w := range wanted {
		if w == value {
			return 1
		}
	}
	return 0.2
}

func attributeBounds(songs []dataset.Song) map[dataset.Attribute]Range {
	bounds := make(map[dataset.Attribute]Range, len(dataset.AllAttributes))
	for _, song := range songs {
		for _, attr := range dataset.AllAttributes {
			v := song.Value(attr)
			b, ok := bounds[attr]
			if !ok {
				bounds[attr] = Range{v, v}
				continue
			}
			bounds[attr] = Range{math.Min(b.Min, v), math.Max(b.Max, v)}
		}
	}
	return bounds
}

func titleCaseAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = dataset.TitleCase(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Recommend picks up to q.Limit distinct songs inside every range and
// matching the genre and artist lists, shuffled by rng. A nil rng keeps
// dataset order. When nothing matches strictly, the songs closest to the
// query by proximity score are returned instead.
func (e *Engine) Recommend(q RecommendQuery, rng *rand.Rand) []Recommendation {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultRecommendations
	}
	genres := titleCaseAll(q.Genres)
	artists := titleCaseAll(q.Artists)
	ranges := q.ranges()
	fold := cases.Fold()
	dedupeKey := func(s dataset.Song) string {
		return fold.String(s.Title) + "-" + fold.String(s.PrimaryArtist())
	}

	seen := make(map[string]bool)
	var matches []Recommendation
	for _, song := range e.index.Songs() {
		if categoricalScore(song.Genre, genres) < 1 || categoricalScore(song.PrimaryArtist(), artists) < 1 {
			continue
		}
		inRange := true
		for _, attr := range recommendAttributes {
			if !ranges[attr].Contains(song.Value(attr)) {
				inRange = false
				break
			}
		}
		if !inRange {
			continue
		}
		key := dedupeKey(song)
		if seen[key] {
			continue
		}
		seen[key] = true
		matches = append(matches, recommendation(song, 1))
	}

	if len(matches) > 0 {
		if rng != nil {
			rng.Shuffle(len(matches), func(i, j int) {
				matches[i], matches[j] = matches[j], matches[i]
			})
		}
		if len(matches) > limit {
			matches = matches[:limit]
		}
		return matches
	}
	return e.closest(q, genres, artists, limit, dedupeKey)
}

func (e *Engine) closest(q RecommendQuery, genres, artists []string, limit int, dedupeKey func(dataset.Song) string) []Recommendation {
	ranges := q.ranges()
	seen := make(map[string]bool)
	scored := make([]Recommendation, 0)
	for _, song := range e.index.Songs() {
		key := dedupeKey(song)
		if seen[key] {
			continue
		}
		seen[key] = true

		score := categoricalScore(song.Genre, genres) * categoricalScore(song.PrimaryArtist(), artists)
		var proximity float64
		for _, attr := range recommendAttributes {
			proximity += ProximityScore(song.Value(attr), ranges[attr], e.bounds[attr])
		}
		score *= proximity / float64(len(recommendAttributes))
		if score <= 0 {
			continue
		}
		scored = append(scored, recommendation(song, score))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func recommendation(s dataset.Song, score float64) Recommendation {
	return Recommendation{
		Title:        s.Title,
		Artist:       s.PrimaryArtist(),
		Genre:        s.Genre,
		URI:          s.URI,
		Popularity:   s.Popularity,
		Tempo:        s.Tempo,
		Valence:      s.Valence,
		Energy:       s.Energy,
		Danceability: s.Danceability,
		Acoustics:    s.Acoustics,
		Score:        score,
	}
}
