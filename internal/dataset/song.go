package dataset

// Attribute names a numeric audio feature of a song.
type Attribute string

const (
	Tempo            Attribute = "tempo"
	Energy           Attribute = "energy"
	Danceability     Attribute = "danceability"
	Valence          Attribute = "valence"
	Acoustics        Attribute = "acoustics"
	Instrumentalness Attribute = "instrumentalness"
	Speechiness      Attribute = "speechiness"
	Liveliness       Attribute = "liveliness"
)

// BucketAttributes are the attributes that get Low/Medium/High distributions.
var BucketAttributes = []Attribute{Tempo, Energy, Danceability, Valence, Acoustics, Liveliness}

// AllAttributes lists every audio attribute a song carries.
var AllAttributes = []Attribute{
	Tempo, Energy, Danceability, Valence, Acoustics, Instrumentalness, Speechiness, Liveliness,
}

// Song is a normalized dataset row. It is never mutated after ingestion.
type Song struct {
	Title           string
	Artists         []string
	Genre           string
	GenreSimplified string
	Country         string
	URI             string
	Explicit        bool

	Popularity       float64
	Tempo            float64
	Energy           float64
	Danceability     float64
	Valence          float64
	Acoustics        float64
	Instrumentalness float64
	Speechiness      float64
	Liveliness       float64
}

// PrimaryArtist is the first credited artist, or "" if none were parsed.
func (s Song) PrimaryArtist() string {
	if len(s.Artists) == 0 {
		return ""
	}
	return s.Artists[0]
}

// Value returns the song's value for the attribute. Unknown attributes read as 0.
func (s Song) Value(a Attribute) float64 {
	switch a {
	case Tempo:
		return s.Tempo
	case Energy:
		return s.Energy
	case Danceability:
		return s.Danceability
	case Valence:
		return s.Valence
	case Acoustics:
		return s.Acoustics
	case Instrumentalness:
		return s.Instrumentalness
	case Speechiness:
		return s.Speechiness
	case Liveliness:
		return s.Liveliness
	}
	return 0
}
