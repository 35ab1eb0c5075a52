package dataset

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// CountryBucket holds the songs charted in one country.
type CountryBucket struct {
	Name          string
	Songs         []Song
	PopularitySum float64
	AvgPopularity float64
}

// Count is the number of songs in the bucket.
func (b *CountryBucket) Count() int {
	return len(b.Songs)
}

// Index groups a normalized dataset. It is read-only once built.
type Index struct {
	songs   []Song
	buckets map[string]*CountryBucket

	genres           mapset.Set[string]
	genresSimplified mapset.Set[string]
	artists          mapset.Set[string]
	titles           mapset.Set[string]

	// Unbucketed counts songs with an empty country. They take part in
	// dataset-wide views but belong to no country.
	Unbucketed int
}

// BuildIndex indexes songs in a single pass.
func BuildIndex(songs []Song) *Index {
	idx := &Index{
		songs:            songs,
		buckets:          make(map[string]*CountryBucket),
		genres:           mapset.NewThreadUnsafeSet[string](),
		genresSimplified: mapset.NewThreadUnsafeSet[string](),
		artists:          mapset.NewThreadUnsafeSet[string](),
		titles:           mapset.NewThreadUnsafeSet[string](),
	}

	for _, song := range songs {
		addNonEmpty(idx.genres, song.Genre)
		addNonEmpty(idx.genresSimplified, song.GenreSimplified)
		addNonEmpty(idx.titles, song.Title)
		for _, artist := range song.Artists {
			addNonEmpty(idx.artists, artist)
		}

		if song.Country == "" {
			idx.Unbucketed++
			continue
		}
		bucket, ok := idx.buckets[song.Country]
		if !ok {
			bucket = &CountryBucket{Name: song.Country}
			idx.buckets[song.Country] = bucket
		}
		bucket.Songs = append(bucket.Songs, song)
		bucket.PopularitySum += song.Popularity
	}

	for _, bucket := range idx.buckets {
		if n := bucket.Count(); n > 0 {
			bucket.AvgPopularity = bucket.PopularitySum / float64(n)
		}
	}
	return idx
}

// Songs returns every indexed song in input order.
func (idx *Index) Songs() []Song {
	return idx.songs
}

// Bucket returns the bucket for a country, or nil.
func (idx *Index) Bucket(country string) *CountryBucket {
	return idx.buckets[country]
}

// Countries returns every country name, sorted.
func (idx *Index) Countries() []string {
	names := make([]string, 0, len(idx.buckets))
	for name := range idx.buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (idx *Index) Genres() []string           { return sorted(idx.genres) }
func (idx *Index) GenresSimplified() []string { return sorted(idx.genresSimplified) }
func (idx *Index) Artists() []string          { return sorted(idx.artists) }
func (idx *Index) Titles() []string           { return sorted(idx.titles) }

func addNonEmpty(set mapset.Set[string], value string) {
	if value != "" {
		set.Add(value)
	}
}

func sorted(set mapset.Set[string]) []string {
	values := set.ToSlice()
	sort.Strings(values)
	return values
}
