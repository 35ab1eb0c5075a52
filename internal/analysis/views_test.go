package analysis

import (
	"reflect"
	"testing"

	"github.com/ademuri/spotify-chart-tools/internal/dataset"
)

func TestCompareCountry(t *testing.T) {
	songs := []dataset.Song{
		{Country: "Spain", Energy: 0.8, Tempo: 120},
		{Country: "Spain", Energy: 0.6, Tempo: 100},
		{Country: "Japan", Energy: 0.2, Tempo: 80},
		{Country: "Japan", Energy: 0.4, Tempo: 100},
	}
	engine := New(songs, nil)

	got := engine.CompareCountry("Spain")
	if len(got) != len(compareAttributes) {
		t.Fatalf("Expected %d comparisons, got %d", len(compareAttributes), len(got))
	}
	byAttr := make(map[dataset.Attribute]Comparison)
	for _, c := range got {
		byAttr[c.Attribute] = c
	}

	energy := byAttr[dataset.Energy]
	if !approx(energy.Country, 0.7) || !approx(energy.Global, 0.5) || !approx(energy.Difference, 40) {
		t.Errorf("Unexpected energy comparison %+v", energy)
	}
	tempo := byAttr[dataset.Tempo]
	if !approx(tempo.Country, 110) || !approx(tempo.Global, 100) || !approx(tempo.Difference, 10) {
		t.Errorf("Unexpected tempo comparison %+v", tempo)
	}
	// Global valence is 0, so there is nothing to relate to.
	if byAttr[dataset.Valence].Difference != 0 {
		t.Errorf("Expected 0 difference for zero global, got %+v", byAttr[dataset.Valence])
	}

	for _, c := range engine.CompareCountry("Atlantis") {
		if c.Country != 0 || c.Difference != 0 {
			t.Errorf("Unknown country should compare as zero, got %+v", c)
		}
	}
}

func TestOverview(t *testing.T) {
	engine := New(spainRows(), nil)
	o := engine.Overview(1)

	if o.Records != 3 || o.Countries != 1 || o.Genres != 2 || o.Artists != 2 || o.Songs != 3 {
		t.Errorf("Unexpected counts %+v", o)
	}
	if !reflect.DeepEqual(o.TopArtists, []Entry{{"A", 120}}) {
		t.Errorf("Unexpected top artists %v", o.TopArtists)
	}
	if !reflect.DeepEqual(o.TopGenres, []Entry{{"Pop", 120}}) {
		t.Errorf("Unexpected top genres %v", o.TopGenres)
	}
	if len(o.TopSongs) != 1 || len(o.TopGenresSimplified) != 1 {
		t.Errorf("Expected one entry per top list, got %+v", o)
	}
}

func TestCountryPopularity(t *testing.T) {
	songs := []dataset.Song{
		{Country: "Spain", Genre: "Pop", Artists: []string{"A"}, Title: "One", Popularity: 80},
		{Country: "Spain", Genre: "Rock", Artists: []string{"B"}, Title: "Two", Popularity: 40},
		{Country: "Spain", Genre: "Pop", Artists: []string{"B"}, Title: "Three", Popularity: 60},
		{Country: "Japan", Genre: "Rock", Artists: []string{"B"}, Title: "Two", Popularity: 90},
	}
	engine := New(songs, nil)

	all := engine.CountryPopularity(PopularityFilter{})
	want := []CountryPopularity{
		{Country: "Japan", Songs: 1, Popularity: 90},
		{Country: "Spain", Songs: 3, Popularity: 60},
	}
	if !reflect.DeepEqual(all, want) {
		t.Errorf("CountryPopularity() = %+v, want %+v", all, want)
	}

	pop := engine.CountryPopularity(PopularityFilter{Genre: "pop"})
	want = []CountryPopularity{
		{Country: "Japan", Songs: 0, Popularity: 0},
		{Country: "Spain", Songs: 2, Popularity: 70},
	}
	if !reflect.DeepEqual(pop, want) {
		t.Errorf("CountryPopularity(genre=pop) = %+v, want %+v", pop, want)
	}

	two := engine.CountryPopularity(PopularityFilter{Artist: "b", Song: "two"})
	if two[0].Popularity != 90 || two[1].Popularity != 40 {
		t.Errorf("CountryPopularity(artist=b, song=two) = %+v", two)
	}
}
