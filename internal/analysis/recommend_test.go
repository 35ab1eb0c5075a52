package analysis

import (
	"math/rand"
	"testing"

	"github.com/ademuri/spotify-chart-tools/internal/dataset"
)

func recommendSongs() []dataset.Song {
	return []dataset.Song{
		{Title: "Calm", Artists: []string{"Low Tide"}, Genre: "Ambient", Tempo: 70, Energy: 0.1, Valence: 0.3, Danceability: 0.2, Acoustics: 0.9},
		{Title: "Rush", Artists: []string{"Volt"}, Genre: "Edm", Tempo: 128, Energy: 0.9, Valence: 0.7, Danceability: 0.8, Acoustics: 0.05},
		{Title: "rush", Artists: []string{"VOLT"}, Genre: "Edm", Tempo: 128, Energy: 0.9, Valence: 0.7, Danceability: 0.8, Acoustics: 0.05},
		{Title: "Spark", Artists: []string{"Volt"}, Genre: "Edm", Tempo: 126, Energy: 0.85, Valence: 0.6, Danceability: 0.75, Acoustics: 0.1},
		{Title: "Stroll", Artists: []string{"Paseo"}, Genre: "Pop", Tempo: 110, Energy: 0.5, Valence: 0.8, Danceability: 0.6, Acoustics: 0.3},
	}
}

func TestRecommendStrictMatches(t *testing.T) {
	engine := New(recommendSongs(), nil)

	q := DefaultRecommendQuery()
	q.Energy = Range{0.8, 1}
	got := engine.Recommend(q, nil)
	if len(got) != 2 {
		t.Fatalf("Expected 2 distinct matches, got %+v", got)
	}
	if got[0].Title != "Rush" || got[1].Title != "Spark" {
		t.Errorf("Expected dataset order without rng, got %+v", got)
	}
	for _, r := range got {
		if r.Score != 1 {
			t.Errorf("Strict match should score 1, got %+v", r)
		}
	}
}

func TestRecommendFilters(t *testing.T) {
	engine := New(recommendSongs(), nil)

	q := DefaultRecommendQuery()
	q.Genres = []string{"pop", "ambient"}
	got := engine.Recommend(q, nil)
	if len(got) != 2 || got[0].Title != "Calm" || got[1].Title != "Stroll" {
		t.Errorf("Genre filter: got %+v", got)
	}

	q = DefaultRecommendQuery()
	q.Artists = []string{"volt"}
	q.Limit = 1
	got = engine.Recommend(q, nil)
	if len(got) != 1 || got[0].Artist != "Volt" {
		t.Errorf("Artist filter with limit: got %+v", got)
	}
}

func TestRecommendSeeded(t *testing.T) {
	engine := New(recommendSongs(), nil)
	q := DefaultRecommendQuery()

	first := engine.Recommend(q, rand.New(rand.NewSource(7)))
	second := engine.Recommend(q, rand.New(rand.NewSource(7)))
	if len(first) != 4 {
		t.Fatalf("Expected 4 distinct songs, got %d", len(first))
	}
	for i := range first {
		if first[i].Title != second[i].Title {
			t.Errorf("Same seed should give same order: %+v vs %+v", first, second)
			break
		}
	}
}

func TestRecommendFallback(t *testing.T) {
	engine := New(recommendSongs(), nil)

	q := DefaultRecommendQuery()
	q.Tempo = Range{180, 200}
	q.Limit = 2
	got := engine.Recommend(q, nil)
	if len(got) != 2 {
		t.Fatalf("Expected 2 fallback songs, got %+v", got)
	}
	if got[0].Title != "Rush" {
		t.Errorf("Expected the fastest song first, got %+v", got)
	}
	if got[0].Score <= 0 || got[0].Score >= 1 || got[1].Score > got[0].Score {
		t.Errorf("Unexpected fallback scores %+v", got)
	}
}

func TestRecommendEmptyDataset(t *testing.T) {
	engine := New(nil, nil)
	if got := engine.Recommend(DefaultRecommendQuery(), nil); len(got) != 0 {
		t.Errorf("Expected no recommendations, got %+v", got)
	}
}

func TestProximityScore(t *testing.T) {
	bounds := Range{0, 1}
	want := Range{0.4, 0.6}

	tests := []struct {
		v    float64
		want float64
	}{
		{0.5, 1},
		{0.4, 1},
		{0.0, 0},
		{1.0, 0},
		{0.75, 0.5},
	}
	for _, tt := range tests {
		if got := ProximityScore(tt.v, want, bounds); !approx(got, tt.want) {
			t.Errorf("ProximityScore(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}

	if got := ProximityScore(3, Range{1, 1}, Range{1, 1}); got != 0 {
		t.Errorf("Degenerate bounds should score 0, got %v", got)
	}
}
