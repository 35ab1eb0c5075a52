package dataset

import (
	"reflect"
	"testing"
)

func TestParseIntList(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"[1, 15, 200]", []int{1, 15, 200}},
		{"[3.0, 7.0]", []int{3, 7}},
		{"[1e300, 4, -1e300]", []int{4}},
		{"[]", []int{}},
		{"not a list", []int{}},
		{"", []int{}},
	}
	for _, tc := range tests {
		if got := ParseIntList(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseIntList(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseStringList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`["One", "Two"]`, []string{"One", "Two"}},
		{"['One', 'Two']", []string{"One", "Two"}},
		{"null", []string{}},
		{"[broken", []string{}},
	}
	for _, tc := range tests {
		if got := ParseStringList(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseStringList(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildIndex(t *testing.T) {
	songs := []Song{
		{Title: "A", Artists: []string{"X", "Y"}, Genre: "Pop", GenreSimplified: "Pop", Country: "Spain", Popularity: 80},
		{Title: "B", Artists: []string{"X"}, Genre: "Rock", GenreSimplified: "Rock", Country: "Spain", Popularity: 40},
		{Title: "A", Artists: []string{"Z"}, Genre: "Pop", GenreSimplified: "Pop", Country: "France", Popularity: 10},
		{Title: "C", Artists: []string{"Z"}, Genre: "Jazz", Country: "", Popularity: 5},
	}

	idx := BuildIndex(songs)

	if got := idx.Countries(); !reflect.DeepEqual(got, []string{"France", "Spain"}) {
		t.Errorf("Countries() = %v", got)
	}
	spain := idx.Bucket("Spain")
	if spain == nil {
		t.Fatalf("Expected a bucket for Spain")
	}
	if spain.Count() != 2 || spain.PopularitySum != 120 || spain.AvgPopularity != 60 {
		t.Errorf("Unexpected Spain bucket: count=%d sum=%v avg=%v", spain.Count(), spain.PopularitySum, spain.AvgPopularity)
	}
	if idx.Bucket("Atlantis") != nil {
		t.Errorf("Expected no bucket for an unknown country")
	}
	if idx.Unbucketed != 1 {
		t.Errorf("Expected 1 unbucketed song, got %d", idx.Unbucketed)
	}

	bucketed := 0
	for _, name := range idx.Countries() {
		bucketed += idx.Bucket(name).Count()
	}
	if bucketed+idx.Unbucketed != len(songs) {
		t.Errorf("Every song should be bucketed once: %d + %d != %d", bucketed, idx.Unbucketed, len(songs))
	}

	if got := idx.Genres(); !reflect.DeepEqual(got, []string{"Jazz", "Pop", "Rock"}) {
		t.Errorf("Genres() = %v", got)
	}
	if got := idx.GenresSimplified(); !reflect.DeepEqual(got, []string{"Pop", "Rock"}) {
		t.Errorf("GenresSimplified() = %v", got)
	}
	if got := idx.Artists(); !reflect.DeepEqual(got, []string{"X", "Y", "Z"}) {
		t.Errorf("Artists() = %v", got)
	}
	if got := idx.Titles(); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("Titles() = %v", got)
	}
	if len(idx.Songs()) != len(songs) {
		t.Errorf("Songs() should keep every song")
	}
}
