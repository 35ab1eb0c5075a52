package analysis

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/ademuri/spotify-chart-tools/internal/dataset"
)

// Level is a Low/Medium/High bucket.
type Level int

const (
	Low Level = iota
	Medium
	High
)

func (l Level) String() string {
	switch l {
	case Low:
		return "low"
	case High:
		return "high"
	}
	return "medium"
}

// Threshold holds the 33rd and 67th percentile of one attribute. Empty is
// set when the dataset had no values; P33 and P67 are then NaN.
type Threshold struct {
	P33   float64 `yaml:"p33" json:"p33"`
	P67   float64 `yaml:"p67" json:"p67"`
	Empty bool    `yaml:"empty,omitempty" json:"empty,omitempty"`
}

// Classify buckets v. Both percentiles belong to Medium.
func (t Threshold) Classify(v float64) Level {
	if t.Empty {
		return Medium
	}
	if v < t.P33 {
		return Low
	}
	if v > t.P67 {
		return High
	}
	return Medium
}

// Thresholds maps each bucketed attribute to its dataset-wide cutoffs.
type Thresholds map[dataset.Attribute]Threshold

// ComputeThresholds derives percentile cutoffs over every song in the
// dataset, so Low/Medium/High mean the same absolute values in every country.
func ComputeThresholds(songs []dataset.Song) Thresholds {
	thresholds := make(Thresholds, len(dataset.BucketAttributes))
	for _, attr := range dataset.BucketAttributes {
		values := make([]float64, 0, len(songs))
		for _, song := range songs {
			v := song.Value(attr)
			if math.IsNaN(v) {
				continue
			}
			values = append(values, v)
		}
		sort.Float64s(values)

		if len(values) == 0 {
			thresholds[attr] = Threshold{P33: math.NaN(), P67: math.NaN(), Empty: true}
			continue
		}
		thresholds[attr] = Threshold{
			P33: percentile(values, 0.33),
			P67: percentile(values, 0.67),
		}
	}
	return thresholds
}

// percentile indexes a sorted, non-empty slice at floor(n*q) without
// interpolation.
func percentile(sorted []float64, q float64) float64 {
	i := int(math.Floor(float64(len(sorted)) * q))
	if i >= len(sorted) {
		i = len(sorted) - 1
	}
	if i < 0 {
		i = 0
	}
	return sorted[i]
}

// MarshalJSON writes NaN percentiles as null; encoding/json rejects NaN.
func (t Threshold) MarshalJSON() ([]byte, error) {
	type wire struct {
		P33   *float64 `json:"p33"`
		P67   *float64 `json:"p67"`
		Empty bool     `json:"empty,omitempty"`
	}
	w := wire{Empty: t.Empty}
	if !math.IsNaN(t.P33) {
		w.P33 = &t.P33
	}
	if !math.IsNaN(t.P67) {
		w.P67 = &t.P67
	}
	return json.Marshal(w)
}
