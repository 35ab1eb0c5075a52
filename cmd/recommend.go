/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-chart-tools/internal/analysis"
)

var (
	recommendQuery = analysis.DefaultRecommendQuery()
	recommendSeed  int64
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Suggests songs matching audio characteristics",
	Long: `Picks random distinct songs whose tempo, valence, energy, danceability
and acoustics fall inside the given ranges, optionally restricted to genres
and primary artists. When nothing matches, the closest songs are shown.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return validateRecommendQuery(recommendQuery)
	},
	Run: func(cmd *cobra.Command, args []string) {
		seed := recommendSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		err := withEngine(cmd.Context(), func(engine *analysis.Engine) error {
			return printRecommendations(os.Stdout, engine, recommendQuery, rand.New(rand.NewSource(seed)))
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	flags := recommendCmd.Flags()
	rangeFlags := []struct {
		name string
		r    *analysis.Range
	}{
		{"tempo", &recommendQuery.Tempo},
		{"valence", &recommendQuery.Valence},
		{"energy", &recommendQuery.Energy},
		{"danceability", &recommendQuery.Danceability},
		{"acoustics", &recommendQuery.Acoustics},
	}
	for _, rf := range rangeFlags {
		flags.Float64Var(&rf.r.Min, rf.name+"_min", rf.r.Min, "Minimum "+rf.name)
		flags.Float64Var(&rf.r.Max, rf.name+"_max", rf.r.Max, "Maximum "+rf.name)
	}
	flags.StringSliceVar(&recommendQuery.Genres, "genre", nil, "Genres to pick from (repeatable)")
	flags.StringSliceVar(&recommendQuery.Artists, "artist", nil, "Primary artists to pick from (repeatable)")
	flags.IntVar(&recommendQuery.Limit, "limit", recommendQuery.Limit, "Number of songs to suggest")
	flags.Int64Var(&recommendSeed, "seed", 0, "Random seed; 0 picks one from the clock")
}

func validateRecommendQuery(q analysis.RecommendQuery) error {
	ranges := map[string]analysis.Range{
		"tempo":        q.Tempo,
		"valence":      q.Valence,
		"energy":       q.Energy,
		"danceability": q.Danceability,
		"acoustics":    q.Acoustics,
	}
	for name, r := range ranges {
		if r.Min > r.Max {
			return fmt.Errorf("%s_min %v is above %s_max %v", name, r.Min, name, r.Max)
		}
	}
	if q.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", q.Limit)
	}
	return nil
}

func printRecommendations(out io.Writer, engine *analysis.Engine, q analysis.RecommendQuery, rng *rand.Rand) error {
	recs := engine.Recommend(q, rng)
	table := newAnalysis("Song", "Artist", "Genre", "Tempo", "Energy", "Valence", "Score", "URI")
	exact := true
	for _, r := range recs {
		table.add(r.Title, r.Artist, r.Genre, formatFloat(r.Tempo), formatFloat(r.Energy), formatFloat(r.Valence), formatFloat(r.Score), r.URI)
		if r.Score < 1 {
			exact = false
		}
	}
	switch {
	case len(recs) == 0:
		table.summary = "No songs found"
	case exact:
		table.summary = fmt.Sprintf("%d matching songs", len(recs))
	default:
		table.summary = fmt.Sprintf("No exact matches, showing the %d closest songs", len(recs))
	}
	fmt.Fprint(out, table.String())
	return nil
}
