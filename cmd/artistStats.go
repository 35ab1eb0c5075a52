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
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-chart-tools/internal/analysis"
	"github.com/ademuri/spotify-chart-tools/internal/dataset"
)

var artistStatsFormat string

var artistStatsCmd = &cobra.Command{
	Use:   "artist-stats <artist>",
	Short: "Shows the precomputed summary of one artist",
	Long: `Looks the artist up by exact name in the artist summaries, read from
--artists or from a database filled by import-artists.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return checkFormat(artistStatsFormat)
	},
	Run: func(cmd *cobra.Command, args []string) {
		err := withEngine(cmd.Context(), func(engine *analysis.Engine) error {
			return printArtistStats(os.Stdout, engine, args[0], artistStatsFormat)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(artistStatsCmd)
	artistStatsCmd.Flags().StringVar(&artistStatsFormat, "format", formatTable, "Output format: table or yaml")
}

func printArtistStats(out io.Writer, engine *analysis.Engine, artist, format string) error {
	stats, err := engine.ArtistStats(artist)
	if err != nil {
		return err
	}
	if stats == nil {
		return fmt.Errorf("artist %q not found", strings.TrimSpace(artist))
	}
	if format == formatYAML {
		return writeYAML(out, struct {
			analysis.ArtistStats `yaml:",inline"`
			Ranks                analysis.RankSummary `yaml:"ranks"`
		}{*stats, stats.RankSummary()})
	}

	ranks := stats.RankSummary()
	fmt.Fprintf(out, "%s: popularity %s, %d songs, %d tracks\n", stats.Artist, formatFloat(stats.Popularity), stats.SongCount, stats.TrackCount)
	fmt.Fprintf(out, "Best rank %d, %d tracks in the top 10, %d in the top 50\n\n", ranks.Best, stats.Top10Count, stats.Top50Count)

	attrs := newAnalysis("Attribute", "Value")
	for _, attr := range dataset.AllAttributes {
		attrs.add(string(attr), formatFloat(stats.Attributes[attr]))
	}
	fmt.Fprint(out, attrs.String())

	if len(stats.PeakRanks) == 0 {
		return nil
	}
	tracks := newAnalysis("Track", "Peak rank", "URI")
	for i, rank := range stats.PeakRanks {
		tracks.add(indexOr(stats.Titles, i), fmt.Sprint(rank), indexOr(stats.URIs, i))
	}
	tracks.summary = fmt.Sprintf("%d charted tracks", ranks.Total)
	fmt.Fprint(out, tracks.String())
	return nil
}

func indexOr(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
