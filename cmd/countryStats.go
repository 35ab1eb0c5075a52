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

	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-chart-tools/internal/analysis"
	"github.com/ademuri/spotify-chart-tools/internal/dataset"
)

var countryStatsFormat string

var countryStatsCmd = &cobra.Command{
	Use:   "country-stats <country>",
	Short: "Summarizes the chart songs of one country",
	Long: `Shows total and average popularity, the top genres, artists and songs,
and the low/medium/high distribution of each audio characteristic.
Levels use cutoffs computed over the whole dataset.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return checkFormat(countryStatsFormat)
	},
	Run: func(cmd *cobra.Command, args []string) {
		err := withEngine(cmd.Context(), func(engine *analysis.Engine) error {
			return printCountryStats(os.Stdout, engine, args[0], countryStatsFormat)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(countryStatsCmd)
	countryStatsCmd.Flags().StringVar(&countryStatsFormat, "format", formatTable, "Output format: table or yaml")
}

func printCountryStats(out io.Writer, engine *analysis.Engine, country, format string) error {
	stats := engine.CountryStats(country)
	if format == formatYAML {
		return writeYAML(out, stats)
	}

	fmt.Fprintf(out, "%s: %d songs, total popularity %s, average %s\n\n",
		stats.Country, stats.TotalSongs, formatFloat(stats.TotalPopularity), formatFloat(stats.AvgPopularity))
	if stats.TotalSongs == 0 {
		return nil
	}

	for _, table := range countryAnalyses(engine, stats) {
		fmt.Fprint(out, table.String())
	}
	return nil
}

// countryAnalyses renders the stats of a non-empty country as tables.
func countryAnalyses(engine *analysis.Engine, stats analysis.CountryStats) []*Analysis {
	genres := newAnalysis("Genre", "Songs", "Share")
	genres.name = "Top genres"
	for _, g := range stats.TopGenres {
		genres.add(g.Genre, fmt.Sprint(g.Songs), formatPercent(g.Percentage))
	}

	artists := newAnalysis("Artist", "Popularity", "Songs", "Average")
	artists.name = "Top artists"
	for _, a := range stats.TopArtists {
		artists.add(a.Artist, formatFloat(a.Popularity), fmt.Sprint(a.Songs), formatFloat(a.AvgPopularity))
	}

	songs := newAnalysis("Song", "Artist", "Popularity")
	songs.name = "Top songs"
	for _, s := range stats.TopSongs {
		songs.add(s.Title, s.Artist, formatFloat(s.Popularity))
	}

	thresholds := engine.Thresholds()
	levels := newAnalysis("Attribute", "Low", "Medium", "High", "P33", "P67")
	levels.name = "Characteristics"
	for _, attr := range dataset.BucketAttributes {
		d := stats.Distributions[attr]
		t := thresholds[attr]
		levels.add(string(attr), formatPercent(d.Low), formatPercent(d.Medium), formatPercent(d.High),
			formatFloat(t.P33), formatFloat(t.P67))
	}
	levels.summary = "Levels use cutoffs computed over the whole dataset"

	return []*Analysis{genres, artists, songs, levels}
}
