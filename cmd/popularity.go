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
)

var popularityFilter analysis.PopularityFilter

var countryPopularityCmd = &cobra.Command{
	Use:   "country-popularity",
	Short: "Shows average popularity per country",
	Long: `Averages song popularity per country, optionally only over songs of a
genre, a primary artist or a title. Countries without matching songs show 0.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := withEngine(cmd.Context(), func(engine *analysis.Engine) error {
			return printCountryPopularity(os.Stdout, engine, popularityFilter)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(countryPopularityCmd)
	countryPopularityCmd.Flags().StringVar(&popularityFilter.Genre, "genre", "", "Only count songs of this genre")
	countryPopularityCmd.Flags().StringVar(&popularityFilter.Artist, "artist", "", "Only count songs by this primary artist")
	countryPopularityCmd.Flags().StringVar(&popularityFilter.Song, "song", "", "Only count songs with this title")
}

func printCountryPopularity(out io.Writer, engine *analysis.Engine, filter analysis.PopularityFilter) error {
	table := newAnalysis("Country", "Songs", "Popularity")
	matched := 0
	for _, cp := range engine.CountryPopularity(filter) {
		table.add(cp.Country, fmt.Sprint(cp.Songs), formatFloat(cp.Popularity))
		if cp.Songs > 0 {
			matched++
		}
	}
	table.summary = fmt.Sprintf("%d of %d countries have matching songs", matched, table.rows())
	fmt.Fprint(out, table.String())
	return nil
}
