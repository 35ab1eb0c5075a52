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

var (
	overviewNumber int
	overviewFormat string
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Summarizes the whole dataset",
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return checkFormat(overviewFormat)
	},
	Run: func(cmd *cobra.Command, args []string) {
		err := withEngine(cmd.Context(), func(engine *analysis.Engine) error {
			return printOverview(os.Stdout, engine, overviewNumber, overviewFormat)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
	overviewCmd.Flags().IntVarP(&overviewNumber, "number", "n", 5, "number of entries per ranking")
	overviewCmd.Flags().StringVar(&overviewFormat, "format", formatTable, "Output format: table or yaml")
}

func printOverview(out io.Writer, engine *analysis.Engine, n int, format string) error {
	o := engine.Overview(n)
	if format == formatYAML {
		return writeYAML(out, o)
	}

	counts := newAnalysis("Records", "Countries", "Genres", "Simplified genres", "Artists", "Songs")
	counts.add(fmt.Sprint(o.Records), fmt.Sprint(o.Countries), fmt.Sprint(o.Genres),
		fmt.Sprint(o.GenresSimplified), fmt.Sprint(o.Artists), fmt.Sprint(o.Songs))
	fmt.Fprint(out, counts.String())

	rankings := []struct {
		name    string
		entries []analysis.Entry
	}{
		{"Artist", o.TopArtists},
		{"Song", o.TopSongs},
		{"Genre", o.TopGenres},
		{"Simplified genre", o.TopGenresSimplified},
	}
	for _, r := range rankings {
		table := newAnalysis(r.name, "Popularity")
		for _, e := range r.entries {
			table.add(e.Key, formatFloat(e.Value))
		}
		fmt.Fprint(out, table.String())
	}
	return nil
}
