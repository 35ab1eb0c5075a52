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
)

var listKinds = []string{"countries", "genres", "genres_simplified", "artists", "songs"}

var listCmd = &cobra.Command{
	Use:   "list <countries|genres|genres_simplified|artists|songs>",
	Short: "Lists distinct values in the dataset",
	Long: `Prints one value per line, sorted. Countries are only listed when they
have at least --min_country_songs songs.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: listKinds,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		for _, kind := range listKinds {
			if args[0] == kind {
				return nil
			}
		}
		return fmt.Errorf("unknown list %q, expected one of %s", args[0], strings.Join(listKinds, ", "))
	},
	Run: func(cmd *cobra.Command, args []string) {
		err := withEngine(cmd.Context(), func(engine *analysis.Engine) error {
			return printList(os.Stdout, engine, args[0])
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func printList(out io.Writer, engine *analysis.Engine, kind string) error {
	var values []string
	switch kind {
	case "countries":
		values = engine.ListCountries()
	case "genres":
		values = engine.ListGenres()
	case "genres_simplified":
		values = engine.ListGenresSimplified()
	case "artists":
		values = engine.ListArtists()
	case "songs":
		values = engine.ListSongs()
	default:
		return fmt.Errorf("unknown list %q", kind)
	}
	for _, v := range values {
		fmt.Fprintln(out, v)
	}
	return nil
}
