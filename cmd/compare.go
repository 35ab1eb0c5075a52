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

var compareCmd = &cobra.Command{
	Use:   "compare <country>",
	Short: "Compares a country's average characteristics to the whole dataset",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withEngine(cmd.Context(), func(engine *analysis.Engine) error {
			return printCompare(os.Stdout, engine, args[0])
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func printCompare(out io.Writer, engine *analysis.Engine, country string) error {
	comparisons := engine.CompareCountry(country)
	table := newAnalysis("Attribute", country, "Global", "Difference")
	for _, c := range comparisons {
		table.add(string(c.Attribute), formatFloat(c.Country), formatFloat(c.Global), fmt.Sprintf("%+.2f%%", c.Difference))
	}
	table.summary = fmt.Sprintf("%d songs in %s", engine.CountryStats(country).TotalSongs, country)
	fmt.Fprint(out, table.String())
	return nil
}
