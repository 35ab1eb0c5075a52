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

var topNNumber int

var topNCmd = &cobra.Command{
	Use:   "top-n <artist|song|genre|genre_simplified>",
	Short: "Ranks the whole dataset by summed popularity",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := analysis.ParseField(args[0])
		return err
	},
	Run: func(cmd *cobra.Command, args []string) {
		err := withEngine(cmd.Context(), func(engine *analysis.Engine) error {
			return printTopN(os.Stdout, engine, args[0], topNNumber)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topNCmd)
	topNCmd.Flags().IntVarP(&topNNumber, "number", "n", 10, "number of results to return")
}

func printTopN(out io.Writer, engine *analysis.Engine, fieldName string, n int) error {
	field, err := analysis.ParseField(fieldName)
	if err != nil {
		return err
	}

	entries := engine.Top(field, n)
	table := newAnalysis("Rank", string(field), "Popularity")
	for i, e := range entries {
		table.add(fmt.Sprint(i+1), e.Key, formatFloat(e.Value))
	}
	table.summary = fmt.Sprintf("Top %d of %d songs by summed popularity", table.rows(), len(engine.Index().Songs()))
	fmt.Fprint(out, table.String())
	return nil
}
