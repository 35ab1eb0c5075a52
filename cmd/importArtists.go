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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-chart-tools/internal/dataset"
	"github.com/ademuri/spotify-chart-tools/internal/store"
)

var importArtistsReplace bool

var importArtistsCmd = &cobra.Command{
	Use:   "import-artists <csv>",
	Short: "Imports per-artist summaries into the SQLite database",
	Long: `Reads the per-artist summary CSV, from a path or URL, and stores it in
--database so later artist-stats runs do not need --artists.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("database") == "" {
			return fmt.Errorf("required flag(s) \"database\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		err := importArtists(cmd.Context(), os.Stdout, viper.GetString("database"), args[0], importArtistsReplace)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(importArtistsCmd)
	importArtistsCmd.Flags().BoolVar(&importArtistsReplace, "replace", false, "Delete previously imported artists first")
}

func importArtists(ctx context.Context, out io.Writer, dbPath, source string, replace bool) error {
	rows, err := readSource(ctx, newFetcher(), source)
	if err != nil {
		return err
	}
	records := dataset.ArtistRecordsFromRows(rows)

	db, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if replace {
		if err := db.DeleteArtists(); err != nil {
			return err
		}
	}
	saved, err := db.SaveArtistRecords(records)
	if err != nil {
		return fmt.Errorf("importing artists: %w", err)
	}
	total, err := db.CountArtists()
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"source": source, "rows": len(rows), "saved": saved}).Info("Imported artists")
	fmt.Fprintf(out, "Imported %d artists into %s (%d total)\n", saved, dbPath, total)
	return nil
}
