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

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/ademuri/spotify-chart-tools/internal/analysis"
	"github.com/ademuri/spotify-chart-tools/internal/dataset"
	"github.com/ademuri/spotify-chart-tools/internal/fetch"
	"github.com/ademuri/spotify-chart-tools/internal/store"
)

// Sources says where the dataset and the artist summaries come from.
// Artists wins over Database when both are set.
type Sources struct {
	Dataset         string
	Artists         string
	Database        string
	MinCountrySongs int
}

func configuredSources() Sources {
	return Sources{
		Dataset:         viper.GetString("dataset"),
		Artists:         viper.GetString("artists"),
		Database:        viper.GetString("database"),
		MinCountrySongs: viper.GetInt("min_country_songs"),
	}
}

func newFetcher() *fetch.Fetcher {
	return fetch.New(
		fetch.WithRate(viper.GetFloat64("fetch_rate")),
		fetch.WithAttempts(viper.GetUint("fetch_attempts")),
		fetch.WithLogger(logrus.StandardLogger()),
	)
}

func readSource(ctx context.Context, f *fetch.Fetcher, source string) ([]dataset.RawRow, error) {
	in, err := f.Open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	rows, err := dataset.ReadRows(in)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	return rows, nil
}

// loadEngine reads the song dataset and the artist source concurrently and
// builds the engine. The returned close function releases the artist
// database, if one was opened, and must be called once the engine is done.
func loadEngine(ctx context.Context, src Sources) (*analysis.Engine, func() error, error) {
	if src.Dataset == "" {
		return nil, nil, fmt.Errorf("required flag(s) \"dataset\" not set")
	}
	f := newFetcher()
	closeFn := func() error { return nil }

	var songs []dataset.Song
	var artists analysis.ArtistSource
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := readSource(gctx, f, src.Dataset)
		if err != nil {
			return fmt.Errorf("loading dataset: %w", err)
		}
		songs = dataset.NormalizeAll(rows)
		logrus.WithFields(logrus.Fields{"source": src.Dataset, "rows": len(rows)}).Info("Loaded dataset")
		return nil
	})
	g.Go(func() error {
		switch {
		case src.Artists != "":
			rows, err := readSource(gctx, f, src.Artists)
			if err != nil {
				return fmt.Errorf("loading artists: %w", err)
			}
			records := dataset.ArtistRecordsFromRows(rows)
			artists = analysis.NewArtistTable(records)
			logrus.WithFields(logrus.Fields{"source": src.Artists, "artists": len(records)}).Info("Loaded artist summaries")
		case src.Database != "":
			db, err := store.New(src.Database)
			if err != nil {
				return fmt.Errorf("opening artist database: %w", err)
			}
			artists = db
			closeFn = db.Close
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		closeFn()
		return nil, nil, err
	}

	opts := []analysis.Option{analysis.WithLogger(logrus.StandardLogger())}
	if src.MinCountrySongs > 0 {
		opts = append(opts, analysis.WithMinCountrySongs(src.MinCountrySongs))
	}
	return analysis.New(songs, artists, opts...), closeFn, nil
}

// withEngine loads the configured sources, runs fn and releases them.
func withEngine(ctx context.Context, fn func(*analysis.Engine) error) error {
	engine, closeFn, err := loadEngine(ctx, configuredSources())
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(engine)
}
