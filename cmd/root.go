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
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-chart-tools/internal/analysis"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spotify-chart-tools",
	Short: "Explores the Spotify chart dataset",
	Long: `Aggregates the Spotify chart dataset per country, per artist and
across the whole dataset: popularity rankings, audio characteristic
distributions, comparisons and recommendations.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.spotify-chart-tools.yaml)")

	flags := rootCmd.PersistentFlags()
	flags.String("dataset", "./data/final_data.csv", "Path or URL of the song dataset CSV")
	flags.String("artists", "", "Path or URL of the per-artist summary CSV")
	flags.StringP("database", "d", "", "Path to a SQLite database holding imported artist summaries")
	flags.Int("min_country_songs", analysis.DefaultMinCountrySongs, "Minimum songs for a country to be listed")
	flags.String("log_level", "warning", "Log level (debug, info, warning, error)")
	flags.String("sendgrid_api_key", "", "SendGrid API key used by email")
	flags.String("from", "", "From email address")
	flags.Float64("fetch_rate", 1, "Maximum remote fetches per second; 0 disables limiting")
	flags.Uint("fetch_attempts", 3, "Attempts per remote fetch")

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		viper.BindPFlag(f.Name, f)
	})
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".spotify-chart-tools" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".spotify-chart-tools")
	}

	viper.SetEnvPrefix("SPOTIFY_CHARTS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	configureLogging(viper.GetString("log_level"))
}

func configureLogging(level string) {
	logrus.SetOutput(os.Stderr)
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("log_level", level).Warn("Unknown log level, using warning")
		parsed = logrus.WarnLevel
	}
	logrus.SetLevel(parsed)
}
