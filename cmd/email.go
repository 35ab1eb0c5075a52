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
	"html"
	"io"
	"os"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-chart-tools/internal/analysis"
)

type SendEmailConfig struct {
	From      string
	To        string
	Countries []string
	DryRun    bool
	APIKey    string
}

var emailCmd = &cobra.Command{
	Use:   "email <address> <country...>",
	Short: "Emails country reports",
	Long: `Emails the country-stats report of each listed country, with the
characteristics comparison, to <address> through SendGrid.`,
	Args: cobra.MinimumNArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		config := SendEmailConfig{
			From:      viper.GetString("from"),
			To:        args[0],
			Countries: args[1:],
			DryRun:    viper.GetBool("dryRun"),
			APIKey:    viper.GetString("sendgrid_api_key"),
		}
		err := withEngine(cmd.Context(), func(engine *analysis.Engine) error {
			return sendEmail(os.Stdout, engine, config)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	var dryRun bool
	emailCmd.Flags().BoolVarP(&dryRun, "dry_run", "n", false, "When true, just print instead of emailing")
	viper.BindPFlag("dryRun", emailCmd.Flags().Lookup("dry_run"))
}

func sendEmail(out io.Writer, engine *analysis.Engine, config SendEmailConfig) error {
	subject, body := generateEmailContent(engine, config.Countries)

	if config.DryRun {
		fmt.Fprintf(out, "Would have sent email: \nsubject: %s\n%s\n", subject, body)
		return nil
	}
	if config.APIKey == "" {
		return fmt.Errorf("sendgrid_api_key must be set in order to send emails")
	}

	from := mail.NewEmail("spotify-chart-tools", config.From)
	to := mail.NewEmail(config.To, config.To)
	message := mail.NewSingleEmail(from, subject, to, subject, body)
	client := sendgrid.NewSendClient(config.APIKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendEmail: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("sendEmail: SendGrid returned %d: %s", resp.StatusCode, resp.Body)
	}
	logrus.WithFields(logrus.Fields{"to": config.To, "countries": len(config.Countries)}).Info("Sent email")
	fmt.Fprintf(out, "Sent %q to %s\n", subject, config.To)
	return nil
}

func generateEmailContent(engine *analysis.Engine, countries []string) (subject string, body string) {
	var b strings.Builder
	b.WriteString(`
<html>
  <head>
<style>
td {
  padding: 0.1em 0.2em;
}
table, th, td {
  border: 1px solid black;
  border-collapse: collapse;
}
</style>
  </head>
  <body>
`)
	for _, country := range countries {
		stats := engine.CountryStats(country)
		fmt.Fprintf(&b, "<div>\n<h2>%s</h2>\n", html.EscapeString(stats.Country))
		if stats.TotalSongs == 0 {
			b.WriteString("<div>No songs found.</div>\n</div>\n")
			continue
		}
		fmt.Fprintf(&b, "<div>%d songs, average popularity %s</div>\n", stats.TotalSongs, formatFloat(stats.AvgPopularity))

		tables := countryAnalyses(engine, stats)
		comparison := newAnalysis("Attribute", stats.Country, "Global", "Difference")
		comparison.name = "Compared to all countries"
		for _, c := range engine.CompareCountry(country) {
			comparison.add(string(c.Attribute), formatFloat(c.Country), formatFloat(c.Global), fmt.Sprintf("%+.2f%%", c.Difference))
		}
		for _, table := range append(tables, comparison) {
			writeHTMLTable(&b, table)
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("  </body>\n</html>\n")

	subject = "Spotify chart report for " + strings.Join(countries, ", ")
	return subject, b.String()
}

func writeHTMLTable(b *strings.Builder, a *Analysis) {
	if a.name != "" {
		fmt.Fprintf(b, "<h3>%s</h3>\n", html.EscapeString(a.name))
	}
	b.WriteString("<table>\n<thead>\n<tr>\n")
	for _, header := range a.results[0] {
		fmt.Fprintf(b, "<th>%s</th>", html.EscapeString(header))
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range a.results[1:] {
		b.WriteString("<tr>\n")
		for _, column := range row {
			fmt.Fprintf(b, "<td>%s</td>\n", html.EscapeString(column))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n")
	if a.summary != "" {
		fmt.Fprintf(b, "<div>%s</div>\n", html.EscapeString(a.summary))
	}
}
