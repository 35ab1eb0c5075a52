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
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Analysis is a rendered table: a header row, data rows and a summary line.
type Analysis struct {
	name    string
	results [][]string
	summary string
}

func newAnalysis(header ...string) *Analysis {
	return &Analysis{results: [][]string{header}}
}

func (a *Analysis) add(row ...string) {
	a.results = append(a.results, row)
}

func (a *Analysis) rows() int {
	return len(a.results) - 1
}

func (a Analysis) String() string {
	out := new(bytes.Buffer)
	if a.name != "" {
		fmt.Fprintf(out, "%s\n", a.name)
	}
	table := tablewriter.NewWriter(out)
	table.Header(a.results[0])
	for _, row := range a.results[1:] {
		if err := table.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	if a.summary != "" {
		fmt.Fprintf(out, "%s\n", a.summary)
	}
	return out.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func formatPercent(f float64) string {
	return formatFloat(f) + "%"
}

const (
	formatTable = "table"
	formatYAML  = "yaml"
)

func checkFormat(format string) error {
	if format != formatTable && format != formatYAML {
		return fmt.Errorf("unknown format %q, expected %q or %q", format, formatTable, formatYAML)
	}
	return nil
}

func writeYAML(out io.Writer, v any) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return encoder.Close()
}
