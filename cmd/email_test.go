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
	"strings"
	"testing"
)

func TestGenerateEmailContent(t *testing.T) {
	engine := createTestEngine(t)

	subject, body := generateEmailContent(engine, []string{"Spain", "Atlantis"})
	if subject != "Spotify chart report for Spain, Atlantis" {
		t.Errorf("Unexpected subject %q", subject)
	}
	for _, want := range []string{
		"<h2>Spain</h2>",
		"<th>Artist</th>",
		"<td>Rosalía</td>",
		"<h3>Compared to all countries</h3>",
		"<h2>Atlantis</h2>\n<div>No songs found.</div>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q:\n%s", want, body)
		}
	}
}

func TestSendEmailDryRun(t *testing.T) {
	engine := createTestEngine(t)

	out := new(bytes.Buffer)
	config := SendEmailConfig{
		From:      "charts@example.com",
		To:        "test@example.com",
		Countries: []string{"Japan"},
		DryRun:    true,
	}
	if err := sendEmail(out, engine, config); err != nil {
		t.Fatalf("sendEmail: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Would have sent email: \nsubject: Spotify chart report for Japan") {
		t.Errorf("Unexpected dry run output:\n%s", out.String())
	}
}

func TestSendEmailRequiresAPIKey(t *testing.T) {
	engine := createTestEngine(t)

	config := SendEmailConfig{
		From:      "charts@example.com",
		To:        "test@example.com",
		Countries: []string{"Japan"},
	}
	err := sendEmail(new(bytes.Buffer), engine, config)
	if err == nil || !strings.Contains(err.Error(), "sendgrid_api_key") {
		t.Errorf("Expected missing API key error, got %v", err)
	}
}

func TestEscapesHTML(t *testing.T) {
	a := newAnalysis("Song")
	a.add("<b>Loud</b>")
	var b strings.Builder
	writeHTMLTable(&b, a)
	if strings.Contains(b.String(), "<b>") || !strings.Contains(b.String(), "&lt;b&gt;Loud&lt;/b&gt;") {
		t.Errorf("Expected escaped cell:\n%s", b.String())
	}
}
