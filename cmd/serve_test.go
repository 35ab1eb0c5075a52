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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
)

func serveTestRequest(t *testing.T, router *gin.Engine, path string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("GET %s: decoding %q: %v", path, w.Body.String(), err)
	}
	return w.Code, body
}

func TestServeCountryStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newRouter(createTestEngine(t))

	code, body := serveTestRequest(t, router, "/api/v1/countries/Spain")
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if body["country"] != "Spain" || body["total_songs"] != float64(3) {
		t.Errorf("Unexpected body %v", body)
	}

	code, body = serveTestRequest(t, router, "/api/v1/countries")
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if values, ok := body["values"].([]any); !ok || len(values) != 2 {
		t.Errorf("Unexpected countries %v", body)
	}
}

func TestServeArtistStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newRouter(createTestEngine(t))

	code, body := serveTestRequest(t, router, "/api/v1/artists/"+url.PathEscape("Rosalía"))
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %v", code, body)
	}
	ranks, ok := body["ranks"].(map[string]any)
	if !ok || ranks["best"] != float64(2) {
		t.Errorf("Unexpected ranks %v", body["ranks"])
	}

	code, _ = serveTestRequest(t, router, "/api/v1/artists/Nobody")
	if code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", code)
	}
}

func TestServeTopAndThresholds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newRouter(createTestEngine(t))

	code, body := serveTestRequest(t, router, "/api/v1/top/genre?n=1")
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	entries, ok := body["entries"].([]any)
	if !ok || len(entries) != 1 {
		t.Fatalf("Unexpected entries %v", body)
	}
	if top := entries[0].(map[string]any); top["key"] != "Latin Pop" {
		t.Errorf("Unexpected top genre %v", top)
	}

	code, _ = serveTestRequest(t, router, "/api/v1/top/album")
	if code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown field, got %d", code)
	}

	code, body = serveTestRequest(t, router, "/api/v1/thresholds")
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if _, ok := body["tempo"].(map[string]any); !ok {
		t.Errorf("Expected tempo thresholds, got %v", body)
	}
}

func TestServeRecommend(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newRouter(createTestEngine(t))

	code, body := serveTestRequest(t, router, "/api/v1/recommend?genre=latin+pop&seed=3&limit=1")
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %v", code, body)
	}
	recs, ok := body["recommendations"].([]any)
	if !ok || len(recs) != 1 {
		t.Errorf("Unexpected recommendations %v", body)
	}

	code, _ = serveTestRequest(t, router, "/api/v1/recommend?energy_min=0.9&energy_max=0.1")
	if code != http.StatusBadRequest {
		t.Errorf("Expected 400 for inverted range, got %d", code)
	}
	code, _ = serveTestRequest(t, router, "/api/v1/recommend?tempo_min=fast")
	if code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid number, got %d", code)
	}
}

func TestServePopularity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newRouter(createTestEngine(t))

	code, body := serveTestRequest(t, router, "/api/v1/popularity?artist=yoasobi")
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	countries, ok := body["countries"].([]any)
	if !ok || len(countries) != 2 {
		t.Fatalf("Unexpected countries %v", body)
	}
	japan := countries[0].(map[string]any)
	if japan["country"] != "Japan" || japan["popularity"] != float64(90) {
		t.Errorf("Unexpected Japan entry %v", japan)
	}
}
