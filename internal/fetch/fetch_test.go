package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestFetcher(opts ...Option) *Fetcher {
	opts = append([]Option{WithRate(0), WithDelay(time.Millisecond), WithLogger(quietLogger())}, opts...)
	return New(opts...)
}

func readAll(t *testing.T, r io.ReadCloser) string {
	t.Helper()
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return string(b)
}

func TestOpenLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts.csv")
	if err := os.WriteFile(path, []byte("Country\nSpain\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r, err := newTestFetcher().Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open(%s) error: %v", path, err)
	}
	if got := readAll(t, r); got != "Country\nSpain\n" {
		t.Errorf("Expected file contents, got %q", got)
	}

	if _, err := newTestFetcher().Open(context.Background(), filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Errorf("Expected error for missing file")
	}
}

func TestOpenRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("Country\n"))
	}))
	defer server.Close()

	r, err := newTestFetcher(WithAttempts(3)).Open(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if got := readAll(t, r); got != "Country\n" {
		t.Errorf("Expected body, got %q", got)
	}
	if calls.Load() != 3 {
		t.Errorf("Expected 3 requests, got %d", calls.Load())
	}
}

func TestOpenDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestFetcher(WithAttempts(5)).Open(context.Background(), server.URL)
	var serr *StatusError
	if !errors.As(err, &serr) || serr.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 StatusError, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("Expected a single request, got %d", calls.Load())
	}
}

func TestOpenGivesUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := newTestFetcher(WithAttempts(2)).Open(context.Background(), server.URL); err == nil {
		t.Errorf("Expected error after exhausting attempts")
	}
}

func TestIsRemote(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/a.csv": true,
		"http://localhost/a.csv":    true,
		"data/a.csv":                false,
		"/tmp/http.csv":             false,
	}
	for source, want := range tests {
		if got := IsRemote(source); got != want {
			t.Errorf("IsRemote(%q) = %v, want %v", source, got, want)
		}
	}
}
