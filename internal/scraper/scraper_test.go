package scraper_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/poornaderedla/twain-backend/internal/scraper"
)

func TestExtractTextPrefersMainContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<nav><p>Menu item that should be ignored</p></nav>
			<main>
				<h1>Acme Logistics</h1>
				<p>We move freight faster.</p>
				<li>Same-day dispatch</li>
			</main>
		</body></html>`))
	}))
	defer srv.Close()

	s := scraper.New(time.Second)
	text := s.ExtractText(context.Background(), srv.URL)

	for _, want := range []string{"Acme Logistics", "We move freight faster.", "Same-day dispatch"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in extracted text, got %q", want, text)
		}
	}
	if strings.Contains(text, "Menu item") {
		t.Errorf("nav content leaked into extraction: %q", text)
	}
}

func TestExtractTextFallsBackWithoutMainContainers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<h2>Pricing</h2>
			<p>Starts at $10 a month.</p>
		</body></html>`))
	}))
	defer srv.Close()

	s := scraper.New(time.Second)
	text := s.ExtractText(context.Background(), srv.URL)

	if !strings.Contains(text, "Pricing") || !strings.Contains(text, "Starts at $10 a month.") {
		t.Errorf("fallback extraction missed content: %q", text)
	}
}

func TestExtractTextReturnsEmptyOnFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	s := scraper.New(time.Second)
	if text := s.ExtractText(context.Background(), srv.URL); text != "" {
		t.Errorf("expected empty text on fetch failure, got %q", text)
	}
}

func TestExtractTextReturnsEmptyOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	s := scraper.New(time.Second)
	if text := s.ExtractText(context.Background(), srv.URL); text != "" {
		t.Errorf("expected empty text on 403, got %q", text)
	}
}
