package scrape

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
<title>Fallback title | Portal</title>
<meta property="og:title" content="Petrobras anuncia dividendos">
<meta property="og:description" content="Conselho aprova distribuição extraordinária.">
<meta property="og:site_name" content="InfoMoney">
<meta property="og:image" content="https://img.example/capa.jpg">
<meta property="article:published_time" content="2024-06-19T18:30:00Z">
</head>
<body><h1>Outro título</h1></body>
</html>`

const bareBonesPage = `<!DOCTYPE html>
<html>
<head><title>Só o title | Portal</title>
<meta name="description" content="Descrição simples.">
</head>
<body><h1>Manchete no corpo</h1></body>
</html>`

func TestPreviewReadsOpenGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	p, err := NewScraper().Preview(srv.URL + "/noticia")
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if p.Title != "Petrobras anuncia dividendos" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.Summary != "Conselho aprova distribuição extraordinária." {
		t.Errorf("Summary = %q", p.Summary)
	}
	if p.Source != "InfoMoney" {
		t.Errorf("Source = %q", p.Source)
	}
	if p.ImageURL != "https://img.example/capa.jpg" {
		t.Errorf("ImageURL = %q", p.ImageURL)
	}
	if p.PublishedAt != "2024-06-19T18:30:00Z" {
		t.Errorf("PublishedAt = %q", p.PublishedAt)
	}
}

func TestPreviewFallsBackWithoutOpenGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(bareBonesPage))
	}))
	defer srv.Close()

	p, err := NewScraper().Preview(srv.URL + "/noticia")
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if p.Title != "Manchete no corpo" {
		t.Errorf("Title = %q, want h1 fallback", p.Title)
	}
	if p.Summary != "Descrição simples." {
		t.Errorf("Summary = %q", p.Summary)
	}
	if p.Source == "" {
		t.Error("Source should fall back to the host")
	}
}

func TestPreviewRejectsEmptyURL(t *testing.T) {
	if _, err := NewScraper().Preview("  "); err == nil {
		t.Fatal("expected error for empty URL")
	}
}

func TestPreviewReportsHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := NewScraper().Preview(srv.URL); err == nil {
		t.Fatal("expected error for 403 response")
	}
}
