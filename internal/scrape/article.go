// Package scrape pulls article metadata out of news pages so the company
// news form can be prefilled from a pasted link.
package scrape

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// ArticlePreview is what a news page tells us about itself.
type ArticlePreview struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Source      string `json:"source"`
	ImageURL    string `json:"image_url,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	URL         string `json:"url"`
}

// Scraper fetches and parses article pages.
type Scraper struct {
	client *resty.Client
}

// NewScraper builds a scraper with a browser-ish user agent; several news
// portals serve stripped pages to unknown clients.
func NewScraper() *Scraper {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; painelgo/1.0)")
	return &Scraper{client: client}
}

// Preview fetches the page and extracts its Open Graph metadata, falling
// back to plain HTML elements when the tags are missing.
func (s *Scraper) Preview(articleURL string) (*ArticlePreview, error) {
	articleURL = strings.TrimSpace(articleURL)
	if articleURL == "" {
		return nil, fmt.Errorf("URL do artigo não pode ser vazia")
	}

	resp, err := s.client.R().Get(articleURL)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar artigo: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("HTTP %d ao buscar artigo", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("falha ao interpretar HTML: %w", err)
	}

	return extractPreview(doc, articleURL), nil
}

func extractPreview(doc *goquery.Document, articleURL string) *ArticlePreview {
	p := &ArticlePreview{URL: articleURL}

	p.Title = metaContent(doc, "og:title")
	if p.Title == "" {
		p.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if p.Title == "" {
		p.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	p.Summary = metaContent(doc, "og:description")
	if p.Summary == "" {
		if desc, ok := doc.Find("meta[name='description']").Attr("content"); ok {
			p.Summary = strings.TrimSpace(desc)
		}
	}

	p.Source = metaContent(doc, "og:site_name")
	if p.Source == "" {
		if u, err := url.Parse(articleURL); err == nil {
			p.Source = strings.TrimPrefix(u.Host, "www.")
		}
	}

	p.ImageURL = metaContent(doc, "og:image")

	if raw := metaContent(doc, "article:published_time"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			p.PublishedAt = t.Format(time.RFC3339)
		} else {
			p.PublishedAt = raw
		}
	}

	return p
}

func metaContent(doc *goquery.Document, property string) string {
	sel := doc.Find(fmt.Sprintf("meta[property='%s']", property))
	if sel.Length() == 0 {
		return ""
	}
	content, _ := sel.First().Attr("content")
	return strings.TrimSpace(content)
}
