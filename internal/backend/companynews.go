package backend

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/painelfin/painelgo/internal/models"
)

// Fixed failure messages for the company-news domain.
const (
	msgCompanyNewsList    = "Falha ao buscar notícias da empresa"
	msgCompanyNewsCreate  = "Falha ao criar notícia da empresa"
	msgCompanyNewsUpdate  = "Falha ao atualizar notícia da empresa"
	msgCompanyNewsRemove  = "Falha ao remover notícia da empresa"
	msgCompanyNewsTickers = "Falha ao buscar tickers acompanhados"
)

// CompanyNewsService manages user-curated articles per ticker. This is the
// only backend entity the dashboard creates and deletes.
type CompanyNewsService struct {
	rest *resty.Client
}

// CreateCompanyNews is the write shape for Create: the normalized item minus
// the server-assigned ID, plus the owning ticker.
type CreateCompanyNews struct {
	Ticker        string `json:"ticker"`
	URL           string `json:"url"`
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	Source        string `json:"source"`
	PublishedDate string `json:"published_date,omitempty"`
}

// UpdateCompanyNews carries the editable fields for Update; empty fields are
// omitted from the request.
type UpdateCompanyNews struct {
	URL           string `json:"url,omitempty"`
	Title         string `json:"title,omitempty"`
	Summary       string `json:"summary,omitempty"`
	Source        string `json:"source,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`
}

// Tickers lists the tickers that have curated news.
func (s *CompanyNewsService) Tickers(ctx context.Context) ([]string, error) {
	resp, err := s.rest.R().SetContext(ctx).Get("/company-news/tickers")
	if err != nil {
		return nil, transportError("company-news.tickers", msgCompanyNewsTickers, err)
	}
	if !resp.IsSuccess() {
		return nil, apiError("company-news.tickers", msgCompanyNewsTickers, resp)
	}

	var body struct {
		Tickers []string `json:"tickers"`
	}
	if err := unmarshalBody(resp.Body(), &body); err != nil {
		return nil, transportError("company-news.tickers", msgCompanyNewsTickers, err)
	}
	return body.Tickers, nil
}

// List returns the curated articles for a ticker. Zero stored items is a
// success with an empty slice, never an error.
func (s *CompanyNewsService) List(ctx context.Context, ticker string) ([]models.CompanyNewsItem, error) {
	resp, err := s.rest.R().SetContext(ctx).Get("/company-news/" + ticker)
	if err != nil {
		return nil, transportError("company-news.list", msgCompanyNewsList, err)
	}
	if !resp.IsSuccess() {
		return nil, apiError("company-news.list", msgCompanyNewsList, resp)
	}

	items, err := unwrapList(resp.Body(), "news", "data")
	if err != nil {
		return nil, transportError("company-news.list", msgCompanyNewsList, err)
	}

	out := make([]models.CompanyNewsItem, 0, len(items))
	for _, it := range items {
		out = append(out, normalizeCompanyNews(it))
	}
	return out, nil
}

// Create submits a new article and returns it with the server-assigned ID.
func (s *CompanyNewsService) Create(ctx context.Context, payload CreateCompanyNews) (models.CompanyNewsItem, error) {
	resp, err := s.rest.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/company-news")
	if err != nil {
		return models.CompanyNewsItem{}, transportError("company-news.create", msgCompanyNewsCreate, err)
	}
	if !resp.IsSuccess() {
		return models.CompanyNewsItem{}, apiError("company-news.create", msgCompanyNewsCreate, resp)
	}

	it, err := unwrapObject(resp.Body(), "news", "data")
	if err != nil {
		return models.CompanyNewsItem{}, transportError("company-news.create", msgCompanyNewsCreate, err)
	}
	return normalizeCompanyNews(it), nil
}

// Update edits an existing article.
func (s *CompanyNewsService) Update(ctx context.Context, id int64, payload UpdateCompanyNews) (models.CompanyNewsItem, error) {
	resp, err := s.rest.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Put(fmt.Sprintf("/company-news/%d", id))
	if err != nil {
		return models.CompanyNewsItem{}, transportError("company-news.update", msgCompanyNewsUpdate, err)
	}
	if !resp.IsSuccess() {
		return models.CompanyNewsItem{}, apiError("company-news.update", msgCompanyNewsUpdate, resp)
	}

	it, err := unwrapObject(resp.Body(), "news", "data")
	if err != nil {
		return models.CompanyNewsItem{}, transportError("company-news.update", msgCompanyNewsUpdate, err)
	}
	return normalizeCompanyNews(it), nil
}

// Remove deletes an article by ID.
func (s *CompanyNewsService) Remove(ctx context.Context, id int64) error {
	resp, err := s.rest.R().SetContext(ctx).Delete(fmt.Sprintf("/company-news/%d", id))
	if err != nil {
		return transportError("company-news.remove", msgCompanyNewsRemove, err)
	}
	if !resp.IsSuccess() {
		return apiError("company-news.remove", msgCompanyNewsRemove, resp)
	}
	return nil
}

func normalizeCompanyNews(it rawItem) models.CompanyNewsItem {
	return models.CompanyNewsItem{
		ID:            it.intID("id"),
		Ticker:        it.firstString("ticker"),
		URL:           it.firstString("url"),
		Title:         it.firstString("title"),
		Summary:       it.firstString("summary"),
		Source:        it.firstString("source"),
		PublishedDate: it.firstString("publishedDate", "published_date"),
	}
}
