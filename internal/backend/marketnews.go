package backend

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/painelfin/painelgo/internal/models"
)

const (
	msgMarketNewsLatest  = "Falha ao buscar notícias do mercado"
	msgMarketNewsTicker  = "Falha ao buscar notícias da empresa"
	msgMarketNewsAnalyze = "Falha ao analisar notícia"
)

// MarketNewsService reads the scraped market-news feed. Wire fields arrive
// in Portuguese (titulo, portal, resumo...) or English depending on the
// scraper generation, so every field is resolved by alias.
type MarketNewsService struct {
	rest *resty.Client
}

// Latest returns the most recent articles, newest first.
func (s *MarketNewsService) Latest(ctx context.Context, limit int) ([]models.MarketArticle, error) {
	req := s.rest.R().SetContext(ctx)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}
	resp, err := req.Get("/news/latest")
	if err != nil {
		return nil, transportError("news.latest", msgMarketNewsLatest, err)
	}
	if !resp.IsSuccess() {
		return nil, apiError("news.latest", msgMarketNewsLatest, resp)
	}
	return normalizeArticles(resp.Body(), "news.latest", msgMarketNewsLatest)
}

// ByTicker returns the articles mentioning a ticker.
func (s *MarketNewsService) ByTicker(ctx context.Context, ticker string) ([]models.MarketArticle, error) {
	resp, err := s.rest.R().SetContext(ctx).Get("/news/company/" + ticker)
	if err != nil {
		return nil, transportError("news.by_ticker", msgMarketNewsTicker, err)
	}
	if !resp.IsSuccess() {
		return nil, apiError("news.by_ticker", msgMarketNewsTicker, resp)
	}
	return normalizeArticles(resp.Body(), "news.by_ticker", msgMarketNewsTicker)
}

// Analyze asks the backend's model pipeline to enrich one article and
// returns the refreshed article.
func (s *MarketNewsService) Analyze(ctx context.Context, id int64) (models.MarketArticle, error) {
	resp, err := s.rest.R().SetContext(ctx).Post(fmt.Sprintf("/news/%d/analyze", id))
	if err != nil {
		return models.MarketArticle{}, transportError("news.analyze", msgMarketNewsAnalyze, err)
	}
	if !resp.IsSuccess() {
		return models.MarketArticle{}, apiError("news.analyze", msgMarketNewsAnalyze, resp)
	}

	it, err := unwrapObject(resp.Body(), "article", "news", "data")
	if err != nil {
		return models.MarketArticle{}, transportError("news.analyze", msgMarketNewsAnalyze, err)
	}
	return normalizeArticle(it), nil
}

func normalizeArticles(body []byte, op, defaultMsg string) ([]models.MarketArticle, error) {
	items, err := unwrapList(body, "news", "articles", "data")
	if err != nil {
		return nil, transportError(op, defaultMsg, err)
	}
	out := make([]models.MarketArticle, 0, len(items))
	for _, it := range items {
		out = append(out, normalizeArticle(it))
	}
	return out, nil
}

func normalizeArticle(it rawItem) models.MarketArticle {
	a := models.MarketArticle{
		ID:        it.intID("id"),
		Headline:  it.firstString("titulo", "headline"),
		Source:    it.firstString("portal", "source"),
		Timestamp: it.firstString("data_publicacao", "timestamp"),
		Summary:   it.firstString("resumo", "summary"),
		Content:   it.firstString("conteudo_completo", "conteudo", "content"),
		URL:       it.firstString("link_url", "url"),
		ImageURL:  it.firstString("imagem_url", "image_url"),
		Tags:      it.stringSlice("tags", "tickers_relacionados"),
	}
	if raw := it.object("aiAnalysis", "ai_analysis"); raw != nil {
		a.Analysis = &models.AIAnalysis{
			Sentiment:          raw.firstString("sentiment", "sentimento"),
			Summary:            raw.firstString("summary", "resumo"),
			MentionedCompanies: raw.stringSlice("mentionedCompanies", "mentioned_companies"),
			RelatedNews:        raw.stringSlice("relatedNews", "related_news"),
		}
	}
	return a
}
