package backend

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/painelfin/painelgo/internal/models"
)

const (
	msgPortfolioSummary      = "Falha ao buscar portfólio"
	msgPortfolioSnapshot     = "Falha ao salvar snapshot"
	msgPortfolioPositions    = "Falha ao salvar posições"
	msgPortfolioDailyValues  = "Falha ao buscar histórico do portfólio"
	msgPortfolioContribution = "Falha ao buscar contribuição diária"
	msgPortfolioSuggested    = "Falha ao buscar carteira sugerida"
	msgPortfolioSectors      = "Falha ao buscar pesos por setor"
	msgPortfolioMetrics      = "Falha ao atualizar métricas"
	msgIbovHistory           = "Falha ao buscar histórico do Ibovespa"
)

// PortfolioService reads and writes portfolio state. Holdings are valued
// server-side; the client never recomputes gains locally.
type PortfolioService struct {
	rest *resty.Client
}

// Summary fetches a portfolio with holdings and aggregate totals.
func (s *PortfolioService) Summary(ctx context.Context, id int64) (models.PortfolioSummary, error) {
	resp, err := s.rest.R().SetContext(ctx).Get(fmt.Sprintf("/portfolio/%d/summary", id))
	if err != nil {
		return models.PortfolioSummary{}, transportError("portfolio.summary", msgPortfolioSummary, err)
	}
	if !resp.IsSuccess() {
		return models.PortfolioSummary{}, apiError("portfolio.summary", msgPortfolioSummary, resp)
	}

	it, err := unwrapObject(resp.Body(), "portfolio", "data")
	if err != nil {
		return models.PortfolioSummary{}, transportError("portfolio.summary", msgPortfolioSummary, err)
	}

	summary := models.PortfolioSummary{
		ID:               it.intID("id"),
		Name:             it.firstString("name"),
		TotalValue:       it.firstDecimal("total_value"),
		TotalCost:        it.firstDecimal("total_cost"),
		TotalGain:        it.firstDecimal("total_gain", "total_gain_loss"),
		TotalGainPercent: it.firstDecimal("total_gain_percent", "total_gain_loss_percent"),
	}
	for _, h := range it.items("holdings", "positions") {
		summary.Holdings = append(summary.Holdings, models.Holding{
			Symbol:       h.firstString("symbol", "ticker"),
			CompanyName:  h.firstString("company_name"),
			Quantity:     h.firstDecimal("quantity"),
			AvgPrice:     h.firstDecimal("avg_price"),
			CurrentPrice: h.firstDecimal("current_price"),
			Value:        h.firstDecimal("value", "total_value"),
			Gain:         h.firstDecimal("gain", "gain_loss"),
			GainPercent:  h.firstDecimal("gain_percent", "gain_loss_percent"),
		})
	}
	return summary, nil
}

// SaveSnapshot asks the backend to record today's portfolio value.
func (s *PortfolioService) SaveSnapshot(ctx context.Context, id int64) error {
	resp, err := s.rest.R().SetContext(ctx).Post(fmt.Sprintf("/portfolio/%d/snapshot", id))
	if err != nil {
		return transportError("portfolio.snapshot", msgPortfolioSnapshot, err)
	}
	if !resp.IsSuccess() {
		return apiError("portfolio.snapshot", msgPortfolioSnapshot, resp)
	}
	return nil
}

// UpsertPositions replaces the given positions; the backend re-fetches
// prices and recomputes the summary.
func (s *PortfolioService) UpsertPositions(ctx context.Context, id int64, positions []models.Position) error {
	resp, err := s.rest.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(positions).
		Post(fmt.Sprintf("/portfolio/%d/positions", id))
	if err != nil {
		return transportError("portfolio.positions", msgPortfolioPositions, err)
	}
	if !resp.IsSuccess() {
		return apiError("portfolio.positions", msgPortfolioPositions, resp)
	}
	return nil
}

// DailyValues returns the portfolio's value history.
func (s *PortfolioService) DailyValues(ctx context.Context, id int64) ([]models.DailyValue, error) {
	resp, err := s.rest.R().SetContext(ctx).Get(fmt.Sprintf("/portfolio/%d/daily-values", id))
	if err != nil {
		return nil, transportError("portfolio.daily_values", msgPortfolioDailyValues, err)
	}
	if !resp.IsSuccess() {
		return nil, apiError("portfolio.daily_values", msgPortfolioDailyValues, resp)
	}

	items, err := unwrapList(resp.Body(), "values", "data")
	if err != nil {
		return nil, transportError("portfolio.daily_values", msgPortfolioDailyValues, err)
	}
	out := make([]models.DailyValue, 0, len(items))
	for _, it := range items {
		out = append(out, models.DailyValue{
			Date:  it.firstString("date"),
			Value: it.firstDecimal("value", "total_value"),
		})
	}
	return out, nil
}

// DailyContribution returns each asset's contribution to today's move.
func (s *PortfolioService) DailyContribution(ctx context.Context, id int64) ([]models.AssetContribution, error) {
	resp, err := s.rest.R().SetContext(ctx).Get(fmt.Sprintf("/portfolio/%d/daily-contribution", id))
	if err != nil {
		return nil, transportError("portfolio.contribution", msgPortfolioContribution, err)
	}
	if !resp.IsSuccess() {
		return nil, apiError("portfolio.contribution", msgPortfolioContribution, resp)
	}

	items, err := unwrapList(resp.Body(), "contributions", "data")
	if err != nil {
		return nil, transportError("portfolio.contribution", msgPortfolioContribution, err)
	}
	out := make([]models.AssetContribution, 0, len(items))
	for _, it := range items {
		out = append(out, models.AssetContribution{
			Symbol:       it.firstString("symbol", "ticker"),
			Contribution: it.firstDecimal("contribution"),
		})
	}
	return out, nil
}

// SuggestedPortfolio returns the sell-side model portfolio.
func (s *PortfolioService) SuggestedPortfolio(ctx context.Context, id int64) ([]models.SuggestedAsset, error) {
	resp, err := s.rest.R().SetContext(ctx).Get(fmt.Sprintf("/portfolio/%d/suggested", id))
	if err != nil {
		return nil, transportError("portfolio.suggested", msgPortfolioSuggested, err)
	}
	if !resp.IsSuccess() {
		return nil, apiError("portfolio.suggested", msgPortfolioSuggested, resp)
	}

	items, err := unwrapList(resp.Body(), "assets", "data")
	if err != nil {
		return nil, transportError("portfolio.suggested", msgPortfolioSuggested, err)
	}
	out := make([]models.SuggestedAsset, 0, len(items))
	for _, it := range items {
		out = append(out, models.SuggestedAsset{
			Symbol: it.firstString("symbol", "ticker"),
			Weight: it.firstDecimal("weight"),
		})
	}
	return out, nil
}

// SectorWeights returns the OW/UW view versus the benchmark.
func (s *PortfolioService) SectorWeights(ctx context.Context, id int64) ([]models.SectorWeight, error) {
	resp, err := s.rest.R().SetContext(ctx).Get(fmt.Sprintf("/portfolio/%d/sector-weights", id))
	if err != nil {
		return nil, transportError("portfolio.sectors", msgPortfolioSectors, err)
	}
	if !resp.IsSuccess() {
		return nil, apiError("portfolio.sectors", msgPortfolioSectors, resp)
	}

	items, err := unwrapList(resp.Body(), "weights", "data")
	if err != nil {
		return nil, transportError("portfolio.sectors", msgPortfolioSectors, err)
	}
	out := make([]models.SectorWeight, 0, len(items))
	for _, it := range items {
		out = append(out, models.SectorWeight{
			Sector:    it.firstString("sector"),
			Weight:    it.firstDecimal("weight"),
			Benchmark: it.firstDecimal("benchmark"),
		})
	}
	return out, nil
}

// UpdateDailyMetrics pushes manually-entered daily metrics.
func (s *PortfolioService) UpdateDailyMetrics(ctx context.Context, id int64, metrics []models.DailyMetric) error {
	resp, err := s.rest.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(metrics).
		Post(fmt.Sprintf("/portfolio/%d/daily-metrics", id))
	if err != nil {
		return transportError("portfolio.metrics", msgPortfolioMetrics, err)
	}
	if !resp.IsSuccess() {
		return apiError("portfolio.metrics", msgPortfolioMetrics, resp)
	}
	return nil
}

// IbovHistory returns the Ibovespa benchmark series.
func (s *PortfolioService) IbovHistory(ctx context.Context) ([]models.IbovPoint, error) {
	resp, err := s.rest.R().SetContext(ctx).Get("/market/ibov-history")
	if err != nil {
		return nil, transportError("market.ibov", msgIbovHistory, err)
	}
	if !resp.IsSuccess() {
		return nil, apiError("market.ibov", msgIbovHistory, resp)
	}

	items, err := unwrapList(resp.Body(), "history", "data")
	if err != nil {
		return nil, transportError("market.ibov", msgIbovHistory, err)
	}
	out := make([]models.IbovPoint, 0, len(items))
	for _, it := range items {
		out = append(out, models.IbovPoint{
			Date:  it.firstString("date"),
			Close: it.firstDecimal("close", "value"),
		})
	}
	return out, nil
}
