package backend

import (
	"context"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/painelfin/painelgo/internal/models"
)

const (
	msgRealtimeQuotes = "Falha ao buscar cotações em tempo real"
	msgRealtimeStatus = "Falha ao buscar status do mercado"
)

// RealtimeService is the REST side of the realtime feed, used as the polling
// fallback when the quote socket cannot be reached.
type RealtimeService struct {
	rest *resty.Client
}

// Quotes fetches the latest quote for each ticker in one batch request.
func (s *RealtimeService) Quotes(ctx context.Context, tickers []string) (map[string]models.Quote, error) {
	params := url.Values{}
	for _, t := range tickers {
		params.Add("tickers", t)
	}

	resp, err := s.rest.R().SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get("/realtime/quotes")
	if err != nil {
		return nil, transportError("realtime.quotes", msgRealtimeQuotes, err)
	}
	if !resp.IsSuccess() {
		return nil, apiError("realtime.quotes", msgRealtimeQuotes, resp)
	}

	items, err := unwrapList(resp.Body(), "quotes", "data")
	if err != nil {
		return nil, transportError("realtime.quotes", msgRealtimeQuotes, err)
	}

	out := make(map[string]models.Quote, len(items))
	for _, it := range items {
		q := normalizeQuote(it)
		if q.Ticker != "" {
			out[q.Ticker] = q
		}
	}
	return out, nil
}

// Status fetches the current market session state.
func (s *RealtimeService) Status(ctx context.Context) (models.MarketStatus, error) {
	resp, err := s.rest.R().SetContext(ctx).Get("/realtime/status")
	if err != nil {
		return models.MarketStatus{}, transportError("realtime.status", msgRealtimeStatus, err)
	}
	if !resp.IsSuccess() {
		return models.MarketStatus{}, apiError("realtime.status", msgRealtimeStatus, resp)
	}

	it, err := unwrapObject(resp.Body(), "market_status", "data")
	if err != nil {
		return models.MarketStatus{}, transportError("realtime.status", msgRealtimeStatus, err)
	}
	status := it.firstString("status")
	return models.MarketStatus{
		Status:      status,
		Description: models.DescribeMarketStatus(status),
		Timestamp:   it.firstString("timestamp"),
	}, nil
}

// normalizeQuote maps one realtime quote record; shared with the socket
// stream, which carries the same shape inside price_update events.
func normalizeQuote(it rawItem) models.Quote {
	q := models.Quote{
		Ticker:        it.firstString("ticker", "symbol"),
		Price:         it.firstDecimal("price"),
		Bid:           it.firstDecimal("bid"),
		Ask:           it.firstDecimal("ask"),
		Last:          it.firstDecimal("last"),
		Change:        it.firstDecimal("change"),
		ChangePercent: it.firstDecimal("change_percent"),
		Timestamp:     it.firstString("timestamp"),
		Source:        it.stringOr(models.QuoteSourceSimulated, "source"),
	}
	if v, ok := it["volume"].(float64); ok {
		q.Volume = int64(v)
	}
	return q
}
