package quotes

import (
	"fmt"
	"strings"
	"time"

	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"

	"github.com/painelfin/painelgo/internal/models"
)

// yahooRetry tries each symbol a few times; Yahoo's unauthenticated endpoint
// drops requests under load.
const (
	yahooRetries   = 3
	yahooBaseDelay = time.Second
)

// YahooSource serves delayed quotes from Yahoo Finance for use without the
// backend, e.g. outside the office network.
type YahooSource struct{}

// NewYahooSource builds the offline quote source.
func NewYahooSource() *YahooSource {
	return &YahooSource{}
}

// yahooSymbol maps a B3 ticker to Yahoo's listing. B3 tickers carry the .SA
// suffix on Yahoo; anything already suffixed or index-prefixed passes through.
func yahooSymbol(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if t == "" || strings.HasPrefix(t, "^") || strings.Contains(t, ".") {
		return t
	}
	return t + ".SA"
}

// Get fetches one delayed quote.
func (y *YahooSource) Get(ticker string) (models.Quote, error) {
	symbol := yahooSymbol(ticker)
	if symbol == "" {
		return models.Quote{}, fmt.Errorf("ticker vazio")
	}

	var q models.Quote
	err := withRetry(yahooRetries, yahooBaseDelay, func() error {
		raw, err := quote.Get(symbol)
		if err != nil {
			return fmt.Errorf("falha ao buscar cotação de %s no Yahoo: %w", ticker, err)
		}
		if raw == nil {
			return fmt.Errorf("ticker %s não encontrado no Yahoo", ticker)
		}
		q = models.Quote{
			Ticker:        strings.ToUpper(strings.TrimSpace(ticker)),
			Price:         decimal.NewFromFloat(raw.RegularMarketPrice),
			Bid:           decimal.NewFromFloat(raw.Bid),
			Ask:           decimal.NewFromFloat(raw.Ask),
			Last:          decimal.NewFromFloat(raw.RegularMarketPrice),
			Volume:        int64(raw.RegularMarketVolume),
			Change:        decimal.NewFromFloat(raw.RegularMarketChange),
			ChangePercent: decimal.NewFromFloat(raw.RegularMarketChangePercent),
			Timestamp:     time.Unix(int64(raw.RegularMarketTime), 0).Format(time.RFC3339),
			Source:        models.QuoteSourceYahoo,
		}
		return nil
	})
	if err != nil {
		return models.Quote{}, err
	}
	return q, nil
}

// GetBatch fetches a set of tickers, skipping the ones Yahoo does not know.
// It fails only when every ticker fails.
func (y *YahooSource) GetBatch(tickers []string) (map[string]models.Quote, error) {
	out := make(map[string]models.Quote, len(tickers))
	var lastErr error
	for _, t := range tickers {
		q, err := y.Get(t)
		if err != nil {
			lastErr = err
			continue
		}
		out[q.Ticker] = q
	}
	if len(out) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return out, nil
}

// withRetry runs fn with doubling delays between attempts.
func withRetry(retries int, baseDelay time.Duration, fn func() error) error {
	var lastErr error
	delay := baseDelay
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			time.Sleep(delay)
			delay *= 2
		}
		if err := fn(); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
