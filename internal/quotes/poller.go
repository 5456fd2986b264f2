package quotes

import (
	"context"
	"time"

	"github.com/painelfin/painelgo/internal/models"
)

// QuoteFetcher is the REST batch-quote call the poller runs on. The backend
// realtime service satisfies it.
type QuoteFetcher interface {
	Quotes(ctx context.Context, tickers []string) (map[string]models.Quote, error)
}

const defaultPollInterval = 5 * time.Second

// Poller fetches the ticker set over REST at a fixed interval. It is the
// fallback path and is never run alongside the socket stream; callers pick
// one transport or the other.
type Poller struct {
	fetcher  QuoteFetcher
	interval time.Duration
	handlers Handlers
}

// NewPoller builds a poller. A non-positive interval falls back to the
// default of five seconds.
func NewPoller(fetcher QuoteFetcher, interval time.Duration, handlers Handlers) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{fetcher: fetcher, interval: interval, handlers: handlers}
}

// Run polls until the context is cancelled. The first fetch happens
// immediately so the UI has data before the first tick.
func (p *Poller) Run(ctx context.Context, tickers []string) error {
	if len(tickers) == 0 {
		return nil
	}

	p.poll(ctx, tickers)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.poll(ctx, tickers)
		}
	}
}

func (p *Poller) poll(ctx context.Context, tickers []string) {
	batch, err := p.fetcher.Quotes(ctx, tickers)
	if err != nil {
		if ctx.Err() == nil && p.handlers.OnError != nil {
			p.handlers.OnError(err)
		}
		return
	}
	if p.handlers.OnQuote == nil {
		return
	}
	// Keep a stable emission order so the table does not jump around.
	for _, t := range tickers {
		if q, ok := batch[t]; ok {
			p.handlers.OnQuote(q)
		}
	}
}
