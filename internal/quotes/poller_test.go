package quotes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/painelfin/painelgo/internal/models"
)

type fakeFetcher struct {
	calls int
	err   error
}

func (f *fakeFetcher) Quotes(ctx context.Context, tickers []string) (map[string]models.Quote, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]models.Quote, len(tickers))
	for _, t := range tickers {
		out[t] = models.Quote{Ticker: t, Price: decimal.NewFromInt(int64(f.calls)), Source: models.QuoteSourceMT5}
	}
	return out, nil
}

func TestPollerEmitsInTickerOrder(t *testing.T) {
	fetcher := &fakeFetcher{}
	var seen []string
	p := NewPoller(fetcher, 5*time.Millisecond, Handlers{
		OnQuote: func(q models.Quote) { seen = append(seen, q.Ticker) },
	})

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()
	if err := p.Run(ctx, []string{"PETR4", "VALE3"}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run: %v", err)
	}

	if fetcher.calls < 2 {
		t.Fatalf("expected repeated polls, got %d", fetcher.calls)
	}
	if len(seen) < 4 || seen[0] != "PETR4" || seen[1] != "VALE3" {
		t.Fatalf("emission order wrong: %v", seen)
	}
}

func TestPollerReportsErrors(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("backend fora do ar")}
	var got error
	p := NewPoller(fetcher, 5*time.Millisecond, Handlers{
		OnError: func(err error) { got = err },
	})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Millisecond)
	defer cancel()
	p.Run(ctx, []string{"PETR4"})

	if got == nil {
		t.Fatal("fetch error not surfaced")
	}
}

func TestPollerNoTickersReturnsImmediately(t *testing.T) {
	p := NewPoller(&fakeFetcher{}, time.Millisecond, Handlers{})
	if err := p.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run with no tickers: %v", err)
	}
}

func TestYahooSymbolSuffix(t *testing.T) {
	cases := map[string]string{
		"PETR4":    "PETR4.SA",
		"petr4":    "PETR4.SA",
		"VALE3.SA": "VALE3.SA",
		"^BVSP":    "^BVSP",
		"":         "",
	}
	for in, want := range cases {
		if got := yahooSymbol(in); got != want {
			t.Errorf("yahooSymbol(%q) = %q, want %q", in, got, want)
		}
	}
}
