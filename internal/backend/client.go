// Package backend holds the typed clients for the dashboard backend. Each
// domain service wraps one resource family, issues exactly one HTTP request
// per operation and normalizes whatever JSON shape the backend currently
// returns into the types in internal/models.
package backend

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/painelfin/painelgo/config"
)

const defaultTimeout = 10 * time.Second

// Client bundles the per-domain services behind one configured resty client.
type Client struct {
	rest *resty.Client

	CompanyNews *CompanyNewsService
	News        *MarketNewsService
	CVM         *CVMService
	Macro       *MacroService
	Portfolio   *PortfolioService
	StockGuide  *StockGuideService
	Realtime    *RealtimeService
}

// New builds a client for the configured backend origin.
func New(cfg *config.Config) *Client {
	rest := resty.New()
	rest.SetBaseURL(apiBase(cfg.BackendURL))
	rest.SetTimeout(defaultTimeout)
	rest.SetHeader("Accept", "application/json")

	c := &Client{rest: rest}
	c.CompanyNews = &CompanyNewsService{rest: rest}
	c.News = &MarketNewsService{rest: rest}
	c.CVM = &CVMService{rest: rest}
	c.Macro = &MacroService{rest: rest}
	c.Portfolio = &PortfolioService{rest: rest}
	c.Realtime = &RealtimeService{rest: rest}

	var cache *CacheManager
	if cfg.CacheEnabled {
		cache = NewCacheManager(cfg.DataCacheDir, time.Hour)
	}
	c.StockGuide = &StockGuideService{rest: rest, cache: cache}
	return c
}

// apiBase appends the "/api" prefix unless the origin already carries it.
// One convention for every service; the origin comes from a single variable.
func apiBase(origin string) string {
	base := strings.TrimRight(strings.TrimSpace(origin), "/")
	if strings.HasSuffix(base, "/api") {
		return base
	}
	return base + "/api"
}
