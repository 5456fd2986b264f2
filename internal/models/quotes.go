package models

import "github.com/shopspring/decimal"

// Quote sources.
const (
	QuoteSourceMT5       = "mt5"
	QuoteSourceSimulated = "simulated"
	QuoteSourceYahoo     = "yahoo"
)

// Quote is the latest known price for a ticker. Updates are last-write-wins
// per ticker; there is no ordering guarantee beyond arrival order.
type Quote struct {
	Ticker        string          `json:"ticker"`
	Price         decimal.Decimal `json:"price"`
	Bid           decimal.Decimal `json:"bid"`
	Ask           decimal.Decimal `json:"ask"`
	Last          decimal.Decimal `json:"last"`
	Volume        int64           `json:"volume"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Timestamp     string          `json:"timestamp"`
	Source        string          `json:"source"`
}

// Market session states reported by the realtime backend.
const (
	MarketOpen      = "open"
	MarketPreMarket = "pre_market"
	MarketClosed    = "closed"
)

// MarketStatus is the B3 session state plus a human description.
type MarketStatus struct {
	Status      string `json:"status"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp,omitempty"`
}

// DescribeMarketStatus maps a session state to its pt-BR description.
func DescribeMarketStatus(status string) string {
	switch status {
	case MarketOpen:
		return "Mercado aberto (10:00-17:30)"
	case MarketPreMarket:
		return "Pré-abertura (antes das 10:00)"
	case MarketClosed:
		return "Mercado fechado (após 17:30 ou fim de semana)"
	default:
		return "Status desconhecido"
	}
}
