package models

import "github.com/shopspring/decimal"

// Holding is one portfolio position with backend-computed valuation.
type Holding struct {
	Symbol       string          `json:"symbol"`
	CompanyName  string          `json:"company_name,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	AvgPrice     decimal.Decimal `json:"avg_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Value        decimal.Decimal `json:"value"`
	Gain         decimal.Decimal `json:"gain"`
	GainPercent  decimal.Decimal `json:"gain_percent"`
}

// PortfolioSummary aggregates a portfolio's holdings and totals.
type PortfolioSummary struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Holdings         []Holding       `json:"holdings"`
	TotalValue       decimal.Decimal `json:"total_value"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	TotalGain        decimal.Decimal `json:"total_gain"`
	TotalGainPercent decimal.Decimal `json:"total_gain_percent"`
}

// Position is the write shape for upserting portfolio positions.
type Position struct {
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
	AvgPrice decimal.Decimal `json:"avg_price"`
}

// DailyValue is one point of the portfolio's value history.
type DailyValue struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// AssetContribution is one asset's contribution to the daily result.
type AssetContribution struct {
	Symbol       string          `json:"symbol"`
	Contribution decimal.Decimal `json:"contribution"`
}

// SectorWeight is the portfolio's allocation to one sector versus the
// benchmark (OW/UW view).
type SectorWeight struct {
	Sector    string          `json:"sector"`
	Weight    decimal.Decimal `json:"weight"`
	Benchmark decimal.Decimal `json:"benchmark"`
}

// SuggestedAsset is one row of the sell-side suggested portfolio.
type SuggestedAsset struct {
	Symbol string          `json:"symbol"`
	Weight decimal.Decimal `json:"weight"`
}

// IbovPoint is a point of the Ibovespa history series.
type IbovPoint struct {
	Date  string          `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// DailyMetric is the write shape for manual daily metric updates.
type DailyMetric struct {
	ID    string          `json:"id"`
	Value decimal.Decimal `json:"value"`
}
