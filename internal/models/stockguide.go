package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// NotApplicable is the sentinel the stock-guide backend uses for metrics that
// do not apply to a company. It is a first-class value: it must survive
// normalization untouched and render distinctly from zero.
const NotApplicable = "n.a."

// Metric is a stock-guide figure that is either numeric or "n.a.".
// Numeric-looking strings are coerced; anything that fails coercion collapses
// to the sentinel rather than NaN.
type Metric struct {
	Value decimal.Decimal
	NA    bool
}

// MetricFrom builds a numeric metric.
func MetricFrom(d decimal.Decimal) Metric {
	return Metric{Value: d}
}

// MetricNA is the "n.a." metric value.
func MetricNA() Metric {
	return Metric{NA: true}
}

func (m Metric) String() string {
	if m.NA {
		return NotApplicable
	}
	return m.Value.String()
}

// UnmarshalJSON accepts JSON numbers, numeric strings and the sentinel.
func (m *Metric) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		m.Value = decimal.NewFromFloat(v)
		m.NA = false
		return nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			*m = MetricNA()
			return nil
		}
		m.Value = d
		m.NA = false
		return nil
	case nil:
		*m = MetricNA()
		return nil
	default:
		*m = MetricNA()
		return nil
	}
}

// MarshalJSON writes the sentinel string or the bare number, so a normalized
// row re-normalizes to itself.
func (m Metric) MarshalJSON() ([]byte, error) {
	if m.NA {
		return json.Marshal(NotApplicable)
	}
	return []byte(m.Value.String()), nil
}

// MetricPair holds the two forward-estimate columns the guide publishes.
type MetricPair struct {
	E2025 Metric `json:"2025E"`
	E2026 Metric `json:"2026E"`
}

// VolumeMetrics groups the traded-volume columns.
type VolumeMetrics struct {
	Media12M Metric `json:"media_12m"`
	PctMedia Metric `json:"pct_media"`
}

// PriceMetrics groups last price, target and implied upside.
type PriceMetrics struct {
	Last   Metric `json:"last"`
	Target Metric `json:"target"`
	Upside Metric `json:"upside"`
}

// PerformanceMetrics groups week/month/year performance.
type PerformanceMetrics struct {
	Week  Metric `json:"week"`
	Month Metric `json:"month"`
	Year  Metric `json:"year"`
}

// StockGuideRow is one company line of the sell-side stock guide.
type StockGuideRow struct {
	Sector        string             `json:"sector"`
	Company       string             `json:"company"`
	Ticker        string             `json:"ticker"`
	Rating        string             `json:"rating"`
	MarketCap     Metric             `json:"market_cap"`
	Volume        VolumeMetrics      `json:"volume"`
	Price         PriceMetrics       `json:"price"`
	Performance   PerformanceMetrics `json:"performance"`
	PL            MetricPair         `json:"pl"`
	EVEbitda      MetricPair         `json:"ev_ebitda"`
	PVP           MetricPair         `json:"pvp"`
	DividendYield MetricPair         `json:"dividend_yield"`
	NetDebtEbitda MetricPair         `json:"net_debt_ebitda"`
	ROE           MetricPair         `json:"roe"`
	IsMedian      bool               `json:"is_median,omitempty"`
}
