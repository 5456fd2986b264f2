package backend

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/painelfin/painelgo/internal/models"
)

const msgStockGuide = "Falha ao buscar dados do stock guide"

// StockGuideService reads the sell-side stock guide. Responses are cached on
// disk for an hour, mirroring the TTL the dashboard uses, because the guide
// only changes with sell-side refreshes.
type StockGuideService struct {
	rest  *resty.Client
	cache *CacheManager
}

// Rows fetches the full guide grouped by sector, medians included.
func (s *StockGuideService) Rows(ctx context.Context) ([]models.StockGuideRow, error) {
	var cached []models.StockGuideRow
	if s.cache.Get("backend", "stock_guide", nil, &cached) {
		return cached, nil
	}

	resp, err := s.rest.R().SetContext(ctx).Get("/market/stock-guide")
	if err != nil {
		return nil, transportError("market.stock_guide", msgStockGuide, err)
	}
	if !resp.IsSuccess() {
		return nil, apiError("market.stock_guide", msgStockGuide, resp)
	}

	items, err := unwrapList(resp.Body(), "stockGuide", "data")
	if err != nil {
		return nil, transportError("market.stock_guide", msgStockGuide, err)
	}

	rows := make([]models.StockGuideRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, normalizeGuideRow(it))
	}

	s.cache.Set("backend", "stock_guide", nil, rows)
	return rows, nil
}

func normalizeGuideRow(it rawItem) models.StockGuideRow {
	row := models.StockGuideRow{
		Sector:    it.firstString("sector", "setor"),
		Company:   it.firstString("company", "empresa"),
		Ticker:    it.firstString("ticker"),
		Rating:    it.firstString("rating"),
		MarketCap: it.metric("marketCap", "market_cap"),
	}
	if v, ok := it["isMedian"].(bool); ok {
		row.IsMedian = v
	} else if v, ok := it["is_median"].(bool); ok {
		row.IsMedian = v
	}

	if vol := it.object("volume"); vol != nil {
		row.Volume = models.VolumeMetrics{
			Media12M: vol.metric("media12M", "media_12m"),
			PctMedia: vol.metric("pctMedia", "pct_media"),
		}
	}
	if price := it.object("price", "preco"); price != nil {
		row.Price = models.PriceMetrics{
			Last:   price.metric("ultimo", "last"),
			Target: price.metric("alvo", "target"),
			Upside: price.metric("upside"),
		}
	}
	if perf := it.object("performance"); perf != nil {
		row.Performance = models.PerformanceMetrics{
			Week:  perf.metric("semana", "week"),
			Month: perf.metric("mes", "month"),
			Year:  perf.metric("ano", "year"),
		}
	}
	row.PL = metricPair(it.object("pl"))
	row.EVEbitda = metricPair(it.object("evEbitda", "ev_ebitda"))
	row.PVP = metricPair(it.object("pvp"))
	row.DividendYield = metricPair(it.object("dividendYield", "dividend_yield"))
	row.NetDebtEbitda = metricPair(it.object("dividaLiquidaEbitda", "net_debt_ebitda"))
	row.ROE = metricPair(it.object("roe"))
	return row
}

func metricPair(it rawItem) models.MetricPair {
	if it == nil {
		return models.MetricPair{E2025: models.MetricNA(), E2026: models.MetricNA()}
	}
	return models.MetricPair{
		E2025: it.metric("2025E"),
		E2026: it.metric("2026E"),
	}
}
