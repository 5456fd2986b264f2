package backend

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"

	"github.com/painelfin/painelgo/internal/models"
)

const (
	msgMacroIndicators = "Falha ao buscar indicadores macroeconômicos"
	msgMacroHistory    = "Falha ao buscar histórico do indicador"
)

// MacroService reads the Brazilian macro indicators (Selic, IPCA, PTAX,
// Ibovespa) and their history series.
type MacroService struct {
	rest *resty.Client
}

// Indicators returns the current snapshot keyed by indicator code.
func (s *MacroService) Indicators(ctx context.Context) (map[string]models.MacroIndicator, error) {
	resp, err := s.rest.R().SetContext(ctx).Get("/macro/indicators")
	if err != nil {
		return nil, transportError("macro.indicators", msgMacroIndicators, err)
	}
	if !resp.IsSuccess() {
		return nil, apiError("macro.indicators", msgMacroIndicators, resp)
	}

	var body struct {
		Indicators map[string]json.RawMessage `json:"indicators"`
	}
	if err := unmarshalBody(resp.Body(), &body); err != nil {
		return nil, transportError("macro.indicators", msgMacroIndicators, err)
	}

	out := make(map[string]models.MacroIndicator, len(body.Indicators))
	for key, raw := range body.Indicators {
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, transportError("macro.indicators", msgMacroIndicators, err)
		}
		it := rawItem(m)
		out[key] = models.MacroIndicator{
			Key:         key,
			Value:       it.floatPtr("value"),
			Unit:        it.firstString("unit"),
			Description: it.firstString("description"),
			UpdatedAt:   it.firstString("updated_at"),
		}
	}
	return out, nil
}

// History returns the stored series for one indicator key.
func (s *MacroService) History(ctx context.Context, indicator string) ([]models.HistoryPoint, error) {
	resp, err := s.rest.R().SetContext(ctx).Get("/macro/historical/" + indicator)
	if err != nil {
		return nil, transportError("macro.history", msgMacroHistory, err)
	}
	if !resp.IsSuccess() {
		return nil, apiError("macro.history", msgMacroHistory, resp)
	}

	items, err := unwrapList(resp.Body(), "history", "data")
	if err != nil {
		return nil, transportError("macro.history", msgMacroHistory, err)
	}

	out := make([]models.HistoryPoint, 0, len(items))
	for _, it := range items {
		p := models.HistoryPoint{Date: it.firstString("date")}
		if v := it.floatPtr("value"); v != nil {
			p.Value = *v
		}
		out = append(out, p)
	}
	return out, nil
}
