package models

// MacroIndicator is one Brazilian macro series (Selic, IPCA, PTAX, Ibovespa).
type MacroIndicator struct {
	Key         string   `json:"key"`
	Value       *float64 `json:"value"`
	Unit        string   `json:"unit"`
	Description string   `json:"description"`
	UpdatedAt   string   `json:"updated_at"`
}

// HistoryPoint is a single observation of an indicator series.
type HistoryPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}
