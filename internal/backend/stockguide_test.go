package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/painelfin/painelgo/config"
	"github.com/painelfin/painelgo/internal/models"
)

const guideRow = `{
	"sector": "Energia", "company": "Petrobras", "ticker": "PETR4", "rating": "Compra",
	"marketCap": 498000,
	"volume": {"media12M": 1500, "pctMedia": "98.5"},
	"price": {"ultimo": 38.2, "alvo": 45, "upside": "17.8"},
	"performance": {"semana": 1.2, "mes": -0.5, "ano": 12.3},
	"pl": {"2025E": 4.1, "2026E": "n.a."},
	"evEbitda": {"2025E": "3.0", "2026E": 2.8},
	"pvp": {"2025E": 1.1, "2026E": 1.0},
	"dividendYield": {"2025E": 12.5, "2026E": "n.a."},
	"dividaLiquidaEbitda": {"2025E": 0.8, "2026E": 0.7},
	"roe": {"2025E": 18.0, "2026E": 17.2}
}`

func TestStockGuideSentinelAndCoercion(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusOK, `{"stockGuide": [`+guideRow+`]}`)
	}))

	rows, err := client.StockGuide.Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]

	// "n.a." passes through as the sentinel, distinct from zero.
	if !row.PL.E2026.NA {
		t.Fatalf("expected n.a. for PL 2026E, got %v", row.PL.E2026)
	}
	if row.PL.E2026.String() != models.NotApplicable {
		t.Fatalf("sentinel renders as %q", row.PL.E2026.String())
	}
	if row.PL.E2026.Value.IsZero() && !row.PL.E2026.NA {
		t.Fatal("sentinel collapsed into zero")
	}

	// Numeric strings are coerced to numbers.
	if row.EVEbitda.E2025.NA || row.EVEbitda.E2025.String() != "3" {
		t.Fatalf("numeric string not coerced: %v", row.EVEbitda.E2025)
	}
	if row.Volume.PctMedia.NA {
		t.Fatalf("numeric string not coerced: %v", row.Volume.PctMedia)
	}

	// Plain numbers survive.
	if row.Price.Target.String() != "45" || row.Performance.Month.String() != "-0.5" {
		t.Fatalf("numeric fields mangled: %+v", row)
	}
}

func TestStockGuideNormalizationIsIdempotent(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusOK, `[`+guideRow+`]`)
	}))

	rows, err := client.StockGuide.Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}

	// Re-normalizing the already-typed output must be a no-op.
	first, err := json.Marshal(rows[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var roundTripped models.StockGuideRow
	if err := json.Unmarshal(first, &roundTripped); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	second, err := json.Marshal(roundTripped)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("normalization not idempotent:\n%s\n%s", first, second)
	}
}

func TestStockGuideUsesCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		jsonResponse(t, w, http.StatusOK, `{"stockGuide": [`+guideRow+`]}`)
	}))
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfigWithRoot(t.TempDir())
	cfg.BackendURL = srv.URL
	cfg.CacheEnabled = true
	client := New(cfg)

	for i := 0; i < 3; i++ {
		if _, err := client.StockGuide.Rows(context.Background()); err != nil {
			t.Fatalf("Rows: %v", err)
		}
	}
	if hits != 1 {
		t.Fatalf("expected a single backend hit, got %d", hits)
	}
}
