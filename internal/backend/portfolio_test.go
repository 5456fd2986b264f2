package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/painelfin/painelgo/internal/models"
)

func TestPortfolioSummaryAliases(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/portfolio/1/summary" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		jsonResponse(t, w, http.StatusOK, `{"portfolio": {
			"id": 1, "name": "Carteira Principal",
			"holdings": [
				{"ticker": "VALE3", "quantity": 100, "avg_price": 53.4, "current_price": 53.41, "total_value": 5341.0, "gain_loss": 1.0, "gain_loss_percent": 0.02},
				{"symbol": "PETR4", "quantity": 200, "avg_price": 32.0, "current_price": 32.58, "value": 6516.0, "gain": 116.0, "gain_percent": 1.81}
			],
			"total_value": 11857.0, "total_gain_loss": 117.0, "total_gain_loss_percent": 1.0
		}}`)
	}))

	summary, err := client.Portfolio.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Name != "Carteira Principal" || len(summary.Holdings) != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	// Both alias generations resolve to the same normalized fields.
	vale, petr := summary.Holdings[0], summary.Holdings[1]
	if vale.Symbol != "VALE3" || petr.Symbol != "PETR4" {
		t.Fatalf("symbol aliases wrong: %+v", summary.Holdings)
	}
	if !vale.Gain.Equal(decimal.NewFromFloat(1.0)) || !petr.Gain.Equal(decimal.NewFromFloat(116.0)) {
		t.Fatalf("gain aliases wrong: %+v", summary.Holdings)
	}
	if !summary.TotalGain.Equal(decimal.NewFromFloat(117.0)) {
		t.Fatalf("total gain alias wrong: %v", summary.TotalGain)
	}
}

func TestPortfolioUpsertPositions(t *testing.T) {
	var gotBody []byte
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/portfolio/2/positions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotBody, _ = io.ReadAll(r.Body)
		jsonResponse(t, w, http.StatusOK, `{"success": true}`)
	}))

	positions := []models.Position{
		{Symbol: "ITUB4", Quantity: decimal.NewFromInt(300), AvgPrice: decimal.NewFromFloat(31.0)},
	}
	if err := client.Portfolio.UpsertPositions(context.Background(), 2, positions); err != nil {
		t.Fatalf("UpsertPositions: %v", err)
	}

	var sent []map[string]any
	if err := json.Unmarshal(gotBody, &sent); err != nil {
		t.Fatalf("request body not JSON: %v", err)
	}
	if len(sent) != 1 || sent[0]["symbol"] != "ITUB4" {
		t.Fatalf("unexpected request body: %s", gotBody)
	}
}

func TestPortfolioDailyValues(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusOK, `{"values": [
			{"date": "2024-06-18", "value": 52000.5},
			{"date": "2024-06-19", "value": 52850.75}
		]}`)
	}))

	values, err := client.Portfolio.DailyValues(context.Background(), 1)
	if err != nil {
		t.Fatalf("DailyValues: %v", err)
	}
	if len(values) != 2 || values[1].Date != "2024-06-19" {
		t.Fatalf("unexpected values: %+v", values)
	}
}

func TestPortfolioWriteErrors(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusUnprocessableEntity, `{"error": "posição inválida"}`)
	}))

	err := client.Portfolio.SaveSnapshot(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	want := msgPortfolioSnapshot + ": posição inválida"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}
