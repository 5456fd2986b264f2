package backend

import (
	"context"
	"net/http"
	"testing"
)

func TestMarketNewsPortugueseAliases(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/news/latest" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit param = %q, want 5", got)
		}
		jsonResponse(t, w, http.StatusOK, `[
			{"id": 10, "titulo": "Selic mantida", "portal": "Valor", "data_publicacao": "2024-06-19T18:00:00",
			 "resumo": "Copom decide", "conteudo_completo": "Texto...", "link_url": "http://valor/x",
			 "imagem_url": "http://valor/x.jpg", "tickers_relacionados": ["PETR4", "VALE3"]},
			{"id": 11, "headline": "IPCA surpreende", "source": "Bloomberg", "timestamp": "2024-06-19T19:00:00",
			 "summary": "Inflação abaixo", "content": "Texto...", "url": "http://b/y", "image_url": "http://b/y.jpg",
			 "tags": ["macro"],
			 "aiAnalysis": {"sentiment": "Positivo", "summary": "Bom para renda variável", "mentionedCompanies": ["B3SA3"]}}
		]`)
	}))

	articles, err := client.News.Latest(context.Background(), 5)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	pt, en := articles[0], articles[1]
	if pt.Headline != "Selic mantida" || pt.Source != "Valor" || pt.URL != "http://valor/x" {
		t.Fatalf("portuguese aliases wrong: %+v", pt)
	}
	if pt.Timestamp != "2024-06-19T18:00:00" || pt.ImageURL != "http://valor/x.jpg" {
		t.Fatalf("portuguese aliases wrong: %+v", pt)
	}
	if len(pt.Tags) != 2 || pt.Tags[0] != "PETR4" {
		t.Fatalf("tags not read from tickers_relacionados: %+v", pt.Tags)
	}
	if pt.Analysis != nil {
		t.Fatalf("article without analysis must keep nil: %+v", pt.Analysis)
	}

	if en.Headline != "IPCA surpreende" || en.Source != "Bloomberg" || en.ImageURL != "http://b/y.jpg" {
		t.Fatalf("english aliases wrong: %+v", en)
	}
	if en.Analysis == nil || en.Analysis.Sentiment != "Positivo" {
		t.Fatalf("ai analysis lost: %+v", en.Analysis)
	}
}

func TestMarketNewsAnalyze(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/news/10/analyze" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		jsonResponse(t, w, http.StatusOK, `{"article": {
			"id": 10, "titulo": "Selic mantida",
			"aiAnalysis": {"sentiment": "Neutro", "summary": "Sem surpresas"}
		}}`)
	}))

	article, err := client.News.Analyze(context.Background(), 10)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if article.Analysis == nil || article.Analysis.Sentiment != "Neutro" {
		t.Fatalf("analysis not normalized: %+v", article)
	}
}

func TestRealtimeQuotesBatch(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/realtime/quotes" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query()["tickers"]; len(got) != 2 {
			t.Errorf("tickers params = %v", got)
		}
		jsonResponse(t, w, http.StatusOK, `{"quotes": [
			{"ticker": "PETR4", "price": 38.2, "change_percent": 1.1, "volume": 1000, "source": "mt5"},
			{"ticker": "VALE3", "price": 61.4, "change_percent": -0.4, "volume": 2000}
		]}`)
	}))

	quotes, err := client.Realtime.Quotes(context.Background(), []string{"PETR4", "VALE3"})
	if err != nil {
		t.Fatalf("Quotes: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	if quotes["PETR4"].Source != "mt5" {
		t.Fatalf("source lost: %+v", quotes["PETR4"])
	}
	// Missing source degrades to the simulated marker, not empty.
	if quotes["VALE3"].Source != "simulated" {
		t.Fatalf("missing source should default: %+v", quotes["VALE3"])
	}
}
