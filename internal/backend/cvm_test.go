package backend

import (
	"context"
	"net/http"
	"testing"
)

func TestCVMDocumentsRoutesByCompany(t *testing.T) {
	var gotPath, gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		jsonResponse(t, w, http.StatusOK, `{"documents": []}`)
	}))

	filter := DocumentFilter{
		CompanyID:    123,
		DocumentType: "ITR",
		StartDate:    "2024-01-01",
		EndDate:      "2024-01-31",
		Limit:        50,
	}
	if _, err := client.CVM.Documents(context.Background(), filter); err != nil {
		t.Fatalf("Documents: %v", err)
	}
	if gotPath != "/api/documents/by_company/123" {
		t.Fatalf("expected by_company route, got %s", gotPath)
	}
	for _, param := range []string{"document_type=ITR", "start_date=2024-01-01", "end_date=2024-01-31", "limit=50"} {
		if !containsParam(gotQuery, param) {
			t.Errorf("query %q missing %q", gotQuery, param)
		}
	}

	// Without CompanyID the generic route is used, same params.
	filter.CompanyID = 0
	if _, err := client.CVM.Documents(context.Background(), filter); err != nil {
		t.Fatalf("Documents: %v", err)
	}
	if gotPath != "/api/cvm/documents" {
		t.Fatalf("expected generic route, got %s", gotPath)
	}
	if !containsParam(gotQuery, "document_type=ITR") {
		t.Errorf("generic route lost the filter params: %q", gotQuery)
	}
}

func TestCVMDocumentsOmitsUnsetFilters(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		jsonResponse(t, w, http.StatusOK, `{"documents": []}`)
	}))

	if _, err := client.CVM.Documents(context.Background(), DocumentFilter{}); err != nil {
		t.Fatalf("Documents: %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("expected no query params, got %q", gotQuery)
	}
}

func TestCVMDocumentNormalization(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusOK, `{"documents": [
			{"id": 7, "delivery_date": "2024-03-15", "company_name": "ACME", "category": "Fato Relevante", "title": "Aquisição"},
			{"id": "8", "delivery_date": "2024-03-16", "company_name": "ACME", "document_type": "ITR", "document_subtype": "1T24", "document_url": "http://cvm/doc/8"}
		]}`)
	}))

	docs, err := client.CVM.Documents(context.Background(), DocumentFilter{})
	if err != nil {
		t.Fatalf("Documents: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}

	// IDs are strings for this entity regardless of the wire type.
	if docs[0].ID != "7" || docs[1].ID != "8" {
		t.Fatalf("ids not coerced to string: %+v", docs)
	}
	// Missing download_url degrades to the "#" placeholder, never empty.
	if docs[0].Link != "#" {
		t.Fatalf("expected placeholder link, got %q", docs[0].Link)
	}
	if docs[1].Link != "http://cvm/doc/8" {
		t.Fatalf("alias document_url not used: %q", docs[1].Link)
	}
	// category/document_type and title/document_subtype alias pairs.
	if docs[0].Category != "Fato Relevante" || docs[1].Category != "ITR" {
		t.Fatalf("category aliases wrong: %+v", docs)
	}
	if docs[0].Subject != "Aquisição" || docs[1].Subject != "1T24" {
		t.Fatalf("subject aliases wrong: %+v", docs)
	}
}

func TestCVMDocumentTypesBareStrings(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusOK,
			`{"document_types": ["ITR", {"code": "FR", "name": "Fato Relevante", "description": "Comunicados"}]}`)
	}))

	types, err := client.CVM.DocumentTypes(context.Background())
	if err != nil {
		t.Fatalf("DocumentTypes: %v", err)
	}
	if len(types) != 2 {
		t.Fatalf("expected 2 types, got %d", len(types))
	}
	if types[0].Code != "ITR" || types[0].Name != "ITR" || types[0].Description != "ITR" {
		t.Fatalf("bare string not expanded: %+v", types[0])
	}
	if types[1].Name != "Fato Relevante" {
		t.Fatalf("structured type mangled: %+v", types[1])
	}
}

func TestCVMErrorDefaults(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	if _, err := client.CVM.Companies(context.Background()); err == nil || err.Error() != msgCVMCompanies {
		t.Fatalf("companies error = %v, want %q", err, msgCVMCompanies)
	}
	if _, err := client.CVM.DocumentTypes(context.Background()); err == nil || err.Error() != msgCVMDocTypes {
		t.Fatalf("document types error = %v, want %q", err, msgCVMDocTypes)
	}
	if _, err := client.CVM.Documents(context.Background(), DocumentFilter{}); err == nil || err.Error() != msgCVMDocuments {
		t.Fatalf("documents error = %v, want %q", err, msgCVMDocuments)
	}
}

func containsParam(query, param string) bool {
	for start := 0; start+len(param) <= len(query); start++ {
		if query[start:start+len(param)] == param {
			boundedLeft := start == 0 || query[start-1] == '&'
			end := start + len(param)
			boundedRight := end == len(query) || query[end] == '&'
			if boundedLeft && boundedRight {
				return true
			}
		}
	}
	return false
}
