package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/painelfin/painelgo/internal/models"
)

const (
	msgCVMCompanies = "Erro ao buscar empresas"
	msgCVMDocTypes  = "Erro ao buscar tipos de documento"
	msgCVMDocuments = "Erro ao buscar documentos"
)

// CVMService reads regulatory filings and their filter dimensions.
type CVMService struct {
	rest *resty.Client
}

// DocumentFilter narrows a Documents query. Zero values are simply not sent;
// unrecognized backend filters cannot be expressed.
type DocumentFilter struct {
	CompanyID    int64
	DocumentType string
	StartDate    string
	EndDate      string
	Limit        int
}

// Companies lists the companies documents can be filtered by.
func (s *CVMService) Companies(ctx context.Context) ([]models.CVMCompany, error) {
	resp, err := s.rest.R().SetContext(ctx).Get("/cvm/companies")
	if err != nil {
		return nil, transportError("cvm.companies", msgCVMCompanies, err)
	}
	if !resp.IsSuccess() {
		return nil, apiError("cvm.companies", msgCVMCompanies, resp)
	}

	items, err := unwrapList(resp.Body(), "companies", "data")
	if err != nil {
		return nil, transportError("cvm.companies", msgCVMCompanies, err)
	}

	out := make([]models.CVMCompany, 0, len(items))
	for _, it := range items {
		out = append(out, models.CVMCompany{
			ID:          it.intID("id"),
			Ticker:      it.firstString("ticker"),
			CompanyName: it.firstString("company_name", "name"),
		})
	}
	return out, nil
}

// DocumentTypes lists the filing categories. The backend returns either
// structured objects or bare category strings; bare strings are expanded
// with code, name and description all equal.
func (s *CVMService) DocumentTypes(ctx context.Context) ([]models.CVMDocumentType, error) {
	resp, err := s.rest.R().SetContext(ctx).Get("/cvm/document-types")
	if err != nil {
		return nil, transportError("cvm.document_types", msgCVMDocTypes, err)
	}
	if !resp.IsSuccess() {
		return nil, apiError("cvm.document_types", msgCVMDocTypes, resp)
	}

	var body struct {
		DocumentTypes []json.RawMessage `json:"document_types"`
	}
	if err := unmarshalBody(resp.Body(), &body); err != nil {
		return nil, transportError("cvm.document_types", msgCVMDocTypes, err)
	}

	out := make([]models.CVMDocumentType, 0, len(body.DocumentTypes))
	for _, raw := range body.DocumentTypes {
		var name string
		if err := json.Unmarshal(raw, &name); err == nil {
			out = append(out, models.CVMDocumentType{Code: name, Name: name, Description: name})
			continue
		}
		var dt models.CVMDocumentType
		if err := json.Unmarshal(raw, &dt); err != nil {
			return nil, transportError("cvm.document_types", msgCVMDocTypes, err)
		}
		out = append(out, dt)
	}
	return out, nil
}

// Documents fetches filings. A filter with CompanyID set routes to the
// by-company endpoint; both routes share the same query parameters, built
// only from the filter fields that are set.
func (s *CVMService) Documents(ctx context.Context, filter DocumentFilter) ([]models.CVMDocument, error) {
	req := s.rest.R().SetContext(ctx)
	if filter.DocumentType != "" {
		req.SetQueryParam("document_type", filter.DocumentType)
	}
	if filter.StartDate != "" {
		req.SetQueryParam("start_date", filter.StartDate)
	}
	if filter.EndDate != "" {
		req.SetQueryParam("end_date", filter.EndDate)
	}
	if filter.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(filter.Limit))
	}

	path := "/cvm/documents"
	if filter.CompanyID > 0 {
		path = fmt.Sprintf("/documents/by_company/%d", filter.CompanyID)
	}

	resp, err := req.Get(path)
	if err != nil {
		return nil, transportError("cvm.documents", msgCVMDocuments, err)
	}
	if !resp.IsSuccess() {
		return nil, apiError("cvm.documents", msgCVMDocuments, resp)
	}

	items, err := unwrapList(resp.Body(), "documents", "data")
	if err != nil {
		return nil, transportError("cvm.documents", msgCVMDocuments, err)
	}

	out := make([]models.CVMDocument, 0, len(items))
	for _, it := range items {
		out = append(out, models.CVMDocument{
			ID:       it.stringID("id"),
			Date:     it.firstString("delivery_date"),
			Company:  it.firstString("company_name"),
			Category: it.firstString("category", "document_type"),
			Subject:  it.firstString("title", "document_subtype"),
			Link:     it.stringOr("#", "download_url", "document_url"),
		})
	}
	return out, nil
}
