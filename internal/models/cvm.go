package models

// CVMCompany is a company registered with the CVM, as listed by the backend.
type CVMCompany struct {
	ID          int64  `json:"id"`
	Ticker      string `json:"ticker"`
	CompanyName string `json:"company_name"`
}

// CVMDocumentType is a regulatory filing category. The backend sometimes
// returns bare category strings; those are expanded with code, name and
// description all set to the string.
type CVMDocumentType struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CVMDocument is a normalized regulatory filing. IDs are strings for this
// entity regardless of the wire type. Date stays ISO-8601; Link falls back to
// "#" when the backend provides no URL.
type CVMDocument struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Company  string `json:"company"`
	Category string `json:"category"`
	Subject  string `json:"subject"`
	Link     string `json:"link"`
}
