package certificates

import "html/template"

// Record is the persisted certificate entry in the users_certificates
// table, keyed by recipient id. It is written once on first issuance
// and never updated afterwards.
type Record struct {
	ID    string `json:"id" dynamodbav:"id"`
	Name  string `json:"name" dynamodbav:"name"`
	Grade string `json:"grade" dynamodbav:"grade"`
}

// IssueRequest is the inbound payload for certificate issuance.
type IssueRequest struct {
	ID    string `json:"id" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Grade string `json:"grade" binding:"required"`
}

// IssueResult describes where the generated PDF ended up.
type IssueResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// CertificateInfo combines the stored record with the public location
// of its PDF.
type CertificateInfo struct {
	Record
	PDFURL string `json:"pdf_url"`
}

// RenderContext feeds the template substitution for one request. It is
// built fresh per request and never persisted.
type RenderContext struct {
	ID    string
	Name  string
	Grade string
	Date  string
	Medal template.URL
}
