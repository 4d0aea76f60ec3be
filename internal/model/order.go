// Package model defines the core types flowing through the order parsing
// and enrichment pipeline.
package model

import "strings"

// RawDocument is a single inbound order-confirmation document as delivered
// by the ingestion collaborator. HTML vendors populate HTML; PDF vendors
// deliver already-extracted page text in PlainText. Subject carries the
// email subject line when the transport exposes one.
type RawDocument struct {
	HTML        string       `json:"html,omitempty"`
	PlainText   string       `json:"plain_text,omitempty"`
	Subject     string       `json:"subject,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is an opaque document attachment (e.g. the original PDF).
type Attachment struct {
	ContentType string `json:"content_type"`
	Filename    string `json:"filename"`
	Bytes       []byte `json:"bytes,omitempty"`
}

// Address holds the buyer's shipping address as stated in the document.
type Address struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// ParsedOrder is the normalized result of parsing one vendor document.
// It is created once per parse and is immutable thereafter, except that
// its items are enriched in place by the enrichment stage.
type ParsedOrder struct {
	Vendor        string     `json:"vendor"`
	OrderNumber   string     `json:"order_number,omitempty"`
	OrderDate     string     `json:"order_date,omitempty"`
	RepName       string     `json:"rep_name,omitempty"`
	AccountNumber string     `json:"account_number,omitempty"`
	Address       *Address   `json:"address,omitempty"`
	Items         []LineItem `json:"items"`
	TotalPieces   int        `json:"total_pieces,omitempty"`
	TotalAmount   string     `json:"total_amount,omitempty"`

	// Warnings collects parse gaps: expected fields or structures that were
	// absent from the document. A warning is a data-quality signal, never a
	// failure.
	Warnings []string `json:"warnings,omitempty"`
}

// Warn records a parse-gap warning on the order.
func (o *ParsedOrder) Warn(msg string) {
	o.Warnings = append(o.Warnings, msg)
}

// LineItem is one ordered frame as stated by the vendor document.
type LineItem struct {
	Brand     string `json:"brand,omitempty"`
	Model     string `json:"model"`
	ColorCode string `json:"color_code,omitempty"`
	ColorName string `json:"color_name,omitempty"`
	EyeSize   string `json:"eye_size,omitempty"`
	Bridge    string `json:"bridge,omitempty"`
	Temple    string `json:"temple,omitempty"`
	Quantity  int    `json:"quantity"`

	// UPC is set when the document itself carries an identifier (e.g.
	// embedded in a product-image URL); otherwise enrichment fills it in.
	UPC string `json:"upc,omitempty"`

	// RawIDs holds vendor-specific identifiers lifted verbatim from the
	// document (stock numbers, SKU fragments, image URLs).
	RawIDs map[string]string `json:"raw_ids,omitempty"`
}

// SetRawID records a vendor-specific identifier on the item.
func (li *LineItem) SetRawID(key, value string) {
	if value == "" {
		return
	}
	if li.RawIDs == nil {
		li.RawIDs = make(map[string]string)
	}
	li.RawIDs[key] = value
}

// SearchKey returns the token used to query a vendor catalog for this item:
// the document-carried UPC when present, otherwise the model/style name.
func (li *LineItem) SearchKey() string {
	if li.UPC != "" {
		return li.UPC
	}
	return strings.TrimSpace(li.Model)
}
