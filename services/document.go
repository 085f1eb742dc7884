package services

import (
	"strings"
	"time"
)

// Kind identifies which business document a Document represents.
type Kind string

const (
	KindEnquiry       Kind = "enquiry"
	KindQuotation     Kind = "quotation"
	KindPurchaseOrder Kind = "purchase_order"
	KindInvoice       Kind = "invoice"
)

// Kinds lists every document kind in display order.
var Kinds = []Kind{KindEnquiry, KindQuotation, KindPurchaseOrder, KindInvoice}

// ParseKind normalises a kind label. Unknown labels are returned lower-cased
// so validation can reject them.
func ParseKind(s string) Kind {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	if norm == "po" {
		return KindPurchaseOrder
	}
	return Kind(norm)
}

// Title is the heading printed on exports.
func (k Kind) Title() string {
	switch k {
	case KindEnquiry:
		return "ENQUIRY"
	case KindQuotation:
		return "QUOTATION"
	case KindPurchaseOrder:
		return "PURCHASE ORDER"
	case KindInvoice:
		return "INVOICE"
	}
	return strings.ToUpper(string(k))
}

// Label is the human-readable, title-cased name of the kind.
func (k Kind) Label() string {
	switch k {
	case KindPurchaseOrder:
		return "Purchase Order"
	case "":
		return ""
	}
	s := string(k)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Taxed reports whether documents of this kind carry tax. Enquiries never do.
func (k Kind) Taxed() bool {
	return k != KindEnquiry
}

// Status is a document status label from the configured StatusSet.
type Status string

// StatusSet is the closed set of statuses a document may carry. The first
// entry is the status of a freshly created document.
type StatusSet []Status

// DefaultStatuses is the status set used when none is configured.
var DefaultStatuses = StatusSet{"pending", "partial", "closed"}

// Default returns the initial status for new documents.
func (s StatusSet) Default() Status {
	if len(s) == 0 {
		return DefaultStatuses[0]
	}
	return s[0]
}

// Contains reports whether st belongs to the set.
func (s StatusSet) Contains(st Status) bool {
	for _, v := range s {
		if v == st {
			return true
		}
	}
	return false
}

// ParseStatus normalises a status label: trimmed and lower-cased, with an
// empty label replaced by the set's default.
func (s StatusSet) ParseStatus(label string) Status {
	norm := strings.ToLower(strings.TrimSpace(label))
	if norm == "" {
		return s.Default()
	}
	return Status(norm)
}

// Party is a named counterparty (seller or customer) on a document.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// LineItem is one row of a document. Its extended amount is always derived
// with LineTotal and never stored.
type LineItem struct {
	Description     string  `json:"description"`
	PartNumber      string  `json:"partNumber"`
	MadeBy          string  `json:"madeBy"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unitPrice"`
	DiscountPercent float64 `json:"discountPercent"`
	SubVendorName   string  `json:"subVendorName"`
	SubVendorPrice  float64 `json:"subVendorPrice"`
	UnitOfMeasure   string  `json:"unitOfMeasure"`
}

// IsBlank reports whether the item carries no data at all.
func (it LineItem) IsBlank() bool {
	return it == LineItem{}
}

// Document is an enquiry, quotation, purchase order or invoice together with
// its ordered line items.
type Document struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"ownerUserId"`
	Kind           Kind       `json:"kind"`
	Number         string     `json:"documentNumber"`
	Date           string     `json:"date"`
	Status         Status     `json:"status"`
	Seller         Party      `json:"seller"`
	Customer       Party      `json:"customer"`
	Items          []LineItem `json:"items"`
	TaxRatePercent float64    `json:"taxRatePercent"`
	Incharge       string     `json:"incharge"`
	Validity       string     `json:"validity"`
	PaymentTerms   string     `json:"paymentTerms"`
	DeliveryTerms  string     `json:"deliveryTerms"`
	Notes          string     `json:"notes"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// NewDocument returns an empty document of the given kind with the default
// status and the kind's default tax rate.
func NewDocument(ownerID string, kind Kind, rules Rules) *Document {
	return &Document{
		OwnerID:        ownerID,
		Kind:           kind,
		Status:         rules.statuses().Default(),
		TaxRatePercent: rules.TaxRateFor(kind),
		Items:          []LineItem{},
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Items = make([]LineItem, len(d.Items))
	copy(cp.Items, d.Items)
	return &cp
}
