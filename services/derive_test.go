package services

import (
	"reflect"
	"testing"
)

func enquiryFixture() *Document {
	return &Document{
		ID:            "enq1",
		OwnerID:       "user1",
		Kind:          KindEnquiry,
		Number:        "ENQ-25-26-001",
		Date:          "2025-05-20",
		Status:        "closed",
		Seller:        Party{Name: "Fervid Traders", Address: "Bengaluru"},
		Customer:      Party{Name: "Acme", Address: "Pune"},
		Incharge:      "R. Kumar",
		PaymentTerms:  "Advance",
		DeliveryTerms: "Ex-works",
		Notes:         "Urgent",
		Items: []LineItem{
			{Description: "Bearing", PartNumber: "6205", MadeBy: "SKF", Quantity: 10, UnitPrice: 313, DiscountPercent: 10, SubVendorName: "Hub", SubVendorPrice: 280, UnitOfMeasure: "nes"},
			{Description: "Seal", Quantity: 2, UnitPrice: 1522},
		},
	}
}

func TestDeriveDocument(t *testing.T) {
	src := enquiryFixture()
	before := src.Clone()

	doc, err := DeriveDocument(src, KindQuotation, DefaultRules())
	if err != nil {
		t.Fatalf("DeriveDocument() error = %v", err)
	}

	if doc.ID != "" || doc.Number != "" || doc.Date != "" {
		t.Errorf("id/number/date should be empty, got %q/%q/%q", doc.ID, doc.Number, doc.Date)
	}
	if doc.Kind != KindQuotation || doc.OwnerID != "user1" {
		t.Errorf("kind/owner = %s/%s", doc.Kind, doc.OwnerID)
	}
	if doc.Status != "pending" {
		t.Errorf("Status = %q, want pending", doc.Status)
	}
	if doc.TaxRatePercent != DefaultTaxRate {
		t.Errorf("TaxRatePercent = %v, want %v", doc.TaxRatePercent, DefaultTaxRate)
	}
	if !reflect.DeepEqual(doc.Items, src.Items) {
		t.Errorf("Items = %+v, want %+v", doc.Items, src.Items)
	}
	if doc.Seller != src.Seller || doc.Customer != src.Customer {
		t.Errorf("parties = %+v / %+v", doc.Seller, doc.Customer)
	}
	if doc.PaymentTerms != "Advance" || doc.DeliveryTerms != "Ex-works" || doc.Notes != "Urgent" || doc.Incharge != "R. Kumar" {
		t.Errorf("terms not copied: %+v", doc)
	}
	if !approxEqual(DocumentTotal(*doc), DocumentTotal(*src)) {
		t.Errorf("DocumentTotal = %v, want %v", DocumentTotal(*doc), DocumentTotal(*src))
	}

	doc.Items[0].Quantity = 99
	doc.Customer.Name = "Changed"
	if !reflect.DeepEqual(src, before) {
		t.Errorf("source document was modified: %+v", src)
	}
}

func TestDeriveDocument_TaxFollowsRules(t *testing.T) {
	rules := DefaultRules()
	rules.DefaultTaxRate = 12

	doc, err := DeriveDocument(enquiryFixture(), KindPurchaseOrder, rules)
	if err != nil {
		t.Fatalf("DeriveDocument() error = %v", err)
	}
	if doc.TaxRatePercent != 12 {
		t.Errorf("TaxRatePercent = %v, want 12", doc.TaxRatePercent)
	}
	if err := ValidateDocument(doc, rules); fieldError(err, "documentNumber") == nil {
		t.Errorf("derived document needs a number before it validates, got %v", err)
	}
}

func TestDeriveDocument_RejectsKind(t *testing.T) {
	quotation := enquiryFixture()
	quotation.Kind = KindQuotation

	tests := []struct {
		name string
		src  *Document
		kind Kind
	}{
		{"unknown", enquiryFixture(), "memo"},
		{"into enquiry", quotation, KindEnquiry},
		{"same kind", quotation, KindQuotation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeriveDocument(tt.src, tt.kind, DefaultRules())
			if fieldError(err, "kind") == nil {
				t.Errorf("expected a kind error, got %v", err)
			}
		})
	}
}
