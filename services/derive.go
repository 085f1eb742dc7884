package services

import (
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DeriveDocument starts a new document of kind from src: a quotation,
// purchase order or invoice raised against an enquiry. Parties, items and
// terms are copied; the number, date and id are left for the caller. The
// status and tax rate are the defaults of the new kind. src is not modified.
func DeriveDocument(src *Document, kind Kind, rules Rules) (*Document, error) {
	switch {
	case !slices.Contains(Kinds, kind):
		return nil, validation.Errors{"kind": validation.NewError("validation_derive_kind", "unknown document kind")}
	case kind == KindEnquiry:
		return nil, validation.Errors{"kind": validation.NewError("validation_derive_kind", "an enquiry cannot be derived from another document")}
	case kind == src.Kind:
		return nil, validation.Errors{"kind": validation.NewError("validation_derive_kind", "the document is already a "+kind.Label())}
	}

	doc := NewDocument(src.OwnerID, kind, rules)
	doc.Seller = src.Seller
	doc.Customer = src.Customer
	doc.Items = slices.Clone(src.Items)
	if doc.Items == nil {
		doc.Items = []LineItem{}
	}
	doc.Incharge = src.Incharge
	doc.Validity = src.Validity
	doc.PaymentTerms = src.PaymentTerms
	doc.DeliveryTerms = src.DeliveryTerms
	doc.Notes = src.Notes
	return doc, nil
}
