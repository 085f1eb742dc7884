package services

import (
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AmountPolicy decides whether negative quantities and prices are accepted.
type AmountPolicy string

const (
	// AmountsForbidNegative rejects negative quantity, unit price and sale price.
	AmountsForbidNegative AmountPolicy = "forbid"
	// AmountsAllowCredit accepts negative amounts as returns/credits.
	AmountsAllowCredit AmountPolicy = "credit"
)

// DefaultTaxRate is the GST rate applied to taxed kinds when none is configured.
const DefaultTaxRate = 18.0

// MaxTextLength is the longest text, in characters, a document or item field
// may hold. It matches the limit of the text fields in the database.
const MaxTextLength = 5000

// Rules carries the configurable parts of document validation.
type Rules struct {
	Statuses       StatusSet
	AmountPolicy   AmountPolicy
	DefaultTaxRate float64
}

// DefaultRules returns the rules used when nothing is configured.
func DefaultRules() Rules {
	return Rules{
		Statuses:       DefaultStatuses,
		AmountPolicy:   AmountsForbidNegative,
		DefaultTaxRate: DefaultTaxRate,
	}
}

func (r Rules) statuses() StatusSet {
	if len(r.Statuses) == 0 {
		return DefaultStatuses
	}
	return r.Statuses
}

// TaxRateFor returns the default tax rate of a new document of kind k.
func (r Rules) TaxRateFor(k Kind) float64 {
	if !k.Taxed() {
		return 0
	}
	return r.DefaultTaxRate
}

// ValidateDocument checks a document before it is saved. The returned error,
// when not nil, is a validation.Errors keyed by JSON field name; item errors
// are nested under "items" keyed by item index.
func ValidateDocument(doc *Document, rules Rules) error {
	kinds := make([]any, len(Kinds))
	for i, k := range Kinds {
		kinds[i] = k
	}
	statuses := make([]any, 0, len(rules.statuses()))
	for _, s := range rules.statuses() {
		statuses = append(statuses, s)
	}

	return validation.ValidateStruct(doc,
		validation.Field(&doc.OwnerID, validation.Required),
		validation.Field(&doc.Kind, validation.Required, validation.In(kinds...)),
		validation.Field(&doc.Number, validation.Required, validation.Length(1, 64)),
		validation.Field(&doc.Date, validation.Date("2006-01-02")),
		validation.Field(&doc.Status, validation.Required, validation.In(statuses...)),
		validation.Field(&doc.TaxRatePercent, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&doc.Seller, validation.By(validatePartyText), validation.Skip),
		validation.Field(&doc.Customer, validation.By(validatePartyText), validation.Skip),
		validation.Field(&doc.Incharge, textLength),
		validation.Field(&doc.Validity, textLength),
		validation.Field(&doc.PaymentTerms, textLength),
		validation.Field(&doc.DeliveryTerms, textLength),
		validation.Field(&doc.Notes, textLength),
		validation.Field(&doc.Items, validation.By(func(any) error {
			return validateItems(doc.Items, rules.AmountPolicy)
		})),
	)
}

var textLength = validation.RuneLength(0, MaxTextLength)

// validatePartyText only bounds the party fields; a document may leave its
// seller or customer blank.
func validatePartyText(value any) error {
	p, _ := value.(Party)
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, textLength),
		validation.Field(&p.Address, textLength),
	)
}

func validateItems(items []LineItem, policy AmountPolicy) error {
	errs := validation.Errors{}
	for i := range items {
		if err := validateItem(&items[i], policy); err != nil {
			errs[strconv.Itoa(i)] = err
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateItem(item *LineItem, policy AmountPolicy) error {
	var amountRules []validation.Rule
	if policy != AmountsAllowCredit {
		amountRules = append(amountRules, validation.Min(0.0))
	}
	return validation.ValidateStruct(item,
		validation.Field(&item.Quantity, amountRules...),
		validation.Field(&item.UnitPrice, amountRules...),
		validation.Field(&item.SubVendorPrice, amountRules...),
		validation.Field(&item.DiscountPercent, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&item.UnitOfMeasure, validation.Length(0, 16)),
		validation.Field(&item.Description, textLength),
		validation.Field(&item.PartNumber, textLength),
		validation.Field(&item.MadeBy, textLength),
		validation.Field(&item.SubVendorName, textLength),
	)
}

// LineItemInput is a line item as received from a client. Numeric fields
// accept numbers or numeric strings; anything else becomes 0.
type LineItemInput struct {
	Description     string `json:"description"`
	PartNumber      string `json:"partNumber"`
	MadeBy          string `json:"madeBy"`
	Quantity        any    `json:"quantity"`
	UnitPrice       any    `json:"unitPrice"`
	DiscountPercent any    `json:"discountPercent"`
	SubVendorName   string `json:"subVendorName"`
	SubVendorPrice  any    `json:"subVendorPrice"`
	UnitOfMeasure   string `json:"unitOfMeasure"`
}

// DocumentInput is a document as received from a client.
type DocumentInput struct {
	ID             string          `json:"id"`
	Kind           string          `json:"kind"`
	Number         string          `json:"documentNumber"`
	Date           string          `json:"date"`
	Status         string          `json:"status"`
	Seller         Party           `json:"seller"`
	Customer       Party           `json:"customer"`
	Items          []LineItemInput `json:"items"`
	TaxRatePercent any             `json:"taxRatePercent"`
	Incharge       string          `json:"incharge"`
	Validity       string          `json:"validity"`
	PaymentTerms   string          `json:"paymentTerms"`
	DeliveryTerms  string          `json:"deliveryTerms"`
	Notes          string          `json:"notes"`
}

// ToLineItem coerces the input into a LineItem.
func (in LineItemInput) ToLineItem() LineItem {
	return LineItem{
		Description:     strings.TrimSpace(in.Description),
		PartNumber:      strings.TrimSpace(in.PartNumber),
		MadeBy:          strings.TrimSpace(in.MadeBy),
		Quantity:        ParseNumber(in.Quantity),
		UnitPrice:       ParseNumber(in.UnitPrice),
		DiscountPercent: ParseNumber(in.DiscountPercent),
		SubVendorName:   strings.TrimSpace(in.SubVendorName),
		SubVendorPrice:  ParseNumber(in.SubVendorPrice),
		UnitOfMeasure:   strings.TrimSpace(in.UnitOfMeasure),
	}
}

// BuildDocument turns client input into a validated Document owned by
// ownerID. Blank item rows are dropped. A missing tax rate takes the kind's
// default and enquiries are always untaxed.
func BuildDocument(in DocumentInput, ownerID string, rules Rules) (*Document, error) {
	kind := ParseKind(in.Kind)
	doc := &Document{
		ID:            strings.TrimSpace(in.ID),
		OwnerID:       ownerID,
		Kind:          kind,
		Number:        strings.TrimSpace(in.Number),
		Date:          strings.TrimSpace(in.Date),
		Status:        rules.statuses().ParseStatus(in.Status),
		Seller:        trimParty(in.Seller),
		Customer:      trimParty(in.Customer),
		Items:         make([]LineItem, 0, len(in.Items)),
		Incharge:      strings.TrimSpace(in.Incharge),
		Validity:      strings.TrimSpace(in.Validity),
		PaymentTerms:  strings.TrimSpace(in.PaymentTerms),
		DeliveryTerms: strings.TrimSpace(in.DeliveryTerms),
		Notes:         strings.TrimSpace(in.Notes),
	}

	switch {
	case !kind.Taxed():
		doc.TaxRatePercent = 0
	case in.TaxRatePercent == nil:
		doc.TaxRatePercent = rules.TaxRateFor(kind)
	default:
		doc.TaxRatePercent = ParseNumber(in.TaxRatePercent)
	}

	for _, it := range in.Items {
		item := it.ToLineItem()
		if item.IsBlank() {
			continue
		}
		doc.Items = append(doc.Items, item)
	}

	if err := ValidateDocument(doc, rules); err != nil {
		return nil, err
	}
	return doc, nil
}

func trimParty(p Party) Party {
	return Party{Name: strings.TrimSpace(p.Name), Address: strings.TrimSpace(p.Address)}
}
