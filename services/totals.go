package services

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// ParseNumber coerces user input into a finite float64. Anything that is not
// a valid finite number (non-numeric text, empty values, booleans, NaN, ±Inf)
// becomes 0. It never fails.
func ParseNumber(v any) float64 {
	f, _ := parseNumber(v)
	return f
}

// parseNumber is ParseNumber that also reports whether v held a finite number.
func parseNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		v = strings.TrimSpace(x)
	case json.Number:
		v = strings.TrimSpace(string(x))
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// LineTotal returns quantity * unitPrice * (1 - discountPercent/100) at full
// precision. Negative inputs pass through unchanged.
func LineTotal(item LineItem) float64 {
	qty := finite(item.Quantity)
	price := finite(item.UnitPrice)
	discount := finite(item.DiscountPercent)
	if qty == 0 || price == 0 {
		return 0
	}
	return qty * price * (1 - discount/100)
}

// DocumentTotal sums LineTotal over every item of the document.
func DocumentTotal(doc Document) float64 {
	var total float64
	for _, item := range doc.Items {
		total += LineTotal(item)
	}
	return total
}

// GrandTotal applies taxRatePercent to the document total.
func GrandTotal(doc Document, taxRatePercent float64) float64 {
	return DocumentTotal(doc) * (1 + finite(taxRatePercent)/100)
}

// Totals holds the derived monetary figures of a document.
type Totals struct {
	SubTotal       float64 `json:"subTotal"`
	TaxRatePercent float64 `json:"taxRatePercent"`
	TaxAmount      float64 `json:"taxAmount"`
	GrandTotal     float64 `json:"grandTotal"`
}

// Summarize derives the document's totals using its stored tax rate.
// Enquiries never carry tax.
func Summarize(doc Document) Totals {
	rate := finite(doc.TaxRatePercent)
	if !doc.Kind.Taxed() {
		rate = 0
	}
	sub := DocumentTotal(doc)
	grand := GrandTotal(doc, rate)
	return Totals{
		SubTotal:       sub,
		TaxRatePercent: rate,
		TaxAmount:      grand - sub,
		GrandTotal:     grand,
	}
}
