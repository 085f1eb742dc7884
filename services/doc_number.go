package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// numberPrefixes maps each kind to its document number prefix.
var numberPrefixes = map[Kind]string{
	KindEnquiry:       "ENQ",
	KindQuotation:     "QTN",
	KindPurchaseOrder: "PO",
	KindInvoice:       "INV",
}

// GetFiscalYear returns the Indian fiscal year string for a given date.
// Indian fiscal year runs April to March.
// Jan 2026 → "25-26", May 2026 → "26-27"
func GetFiscalYear(t time.Time) string {
	year := t.Year()
	startYear := year
	if t.Month() < time.April {
		startYear = year - 1
	}
	endYear := startYear + 1

	return fmt.Sprintf("%02d-%02d", startYear%100, endYear%100)
}

// numberPrefix returns the "<PREFIX>-<FY>-" stem shared by every number of
// kind in the fiscal year containing now.
func numberPrefix(kind Kind, now time.Time) string {
	prefix, ok := numberPrefixes[kind]
	if !ok {
		prefix = strings.ToUpper(string(kind))
	}
	return fmt.Sprintf("%s-%s-", prefix, GetFiscalYear(now))
}

// formatDocumentNumber constructs the number string from components.
func formatDocumentNumber(stem string, sequence int) string {
	return fmt.Sprintf("%s%03d", stem, sequence)
}

// NextDocumentNumber suggests the next number for a document of kind owned
// by ownerID. Format: {PREFIX}-{fiscal_year}-{sequence}, where sequence is
// one past the highest sequence already used in that fiscal year.
func NextDocumentNumber(store DocumentStore, ownerID string, kind Kind, now time.Time) (string, error) {
	docs, err := store.List(ownerID, kind)
	if err != nil {
		return "", fmt.Errorf("list %s documents: %w", kind, err)
	}

	stem := numberPrefix(kind, now)
	highest := 0
	for _, d := range docs {
		rest, ok := strings.CutPrefix(d.Number, stem)
		if !ok {
			continue
		}
		seq, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		highest = max(highest, seq)
	}

	return formatDocumentNumber(stem, highest+1), nil
}
