// Package views renders printable HTML pages for documents.
package views

import (
	"fmt"
	"strconv"
	"strings"

	"stockdesk/services"
)

// detail is one labelled value on the page; empty values are not printed.
type detail struct {
	Label string
	Value string
}

func pageTitle(data services.ExportData) string {
	return strings.TrimSpace(data.Title + " " + data.Number)
}

func contactLine(p services.Profile) string {
	return strings.Join(nonEmpty(p.Phone, p.Email), " | ")
}

func headerDetails(data services.ExportData) []detail {
	return presentDetails(
		detail{"No", data.Number},
		detail{"Date", data.Date},
		detail{"Status", data.Status},
		detail{"Incharge", data.Incharge},
		detail{"Validity", data.Validity},
	)
}

func termDetails(data services.ExportData) []detail {
	return presentDetails(
		detail{"Payment Terms", data.PaymentTerms},
		detail{"Delivery Terms", data.DeliveryTerms},
		detail{"Notes", data.Notes},
	)
}

func presentDetails(details ...detail) []detail {
	out := details[:0]
	for _, d := range details {
		if strings.TrimSpace(d.Value) != "" {
			out = append(out, d)
		}
	}
	return out
}

func serial(r services.ExportRow) string {
	return strconv.Itoa(r.SNo)
}

func gstLabel(t services.Totals) string {
	return fmt.Sprintf("GST (%s)", services.FormatPercent(t.TaxRatePercent))
}

func nonEmpty(values ...string) []string {
	out := values[:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
