package services

// ExportRow is one line item as it appears in an export, with its
// position and derived total.
type ExportRow struct {
	SNo int
	LineItem
	LineTotal float64
}

// ExportData holds everything an exporter needs to render one document.
type ExportData struct {
	Title string
	Kind  Kind

	// Letterhead
	Company Profile

	// Header
	Number   string
	Date     string
	Status   string
	Incharge string
	Validity string

	Seller   Party
	Customer Party

	Rows []ExportRow

	// Totals
	Totals        Totals
	AmountInWords string

	// Terms
	PaymentTerms  string
	DeliveryTerms string
	Notes         string

	// Disclaimer lines printed at the foot of every page.
	Footer []string
}

// footers holds the disclaimer printed on each kind of document.
var footers = map[Kind][]string{
	KindEnquiry: {
		"This enquiry is subject to our final confirmation.",
	},
	KindQuotation: {
		"This quotation is subject to our final confirmation and prices quoted here in will be changed without prior notice.",
		"Warranty - Not applicable for Import goods",
	},
	KindPurchaseOrder: {
		"This purchase order is subject to our final confirmation and prices quoted here in will be changed without prior notice.",
		"Warranty - Not applicable for Import goods",
	},
	KindInvoice: {
		"This invoice is subject to our final confirmation.",
	},
}

// BuildExportData assembles the export view of doc. Totals come from
// Summarize so every export agrees with the API.
func BuildExportData(doc *Document, company Profile) ExportData {
	rows := make([]ExportRow, len(doc.Items))
	for i, item := range doc.Items {
		rows[i] = ExportRow{
			SNo:       i + 1,
			LineItem:  item,
			LineTotal: LineTotal(item),
		}
	}

	totals := Summarize(*doc)
	var words string
	if doc.Kind.Taxed() {
		words = AmountToWords(totals.GrandTotal)
	}

	return ExportData{
		Title:         doc.Kind.Title(),
		Kind:          doc.Kind,
		Company:       company,
		Number:        doc.Number,
		Date:          doc.Date,
		Status:        string(doc.Status),
		Incharge:      doc.Incharge,
		Validity:      doc.Validity,
		Seller:        doc.Seller,
		Customer:      doc.Customer,
		Rows:          rows,
		Totals:        totals,
		AmountInWords: words,
		PaymentTerms:  doc.PaymentTerms,
		DeliveryTerms: doc.DeliveryTerms,
		Notes:         doc.Notes,
		Footer:        footers[doc.Kind],
	}
}

// ExportFileName returns a download name such as "quotation-QTN-25-26-001.pdf".
func ExportFileName(doc *Document, ext string) string {
	number := doc.Number
	if number == "" {
		number = doc.ID
	}
	return string(doc.Kind) + "-" + number + "." + ext
}
