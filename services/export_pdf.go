package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	greyText  = &props.Color{Red: 100, Green: 100, Blue: 100}
	darkFill  = &props.Color{Red: 33, Green: 37, Blue: 41}
	whiteText = &props.Color{Red: 255, Green: 255, Blue: 255}
	lightFill = &props.Color{Red: 245, Green: 245, Blue: 245}
	altFill   = &props.Color{Red: 248, Green: 249, Blue: 250}
)

// GeneratePDF creates an A4 PDF for one document using maroto/v2 and returns
// the raw bytes. Long item lists continue on following pages; the footer
// disclaimer and page numbers repeat on every page.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterFooter(footerRows(data)...); err != nil {
		return nil, fmt.Errorf("register footer: %w", err)
	}

	addHeader(m, data)
	addDetails(m, data)
	addParties(m, data)
	addItemsTable(m, data)
	addTotals(m, data)
	addAmountInWords(m, data)
	addTerms(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s PDF: %w", data.Kind, err)
	}

	return doc.GetBytes(), nil
}

// addHeader adds the company letterhead (left) and document title (right).
func addHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(7).Add(
				text.New(data.Company.CompanyName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(5).Add(
				text.New(data.Title, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: darkFill,
				}),
			),
		),
	)

	contact := joinNonEmpty([]string{data.Company.Phone, data.Company.Email}, " | ")
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New(data.Company.Address, props.Text{Size: 8, Color: greyText})),
		),
		row.New(6).Add(
			col.New(12).Add(text.New(contact, props.Text{Size: 8, Color: greyText})),
		),
	)

	m.AddRows(row.New(3))
}

// addDetails adds the number/date/status box.
func addDetails(m core.Maroto, data ExportData) {
	label := props.Text{Size: 7, Style: fontstyle.Bold, Color: greyText}
	value := props.Text{Size: 8}
	cell := &props.Cell{BackgroundColor: lightFill}

	details := []struct{ label, value string }{
		{"No", data.Number},
		{"Date", data.Date},
		{"Status", data.Status},
		{"Incharge", data.Incharge},
		{"Validity", data.Validity},
	}

	var cols []core.Col
	for _, d := range details {
		if d.value == "" {
			continue
		}
		cols = append(cols,
			col.New(1).Add(text.New(d.label+":", label)).WithStyle(cell),
			col.New(1).Add(text.New(d.value, value)).WithStyle(cell),
		)
	}
	if len(cols) == 0 {
		return
	}
	// Fill the rest of the grid so the shaded band spans the page.
	if used := len(cols); used < 12 {
		cols = append(cols, col.New(12-used).WithStyle(cell))
	}

	m.AddRows(row.New(8).Add(cols...))
	m.AddRows(row.New(3))
}

// addParties adds the customer and seller blocks side by side.
func addParties(m core.Maroto, data ExportData) {
	sectionLabel := props.Text{Size: 7, Style: fontstyle.Bold, Color: greyText}
	boldValue := props.Text{Size: 9, Style: fontstyle.Bold}
	valueStyle := props.Text{Size: 8}
	headerCell := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 243, Blue: 239}}

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New("CUSTOMER", sectionLabel)).WithStyle(headerCell),
			col.New(6).Add(text.New("SELLER", sectionLabel)).WithStyle(headerCell),
		),
		row.New(7).Add(
			col.New(6).Add(text.New(data.Customer.Name, boldValue)),
			col.New(6).Add(text.New(data.Seller.Name, boldValue)),
		),
	)

	if data.Customer.Address != "" || data.Seller.Address != "" {
		m.AddRows(
			row.New(10).Add(
				col.New(6).Add(text.New(data.Customer.Address, valueStyle)),
				col.New(6).Add(text.New(data.Seller.Address, valueStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addItemsTable adds the line items table with header and body rows.
func addItemsTable(m core.Maroto, data ExportData) {
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: whiteText,
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: darkFill}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("S.No", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Part no", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Made", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("UOM", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Unit Price", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Disc %", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Total", headerText)).WithStyle(&headerCell),
		),
	)

	if len(data.Rows) == 0 {
		m.AddRows(
			row.New(8).Add(
				col.New(12).Add(text.New("No items", props.Text{Size: 8, Align: align.Center, Color: greyText})),
			),
		)
	}

	for i, item := range data.Rows {
		bodyText := props.Text{Size: 7, Align: align.Center}
		bodyTextLeft := props.Text{Size: 7, Align: align.Left}
		bodyTextRight := props.Text{Size: 7, Align: align.Right}

		cols := []core.Col{
			col.New(1).Add(text.New(fmt.Sprintf("%d", item.SNo), bodyText)),
			col.New(3).Add(text.New(item.Description, bodyTextLeft)),
			col.New(1).Add(text.New(item.PartNumber, bodyText)),
			col.New(1).Add(text.New(item.MadeBy, bodyText)),
			col.New(1).Add(text.New(FormatQty(item.Quantity), bodyTextRight)),
			col.New(1).Add(text.New(item.UnitOfMeasure, bodyText)),
			col.New(1).Add(text.New(FormatAmount(item.UnitPrice), bodyTextRight)),
			col.New(1).Add(text.New(FormatPercent(item.DiscountPercent), bodyText)),
			col.New(2).Add(text.New(FormatINR(item.LineTotal), bodyTextRight)),
		}
		if i%2 == 1 {
			for j := range cols {
				cols[j] = cols[j].WithStyle(&props.Cell{BackgroundColor: altFill})
			}
		}

		m.AddRows(row.New(7).Add(cols...))
	}

	m.AddRows(row.New(2))
}

// addTotals adds right-aligned total rows. Untaxed documents print a single
// "Total Amount" line; taxed ones print the GST breakdown.
func addTotals(m core.Maroto, data ExportData) {
	summaryCell := &props.Cell{BackgroundColor: lightFill}
	labelStyle := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := props.Text{Size: 8, Align: align.Right}
	grandStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: whiteText}
	grandCell := &props.Cell{BackgroundColor: darkFill}

	t := data.Totals
	if t.TaxRatePercent == 0 {
		m.AddRows(
			row.New(8).Add(
				col.New(9).Add(text.New("Total Amount", grandStyle)).WithStyle(grandCell),
				col.New(3).Add(text.New(FormatINR(t.GrandTotal), grandStyle)).WithStyle(grandCell),
			),
		)
		m.AddRows(row.New(3))
		return
	}

	m.AddRows(
		row.New(7).Add(
			col.New(9).Add(text.New("Sub Total", labelStyle)).WithStyle(summaryCell),
			col.New(3).Add(text.New(FormatINR(t.SubTotal), valueStyle)).WithStyle(summaryCell),
		),
		row.New(7).Add(
			col.New(9).Add(text.New(fmt.Sprintf("GST (%s)", FormatPercent(t.TaxRatePercent)), labelStyle)).WithStyle(summaryCell),
			col.New(3).Add(text.New(FormatINR(t.TaxAmount), valueStyle)).WithStyle(summaryCell),
		),
		row.New(8).Add(
			col.New(9).Add(text.New("Grand Total", grandStyle)).WithStyle(grandCell),
			col.New(3).Add(text.New(FormatINR(t.GrandTotal), grandStyle)).WithStyle(grandCell),
		),
	)

	m.AddRows(row.New(3))
}

// addAmountInWords adds the amount in words row.
func addAmountInWords(m core.Maroto, data ExportData) {
	if data.AmountInWords == "" {
		return
	}

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Amount in Words: %s", data.AmountInWords), props.Text{
					Size:  8,
					Style: fontstyle.BoldItalic,
					Align: align.Left,
				}),
			),
		),
	)

	m.AddRows(row.New(3))
}

// addTerms adds payment/delivery terms and notes when present.
func addTerms(m core.Maroto, data ExportData) {
	terms := []struct{ label, value string }{
		{"Payment Terms", data.PaymentTerms},
		{"Delivery Terms", data.DeliveryTerms},
		{"Notes", data.Notes},
	}

	header := false
	for _, t := range terms {
		if t.value == "" {
			continue
		}
		if !header {
			m.AddRows(
				row.New(7).Add(
					col.New(12).Add(text.New("TERMS & CONDITIONS", props.Text{
						Size:  8,
						Style: fontstyle.Bold,
						Color: darkFill,
					})),
				),
			)
			header = true
		}
		m.AddRows(
			row.New(6).Add(col.New(12).Add(text.New(t.label, props.Text{Size: 7, Style: fontstyle.Bold, Color: greyText}))),
			row.New(7).Add(col.New(12).Add(text.New(t.value, props.Text{Size: 8}))),
		)
	}

	if header {
		m.AddRows(row.New(3))
	}
}

// footerRows builds the disclaimer printed at the bottom of every page.
func footerRows(data ExportData) []core.Row {
	style := props.Text{Size: 7, Style: fontstyle.Italic, Align: align.Center, Color: greyText}
	rows := make([]core.Row, 0, len(data.Footer))
	for _, line := range data.Footer {
		rows = append(rows, row.New(5).Add(col.New(12).Add(text.New(line, style))))
	}
	return rows
}
