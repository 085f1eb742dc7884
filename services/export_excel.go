package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SummarySheet is the name of the sheet holding the document header and totals.
const SummarySheet = "Summary"

// itemColumn describes one column of the items sheet.
type itemColumn struct {
	header string
	width  float64
	value  func(r ExportRow) any
	text   bool
}

// itemColumns is the fixed column order of the items sheet. The headers are
// the primary import aliases, so an exported sheet imports cleanly.
var itemColumns = []itemColumn{
	{"S.No", 6, func(r ExportRow) any { return r.SNo }, false},
	{"Description", 40, func(r ExportRow) any { return r.Description }, true},
	{"Part no", 16, func(r ExportRow) any { return r.PartNumber }, true},
	{"Made", 14, func(r ExportRow) any { return r.MadeBy }, true},
	{"Quantity", 10, func(r ExportRow) any { return r.Quantity }, false},
	{"UOM", 8, func(r ExportRow) any { return r.UnitOfMeasure }, true},
	{"Unit Price", 14, func(r ExportRow) any { return r.UnitPrice }, false},
	{"Discount %", 11, func(r ExportRow) any { return r.DiscountPercent }, false},
	{"Total", 16, func(r ExportRow) any { return r.LineTotal }, false},
	{"Sub Name", 18, func(r ExportRow) any { return r.SubVendorName }, true},
	{"Sale Price", 14, func(r ExportRow) any { return r.SubVendorPrice }, false},
}

// totalColumn is the 1-based index of the "Total" column.
const totalColumn = 9

// ItemsSheetName returns the name of the items sheet for kind, e.g. "Enquiry Items".
func ItemsSheetName(kind Kind) string {
	name := kind.Label() + " Items"
	if kind == "" {
		name = "Items"
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

// GenerateExcel creates an xlsx workbook from the given ExportData and
// returns the file contents. The first sheet holds one row per line item
// under a single header row; totals live on a separate Summary sheet so
// the items sheet can be imported back unchanged.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := ItemsSheetName(data.Kind)
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// ── Styles ──────────────────────────────────────────────────────────

	// Column header style: bold, white text, charcoal background, centered.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}

	// Totals show 2 decimals; the stored value keeps full precision.
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
		NumFmt: 2,
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	// ── Header row ──────────────────────────────────────────────────────

	for i, c := range itemColumns {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name %d: %w", i+1, err)
		}
		if err := f.SetColWidth(sheetName, colName, colName, c.width); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", colName, err)
		}
		if err := f.SetCellValue(sheetName, colName+"1", c.header); err != nil {
			return nil, fmt.Errorf("set header %s: %w", c.header, err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(itemColumns))
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	// ── Data rows (starting row 2) ──────────────────────────────────────

	for i, r := range data.Rows {
		rowNum := i + 2
		for j, c := range itemColumns {
			cell, err := excelize.CoordinatesToCellName(j+1, rowNum)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			v := c.value(r)
			if c.text {
				v = sanitizeExcelCell(v.(string))
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		row := fmt.Sprintf("%d", rowNum)
		f.SetCellStyle(sheetName, "A"+row, lastCol+row, bodyStyle)
		totalCell, _ := excelize.CoordinatesToCellName(totalColumn, rowNum)
		f.SetCellStyle(sheetName, totalCell, totalCell, totalStyle)
	}

	if err := writeSummarySheet(f, data); err != nil {
		return nil, err
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

type summaryLine struct {
	label string
	value float64
}

// writeSummarySheet adds the header details and totals of the document.
func writeSummarySheet(f *excelize.File, data ExportData) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	f.SetColWidth(SummarySheet, "A", "A", 22)
	f.SetColWidth(SummarySheet, "B", "B", 48)

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return fmt.Errorf("create title style: %w", err)
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return fmt.Errorf("create summary label style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		NumFmt: 2,
	})
	if err != nil {
		return fmt.Errorf("create summary value style: %w", err)
	}

	f.SetCellValue(SummarySheet, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(SummarySheet, "A1", "A1", titleStyle)

	details := []struct{ label, value string }{
		{"Company", data.Company.CompanyName},
		{"Number", data.Number},
		{"Date", data.Date},
		{"Status", data.Status},
		{"Seller", joinNonEmpty([]string{data.Seller.Name, data.Seller.Address}, ", ")},
		{"Customer", joinNonEmpty([]string{data.Customer.Name, data.Customer.Address}, ", ")},
	}
	row := 3
	for _, d := range details {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(SummarySheet, "A"+r, d.label)
		f.SetCellStyle(SummarySheet, "A"+r, "A"+r, labelStyle)
		f.SetCellValue(SummarySheet, "B"+r, sanitizeExcelCell(d.value))
		row++
	}

	row++
	amounts := []summaryLine{{"Sub Total", data.Totals.SubTotal}}
	if data.Totals.TaxRatePercent > 0 {
		amounts = append(amounts,
			summaryLine{fmt.Sprintf("GST (%s)", FormatPercent(data.Totals.TaxRatePercent)), data.Totals.TaxAmount},
			summaryLine{"Grand Total", data.Totals.GrandTotal},
		)
	}
	for _, a := range amounts {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(SummarySheet, "A"+r, a.label)
		f.SetCellStyle(SummarySheet, "A"+r, "A"+r, labelStyle)
		f.SetCellValue(SummarySheet, "B"+r, a.value)
		f.SetCellStyle(SummarySheet, "B"+r, "B"+r, amountStyle)
		row++
	}
	return nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// unsanitizeExcelCell reverses sanitizeExcelCell on imported text.
func unsanitizeExcelCell(s string) string {
	if len(s) < 2 || s[0] != '\'' {
		return s
	}
	switch s[1] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return s[1:]
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
