package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFile is returned for uploads that are neither .xlsx nor .csv.
var ErrUnsupportedFile = errors.New("unsupported file format: must be .csv or .xlsx")

// item field keys used by the header alias table.
const (
	fieldDescription    = "description"
	fieldPartNumber     = "partNumber"
	fieldMadeBy         = "madeBy"
	fieldQuantity       = "quantity"
	fieldUnitPrice      = "unitPrice"
	fieldDiscount       = "discountPercent"
	fieldSubVendorName  = "subVendorName"
	fieldSubVendorPrice = "subVendorPrice"
	fieldUOM            = "unitOfMeasure"
	fieldIgnored        = "-"
)

// headerAliases maps every accepted column header, normalised with
// normalizeHeader, to an item field. Derived columns (S.No, Total) are
// recognised and ignored.
var headerAliases = map[string]string{
	"item description": fieldDescription,
	"description":      fieldDescription,
	"part number":      fieldPartNumber,
	"partnumber":       fieldPartNumber,
	"part no":          fieldPartNumber,
	"part no.":         fieldPartNumber,
	"made":             fieldMadeBy,
	"make":             fieldMadeBy,
	"made by":          fieldMadeBy,
	"quantity":         fieldQuantity,
	"qty":              fieldQuantity,
	"unit price":       fieldUnitPrice,
	"unitprice":        fieldUnitPrice,
	"rate":             fieldUnitPrice,
	"discount %":       fieldDiscount,
	"discount":         fieldDiscount,
	"s %":              fieldDiscount,
	"s percent":        fieldDiscount,
	"s_percent":        fieldDiscount,
	"sub name":         fieldSubVendorName,
	"subname":          fieldSubVendorName,
	"sale price":       fieldSubVendorPrice,
	"saleprice":        fieldSubVendorPrice,
	"sub price":        fieldSubVendorPrice,
	"uom":              fieldUOM,
	"uom/vum":          fieldUOM,
	"vum":              fieldUOM,
	"s.no":             fieldIgnored,
	"s no":             fieldIgnored,
	"sl no":            fieldIgnored,
	"total":            fieldIgnored,
	"line total":       fieldIgnored,
}

var numericFields = []string{fieldQuantity, fieldUnitPrice, fieldDiscount, fieldSubVendorPrice}

// ImportIssue is a non-fatal problem found on one row of an upload.
type ImportIssue struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult is the outcome of parsing an item upload.
type ImportResult struct {
	Items        []LineItem    `json:"items"`
	Unrecognized []string      `json:"unrecognizedHeaders"`
	Issues       []ImportIssue `json:"issues"`
	SkippedRows  int           `json:"skippedRows"`
}

// ParseItemsFile reads line items from an uploaded .xlsx (first sheet) or
// .csv file. The first row must be a header row; blank rows are skipped.
// Numeric cells that are not numbers are imported as 0 and reported as
// issues. Unrecognised headers are reported, never fatal.
func ParseItemsFile(r io.Reader, fileName string) (*ImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(r)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(r)
	default:
		return nil, ErrUnsupportedFile
	}
	if err != nil {
		return nil, err
	}

	columnKeys, unrecognized := mapHeadersToFields(headers)
	mapped := false
	for _, k := range columnKeys {
		if k != "" && k != fieldIgnored {
			mapped = true
			break
		}
	}
	if !mapped {
		return nil, fmt.Errorf("no recognised item columns in header row")
	}

	result := &ImportResult{
		Items:        make([]LineItem, 0, len(dataRows)),
		Unrecognized: unrecognized,
		Issues:       []ImportIssue{},
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		values := make(map[string]string)
		for colIdx, key := range columnKeys {
			if key == "" || key == fieldIgnored || colIdx >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[colIdx])
			if v != "" {
				values[key] = v
			}
		}
		if len(values) == 0 {
			result.SkippedRows++
			continue
		}

		numbers := make(map[string]float64, len(numericFields))
		for _, key := range numericFields {
			raw, ok := values[key]
			if !ok {
				continue
			}
			n, valid := parseCellNumber(raw)
			if !valid {
				result.Issues = append(result.Issues, ImportIssue{
					Row:     rowNum,
					Field:   key,
					Message: fmt.Sprintf("%q is not a number, imported as 0", raw),
				})
			}
			numbers[key] = n
		}

		result.Items = append(result.Items, LineItem{
			Description:     unsanitizeExcelCell(values[fieldDescription]),
			PartNumber:      unsanitizeExcelCell(values[fieldPartNumber]),
			MadeBy:          unsanitizeExcelCell(values[fieldMadeBy]),
			Quantity:        numbers[fieldQuantity],
			UnitPrice:       numbers[fieldUnitPrice],
			DiscountPercent: numbers[fieldDiscount],
			SubVendorName:   unsanitizeExcelCell(values[fieldSubVendorName]),
			SubVendorPrice:  numbers[fieldSubVendorPrice],
			UnitOfMeasure:   unsanitizeExcelCell(values[fieldUOM]),
		})
	}

	return result, nil
}

// parseCellNumber accepts spreadsheet numbers written with thousands
// separators. ok is false when the cell is imported as 0 for not being a number.
func parseCellNumber(s string) (n float64, ok bool) {
	return parseNumber(strings.ReplaceAll(s, ",", ""))
}

// normalizeHeader lower-cases a header, trims it, collapses inner spaces and
// drops a trailing required-field marker.
func normalizeHeader(h string) string {
	norm := strings.ToLower(strings.TrimSpace(h))
	norm = strings.TrimSpace(strings.TrimSuffix(norm, "*"))
	return strings.Join(strings.Fields(norm), " ")
}

// mapHeadersToFields maps uploaded column headers to item field keys.
// Returns ordered list of field keys (one per column) and any unrecognized
// non-empty columns.
func mapHeadersToFields(headers []string) ([]string, []string) {
	mapped := make([]string, len(headers))
	unrecognized := []string{}

	for i, h := range headers {
		norm := normalizeHeader(h)
		if key, ok := headerAliases[norm]; ok {
			mapped[i] = key
			continue
		}
		if norm != "" {
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	headers := allRows[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}
	return headers, allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the
// first sheet. Cell values are read raw so numbers keep full precision.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}
