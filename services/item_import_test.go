package services

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParseItemsFile_CSV(t *testing.T) {
	csv := "\ufeffS.No,Item Description,Part Number,Make,Qty,UOM/VUM,Rate,S %,Remarks\n" +
		"1,Bearing 6205,6205-2RS,SKF,10,nes,313,10,urgent\n" +
		",,,,,,,,\n" +
		"2,Seal kit,,NOK,\"1,200\",pks,1.5,,\n"

	result, err := ParseItemsFile(strings.NewReader(csv), "items.CSV")
	if err != nil {
		t.Fatalf("ParseItemsFile() error = %v", err)
	}

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.SkippedRows != 1 {
		t.Errorf("SkippedRows = %d, want 1", result.SkippedRows)
	}
	if len(result.Unrecognized) != 1 || result.Unrecognized[0] != "Remarks" {
		t.Errorf("Unrecognized = %v, want [Remarks]", result.Unrecognized)
	}

	first := result.Items[0]
	if first.Description != "Bearing 6205" || first.PartNumber != "6205-2RS" || first.MadeBy != "SKF" || first.UnitOfMeasure != "nes" {
		t.Errorf("first item text fields = %+v", first)
	}
	if !approxEqual(LineTotal(first), 2817) {
		t.Errorf("LineTotal(first) = %v, want 2817", LineTotal(first))
	}
	if result.Items[1].Quantity != 1200 {
		t.Errorf("thousands separator: Quantity = %v, want 1200", result.Items[1].Quantity)
	}
	if len(result.Issues) != 0 {
		t.Errorf("unexpected issues: %+v", result.Issues)
	}
}

func TestParseItemsFile_NonNumericCells(t *testing.T) {
	csv := "description,quantity,unitPrice\n" +
		"Widget,ten,50\n"

	result, err := ParseItemsFile(strings.NewReader(csv), "items.csv")
	if err != nil {
		t.Fatalf("ParseItemsFile() error = %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Quantity != 0 || result.Items[0].UnitPrice != 50 {
		t.Fatalf("Items = %+v", result.Items)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %+v", result.Issues)
	}
	issue := result.Issues[0]
	if issue.Row != 2 || issue.Field != fieldQuantity {
		t.Errorf("issue = %+v, want row 2 quantity", issue)
	}
}

func TestParseItemsFile_IssuesMatchImportedValues(t *testing.T) {
	tests := []struct {
		name string
		cell string
	}{
		{"plain", "7"},
		{"padded", " 7 "},
		{"thousands", "2,500"},
		{"underscore", "1_000"},
		{"word", "ten"},
		{"suffix", "12abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := "Description,Quantity\nWidget,\"" + tt.cell + "\"\n"
			result, err := ParseItemsFile(strings.NewReader(csv), "items.csv")
			if err != nil {
				t.Fatalf("ParseItemsFile() error = %v", err)
			}
			if len(result.Items) != 1 {
				t.Fatalf("expected 1 item, got %d", len(result.Items))
			}

			qty := result.Items[0].Quantity
			reported := len(result.Issues) == 1 && result.Issues[0].Field == fieldQuantity
			if reported != (qty == 0) {
				t.Errorf("cell %q imported as %v with issues %+v", tt.cell, qty, result.Issues)
			}
		})
	}
}

func TestParseItemsFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		fileName string
		wantErr  error
	}{
		{"unsupported extension", "a,b\n1,2\n", "items.txt", ErrUnsupportedFile},
		{"no recognised columns", "foo,bar\n1,2\n", "items.csv", nil},
		{"header only", "description,qty\n", "items.csv", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseItemsFile(strings.NewReader(tt.content), tt.fileName)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Unit   Price ", "unit price"},
		{"Description*", "description"},
		{"Discount %", "discount %"},
		{"QTY", "qty"},
	}
	for _, tt := range tests {
		if got := normalizeHeader(tt.in); got != tt.want {
			t.Errorf("normalizeHeader(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	doc := quotationFixture()
	doc.Items = append(doc.Items,
		LineItem{Description: "=HYPERLINK(\"x\")", Quantity: 2, UnitPrice: 1522, UnitOfMeasure: "Set", SubVendorName: "Local", SubVendorPrice: 1400},
		LineItem{Description: "Fractional", Quantity: 3.5, UnitPrice: 99.99, DiscountPercent: 2.5},
		LineItem{Description: "Zero qty", Quantity: 0, UnitPrice: 500},
	)

	content, err := GenerateExcel(BuildExportData(doc, DefaultProfile))
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	result, err := ParseItemsFile(bytesReader(content), "export.xlsx")
	if err != nil {
		t.Fatalf("ParseItemsFile() error = %v", err)
	}
	if len(result.Unrecognized) != 0 {
		t.Errorf("exported headers not recognised: %v", result.Unrecognized)
	}
	if len(result.Items) != len(doc.Items) {
		t.Fatalf("round trip returned %d items, want %d", len(result.Items), len(doc.Items))
	}

	for i, want := range doc.Items {
		got := result.Items[i]
		if math.Abs(LineTotal(got)-LineTotal(want)) > 1e-9 {
			t.Errorf("item %d LineTotal = %v, want %v", i, LineTotal(got), LineTotal(want))
		}
		if got != want {
			t.Errorf("item %d = %+v, want %+v", i, got, want)
		}
	}
}
