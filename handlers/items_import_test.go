package handlers

import (
	"bytes"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func multipartUpload(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte(content))
	w.Close()
	return &body, w.FormDataContentType()
}

func postUpload(t *testing.T, td *testDesk, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartUpload(t, fileName, content)
	req := httptest.NewRequest(http.MethodPost, "/items/import", body)
	req.Header.Set("Content-Type", contentType)
	req = withSession(req, td.sess)
	rec := httptest.NewRecorder()
	if err := HandleItemsImport(td.desk)(newTestRequestEvent(td.app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestHandleItemsImport_CSV(t *testing.T) {
	td := newTestDesk(t)
	csv := "Description,Quantity,Unit Price,Discount %,UOM,Notes\n" +
		"Bearing,10,313,10,nes,x\n" +
		"Seal,2,1522,,pks,\n"

	rec := postUpload(t, td, "items.csv", csv)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Items []struct {
			Description string  `json:"description"`
			LineTotal   float64 `json:"lineTotal"`
		} `json:"items"`
		Total        float64  `json:"total"`
		Unrecognized []string `json:"unrecognizedHeaders"`
	}
	decodeJSON(t, rec, &resp)
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp.Items))
	}
	if math.Abs(resp.Items[0].LineTotal-2817) > 1e-9 {
		t.Errorf("lineTotal = %v, want 2817", resp.Items[0].LineTotal)
	}
	if math.Abs(resp.Total-(2817+3044)) > 1e-9 {
		t.Errorf("total = %v, want 5861", resp.Total)
	}
	if len(resp.Unrecognized) != 1 || resp.Unrecognized[0] != "Notes" {
		t.Errorf("unrecognizedHeaders = %v", resp.Unrecognized)
	}
}

func TestHandleItemsImport_Errors(t *testing.T) {
	td := newTestDesk(t)

	rec := postUpload(t, td, "items.txt", "description\nx\n")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unsupported file: expected 400, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/items/import", nil)
	req = withSession(req, td.sess)
	rec = httptest.NewRecorder()
	if err := HandleItemsImport(td.desk)(newTestRequestEvent(td.app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing file: expected 400, got %d", rec.Code)
	}
}

func TestHandleItemsImport_TooLarge(t *testing.T) {
	td := newTestDesk(t)
	content := "Description,Quantity\n" + strings.Repeat("Bearing,1\n", maxUploadSize/10+1)

	rec := postUpload(t, td, "items.csv", content)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("oversized upload: expected 400, got %d", rec.Code)
	}
}
