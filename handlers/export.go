package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"stockdesk/services"
	"stockdesk/views"
)

// loadExportData fetches an owned document and assembles its export view.
func loadExportData(d *Desk, owner, id string) (*services.Document, services.ExportData, error) {
	doc, err := d.Store.Get(owner, id)
	if err != nil {
		return nil, services.ExportData{}, err
	}
	return doc, services.BuildExportData(doc, d.profile(owner)), nil
}

// HandleDocumentExport returns a handler that generates and downloads an
// Excel or PDF file for a document.
// Route: GET /documents/{id}/export/{format}
func HandleDocumentExport(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		owner := ownerID(e)
		if owner == "" {
			return respondError(e, http.StatusUnauthorized, "Not authenticated")
		}

		format, err := services.ParseExportFormat(e.Request.PathValue("format"))
		if err != nil {
			return respondServiceError(e, "export", err)
		}

		doc, data, err := loadExportData(d, owner, e.Request.PathValue("id"))
		if err != nil {
			return respondServiceError(e, "export", err)
		}

		content, err := services.Render(data, format)
		if err != nil {
			log.Printf("export_%s: failed to generate %s: %v", format, doc.ID, err)
			return respondError(e, http.StatusInternalServerError, fmt.Sprintf("Failed to generate %s file", format))
		}

		filename := sanitizeFilename(services.ExportFileName(doc, string(format)))

		e.Response.Header().Set("Content-Type", format.ContentType())
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(content)
		return nil
	}
}

// HandleDocumentView renders the printable HTML page of a document.
// Route: GET /documents/{id}/view
func HandleDocumentView(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		owner := ownerID(e)
		if owner == "" {
			return respondError(e, http.StatusUnauthorized, "Not authenticated")
		}

		_, data, err := loadExportData(d, owner, e.Request.PathValue("id"))
		if err != nil {
			return respondServiceError(e, "document_view", err)
		}

		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return views.DocumentPage(data).Render(e.Request.Context(), e.Response)
	}
}
