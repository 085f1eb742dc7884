package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"stockdesk/services"
)

// maxUploadSize caps the request body of an item upload at 10MB.
const maxUploadSize = 10 << 20

// importView is the preview returned for an item upload.
type importView struct {
	Items        []itemView             `json:"items"`
	Total        float64                `json:"total"`
	Unrecognized []string               `json:"unrecognizedHeaders"`
	Issues       []services.ImportIssue `json:"issues"`
	SkippedRows  int                    `json:"skippedRows"`
}

// HandleItemsImport parses an uploaded .xlsx or .csv item list and returns
// the items with their totals. Nothing is stored; the client adds the items
// to a document and saves it.
// Route: POST /items/import
func HandleItemsImport(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if ownerID(e) == "" {
			return respondError(e, http.StatusUnauthorized, "Not authenticated")
		}

		if e.Request.Body != nil {
			e.Request.Body = http.MaxBytesReader(e.Response, e.Request.Body, maxUploadSize)
		}
		if err := e.Request.ParseMultipartForm(maxUploadSize); err != nil {
			return respondError(e, http.StatusBadRequest, "File too large or invalid form data")
		}
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return respondError(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ParseItemsFile(file, header.Filename)
		if err != nil {
			log.Printf("items_import: %s: %v", header.Filename, err)
			return respondError(e, http.StatusBadRequest, err.Error())
		}

		items := newItemViews(result.Items)
		total := services.DocumentTotal(services.Document{Items: result.Items})
		return e.JSON(http.StatusOK, importView{
			Items:        items,
			Total:        total,
			Unrecognized: result.Unrecognized,
			Issues:       result.Issues,
			SkippedRows:  result.SkippedRows,
		})
	}
}
