package handlers

import (
	"log"
	"net/http"
	"slices"

	"github.com/pocketbase/pocketbase/core"

	"stockdesk/services"
)

// itemView is a line item with its derived total.
type itemView struct {
	services.LineItem
	LineTotal float64 `json:"lineTotal"`
}

// documentView is the API representation of a document. Totals are derived
// from the items on every read.
type documentView struct {
	*services.Document
	Items  []itemView      `json:"items"`
	Totals services.Totals `json:"totals"`
}

func newItemViews(items []services.LineItem) []itemView {
	views := make([]itemView, len(items))
	for i, it := range items {
		views[i] = itemView{LineItem: it, LineTotal: services.LineTotal(it)}
	}
	return views
}

func newDocumentView(doc *services.Document) documentView {
	return documentView{
		Document: doc,
		Items:    newItemViews(doc.Items),
		Totals:   services.Summarize(*doc),
	}
}

// kindParam reads an optional ?kind= filter. ok is false for unknown kinds.
func kindParam(e *core.RequestEvent) (kind services.Kind, ok bool) {
	q := e.Request.URL.Query().Get("kind")
	if q == "" {
		return "", true
	}
	kind = services.ParseKind(q)
	return kind, slices.Contains(services.Kinds, kind)
}

// HandleDocumentList returns the caller's documents, newest first.
// Route: GET /documents[?kind=]
func HandleDocumentList(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		owner := ownerID(e)
		if owner == "" {
			return respondError(e, http.StatusUnauthorized, "Not authenticated")
		}
		kind, ok := kindParam(e)
		if !ok {
			return respondError(e, http.StatusBadRequest, "Unknown document kind")
		}

		docs, err := d.Store.List(owner, kind)
		if err != nil {
			return respondServiceError(e, "document_list", err)
		}

		views := make([]documentView, len(docs))
		for i := range docs {
			views[i] = newDocumentView(&docs[i])
		}
		return e.JSON(http.StatusOK, map[string]any{"documents": views})
	}
}

// HandleNextNumber suggests the next document number for a kind.
// Route: GET /documents/next-number?kind=
func HandleNextNumber(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		owner := ownerID(e)
		if owner == "" {
			return respondError(e, http.StatusUnauthorized, "Not authenticated")
		}
		kind, ok := kindParam(e)
		if !ok || kind == "" {
			return respondError(e, http.StatusBadRequest, "A valid kind is required")
		}

		number, err := services.NextDocumentNumber(d.Store, owner, kind, d.now())
		if err != nil {
			return respondServiceError(e, "document_next_number", err)
		}
		return e.JSON(http.StatusOK, map[string]string{
			"kind":           string(kind),
			"documentNumber": number,
		})
	}
}

// HandleDocumentSave creates a document, or replaces one when an id is given
// in the path or body. The whole item list is replaced on every save.
// Routes: POST /documents, PUT /documents/{id}
func HandleDocumentSave(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		owner := ownerID(e)
		if owner == "" {
			return respondError(e, http.StatusUnauthorized, "Not authenticated")
		}

		var in services.DocumentInput
		if err := e.BindBody(&in); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}
		if id := e.Request.PathValue("id"); id != "" {
			in.ID = id
		}

		doc, err := services.BuildDocument(in, owner, d.Rules)
		if err != nil {
			return respondServiceError(e, "document_save", err)
		}
		created := doc.ID == ""

		if _, err := d.Store.Save(doc); err != nil {
			return respondServiceError(e, "document_save", err)
		}

		// Best effort: the document is already saved.
		if d.App != nil {
			if err := services.RememberParties(d.App, doc); err != nil {
				log.Printf("document_save: remember parties of %s: %v", doc.ID, err)
			}
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		return e.JSON(status, newDocumentView(doc))
	}
}

// HandleDocumentDerive raises a new document of ?kind= from an existing one,
// typically a quotation or purchase order from an enquiry. The new document
// gets the next number of its kind and today's date.
// Route: POST /documents/{id}/derive?kind=
func HandleDocumentDerive(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		owner := ownerID(e)
		if owner == "" {
			return respondError(e, http.StatusUnauthorized, "Not authenticated")
		}
		kind, ok := kindParam(e)
		if !ok || kind == "" {
			return respondError(e, http.StatusBadRequest, "A valid kind is required")
		}

		src, err := d.Store.Get(owner, e.Request.PathValue("id"))
		if err != nil {
			return respondServiceError(e, "document_derive", err)
		}
		doc, err := services.DeriveDocument(src, kind, d.Rules)
		if err != nil {
			return respondServiceError(e, "document_derive", err)
		}

		now := d.now()
		doc.Date = now.Format("2006-01-02")
		doc.Number, err = services.NextDocumentNumber(d.Store, owner, kind, now)
		if err != nil {
			return respondServiceError(e, "document_derive", err)
		}
		if err := services.ValidateDocument(doc, d.Rules); err != nil {
			return respondServiceError(e, "document_derive", err)
		}
		if _, err := d.Store.Save(doc); err != nil {
			return respondServiceError(e, "document_derive", err)
		}
		return e.JSON(http.StatusCreated, newDocumentView(doc))
	}
}

// HandleDocumentGet returns one document with its items and totals.
// Route: GET /documents/{id}
func HandleDocumentGet(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		owner := ownerID(e)
		if owner == "" {
			return respondError(e, http.StatusUnauthorized, "Not authenticated")
		}

		doc, err := d.Store.Get(owner, e.Request.PathValue("id"))
		if err != nil {
			return respondServiceError(e, "document_get", err)
		}
		return e.JSON(http.StatusOK, newDocumentView(doc))
	}
}

// HandleDocumentDelete deletes a document and its items.
// Route: DELETE /documents/{id}
func HandleDocumentDelete(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		owner := ownerID(e)
		if owner == "" {
			return respondError(e, http.StatusUnauthorized, "Not authenticated")
		}

		if err := d.Store.Delete(owner, e.Request.PathValue("id")); err != nil {
			return respondServiceError(e, "document_delete", err)
		}
		return e.NoContent(http.StatusNoContent)
	}
}
