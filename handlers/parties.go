package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"stockdesk/services"
)

// HandlePartyList returns the caller's saved customers or sellers.
// Routes: GET /customers, GET /sellers
func HandlePartyList(d *Desk, role services.PartyRole) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		owner := ownerID(e)
		if owner == "" {
			return respondError(e, http.StatusUnauthorized, "Not authenticated")
		}

		parties, err := services.ListParties(d.App, owner, role)
		if err != nil {
			return respondServiceError(e, "party_list", err)
		}
		return e.JSON(http.StatusOK, map[string]any{"parties": parties})
	}
}

// HandlePartySave adds a customer or seller, or updates the address of an
// existing one with the same name.
// Routes: POST /customers, POST /sellers
func HandlePartySave(d *Desk, role services.PartyRole) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		owner := ownerID(e)
		if owner == "" {
			return respondError(e, http.StatusUnauthorized, "Not authenticated")
		}

		var p services.Party
		if err := e.BindBody(&p); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}
		if err := p.Validate(); err != nil {
			return respondServiceError(e, "party_save", err)
		}
		if err := services.SaveParty(d.App, owner, role, p); err != nil {
			return respondServiceError(e, "party_save", err)
		}
		return e.JSON(http.StatusCreated, p)
	}
}
