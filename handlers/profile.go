package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"stockdesk/services"
)

// HandleProfileGet returns the caller's company profile.
// Route: GET /profile
func HandleProfileGet(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		owner := ownerID(e)
		if owner == "" {
			return respondError(e, http.StatusUnauthorized, "Not authenticated")
		}

		p, err := services.GetProfile(d.App, owner, d.Defaults)
		if err != nil {
			return respondServiceError(e, "profile_get", err)
		}
		return e.JSON(http.StatusOK, p)
	}
}

// HandleProfileSave replaces the caller's company profile.
// Route: PUT /profile
func HandleProfileSave(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		owner := ownerID(e)
		if owner == "" {
			return respondError(e, http.StatusUnauthorized, "Not authenticated")
		}

		var p services.Profile
		if err := e.BindBody(&p); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}
		saved, err := services.SaveProfile(d.App, owner, p)
		if err != nil {
			return respondServiceError(e, "profile_save", err)
		}
		return e.JSON(http.StatusOK, saved)
	}
}
