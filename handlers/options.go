package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"stockdesk/services"
)

// HandleOptions returns the select options for the document form.
func HandleOptions(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, services.Options(d.Rules))
	}
}
