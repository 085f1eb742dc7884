package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"stockdesk/services"
)

// HandleRegister creates an account and returns its first session.
// Route: POST /auth/register
func HandleRegister(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var creds services.Credentials
		if err := e.BindBody(&creds); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}
		sess, err := d.Identity.Register(creds)
		if err != nil {
			return respondServiceError(e, "auth_register", err)
		}
		return e.JSON(http.StatusCreated, sess)
	}
}

// HandleLogin exchanges credentials for a bearer token.
// Route: POST /auth/login
func HandleLogin(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var creds services.Credentials
		if err := e.BindBody(&creds); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}
		sess, err := d.Identity.Login(creds)
		if err != nil {
			return respondServiceError(e, "auth_login", err)
		}
		return e.JSON(http.StatusOK, sess)
	}
}

// HandleMe returns the caller's session.
func HandleMe(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess := SessionFrom(e.Request)
		if sess == nil {
			return respondError(e, http.StatusUnauthorized, "Not authenticated")
		}
		return e.JSON(http.StatusOK, sess)
	}
}
