package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"

	"stockdesk/services"
)

// apiError is the JSON body of every error response.
type apiError struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// respondError writes a JSON error with the given status and message.
func respondError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, apiError{Status: status, Message: message})
}

// respondServiceError maps an error returned by the services package onto an
// HTTP response. Unexpected errors are logged under area and reported as 500.
func respondServiceError(e *core.RequestEvent, area string, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		fields := make(map[string]string)
		flattenValidation("", verrs, fields)
		return e.JSON(http.StatusBadRequest, apiError{
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Fields:  fields,
		})
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		return respondError(e, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrNotAuthenticated):
		return respondError(e, http.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, services.ErrInvalidCredentials):
		return respondError(e, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrEmailTaken):
		return respondError(e, http.StatusConflict, "Email is already registered")
	case errors.Is(err, services.ErrUnsupportedFile), errors.Is(err, services.ErrUnsupportedFormat):
		return respondError(e, http.StatusBadRequest, err.Error())
	}

	log.Printf("%s: %v", area, err)
	return respondError(e, http.StatusInternalServerError, "Something went wrong")
}

// flattenValidation turns nested validation errors into dotted keys such as
// "items.0.quantity".
func flattenValidation(prefix string, errs validation.Errors, out map[string]string) {
	for k, v := range errs {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		var nested validation.Errors
		if errors.As(v, &nested) {
			flattenValidation(key, nested, out)
			continue
		}
		out[key] = v.Error()
	}
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, "\"", "")
	return s
}
