package handler

import (
	"fmt"
	"time"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// idResponse acknowledges a create or update.
type idResponse struct {
	ID string `json:"id"`
}

// messageResponse acknowledges a delete.
type messageResponse struct {
	Message string `json:"message"`
}

const deletedMessage = "register has been deleted"

// idParam is the `:id` path parameter shared by every detail route.
type idParam struct {
	ID string `param:"id" validate:"required,mongodb"`
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// parseDate accepts a plain date or an RFC 3339 timestamp. Empty input yields
// the zero time with no error.
func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s must be a valid date", field)
}
