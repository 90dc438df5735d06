// Package provider holds what the text and audio provider clients share.
package provider

import (
	"errors"
	"fmt"
)

// Error is a non-success response from an upstream AI service.
type Error struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s API failed: %d - %s", e.Provider, e.StatusCode, e.Body)
}

// AsError extracts a provider failure from err, if there is one.
func AsError(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
