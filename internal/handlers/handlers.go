// Package handlers wires the HTTP surface consumed by the mobile app
// screens. Every handler is a constructor taking the narrow service
// interface it needs.
package handlers

import (
	"context"
	"net/http"
)

// Tokener extracts and parses the bearer token carried by a request.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetUsername(ctx context.Context, tokenString string) (string, error)
}

// ErrorResponse is the JSON error body shared by every handler.
type ErrorResponse struct {
	// Error message
	Error string `json:"error"`
}

// usernameFromRequest resolves the authenticated username from the
// request's bearer token.
func usernameFromRequest(r *http.Request, tokener Tokener) (string, error) {
	ctx := r.Context()
	tokenString, err := tokener.GetTokenFromRequest(ctx, r)
	if err != nil {
		return "", err
	}
	return tokener.GetUsername(ctx, tokenString)
}
