package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubTokener resolves every request to a fixed username, or fails when
// err is set.
type stubTokener struct {
	username string
	err      error
}

func (s stubTokener) GetTokenFromRequest(_ context.Context, _ *http.Request) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token", nil
}

func (s stubTokener) GetUsername(_ context.Context, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.username, nil
}

var errBadToken = errors.New("bad token")

func asTokener(username string) stubTokener { return stubTokener{username: username} }

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
