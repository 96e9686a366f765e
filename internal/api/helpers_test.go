package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carecamp/carecamp-api/internal/api/shared"
	"github.com/carecamp/carecamp-api/internal/service/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testRequest builds a request with an optional JSON body, chi URL params
// and an authenticated email.
type testRequest struct {
	method string
	target string
	body   interface{}
	params map[string]string
	email  string
}

func (tr testRequest) build(t *testing.T) *http.Request {
	t.Helper()

	var body io.Reader = http.NoBody
	switch b := tr.body.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(tr.method, tr.target, body)
	req.Header.Set("Content-Type", "application/json")

	rctx := chi.NewRouteContext()
	for k, v := range tr.params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)

	if tr.email != "" {
		ctx = shared.SetClaims(ctx, &auth.Claims{Email: tr.email, Provider: auth.ProviderLocal})
	}
	return req.WithContext(ctx)
}

func serve(t *testing.T, h http.HandlerFunc, tr testRequest) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h(rr, tr.build(t))
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}

func strPtr(s string) *string { return &s }
