package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/carecamp/carecamp-api/internal/api/shared"
	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/store"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// getPathID extracts an object ID from the URL path parameters.
//
// Returns:
//   - (id, nil): The parsed ID if valid
//   - (primitive.NilObjectID, error): A validation error wrapping domain.ErrInvalidID
//     if the parameter is missing or malformed
func getPathID(r *http.Request, paramName string) (primitive.ObjectID, error) {
	return domain.ParseID(paramName, chi.URLParam(r, paramName))
}

// getEmailFromContext returns the email of the authenticated caller.
// The claims are expected to be placed in the context by the authentication middleware.
func getEmailFromContext(r *http.Request) (string, error) {
	email := shared.GetEmail(r.Context())
	if email == "" {
		return "", domain.ErrUnauthenticated
	}
	return email, nil
}

// parseCampQuery reads search, sort, page and limit from the query string.
// Missing values take their defaults. Page and limit must be positive
// integers; limit is clamped to store.MaxCampLimit and page must keep the
// offset within int64. Search is used verbatim.
func parseCampQuery(r *http.Request) (store.CampQuery, error) {
	values := r.URL.Query()
	q := store.NewCampQuery()
	q.Search = values.Get("search")
	q.Sort = store.ParseCampSort(values.Get("sort"))

	var err error
	if q.Page, err = positiveIntParam(values.Get("page"), "page", store.DefaultCampPage); err != nil {
		return store.CampQuery{}, err
	}
	if q.Limit, err = positiveIntParam(values.Get("limit"), "limit", store.DefaultCampLimit); err != nil {
		return store.CampQuery{}, err
	}
	if q.Limit > store.MaxCampLimit {
		q.Limit = store.MaxCampLimit
	}
	if int64(q.Page-1) > math.MaxInt64/int64(q.Limit) {
		return store.CampQuery{}, domain.NewValidationError("page", "is too large", nil)
	}
	return q, nil
}

func positiveIntParam(raw, name string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be a number", nil)
	}
	if n <= 0 {
		return 0, domain.NewValidationError(name, "must be greater than zero", nil)
	}
	return n, nil
}

// decodeAndValidate decodes the JSON body into v and validates it, writing a
// 400 response on failure.
//
// Returns:
//   - true: v is populated and valid
//   - false: an error response has been written
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		msg := "Invalid request format"
		if errors.Is(err, shared.ErrEmptyBody) {
			msg = "Request body is required"
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msg, err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}
