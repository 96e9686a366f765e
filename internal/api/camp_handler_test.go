package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/mocks"
	"github.com/carecamp/carecamp-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCampHandler_CreateCamp(t *testing.T) {
	var created *domain.Camp
	camps := &mocks.MockCampStore{
		CreateFn: func(ctx context.Context, camp *domain.Camp) error {
			created = camp
			return nil
		},
	}
	h := NewCampHandler(camps, testLogger())

	t.Run("participant count starts at zero", func(t *testing.T) {
		body := map[string]interface{}{
			"campName":         "Eye Care",
			"campFees":         25.5,
			"location":         "Dhaka",
			"participantCount": 40,
		}
		rr := serve(t, h.CreateCamp, testRequest{method: http.MethodPost, target: "/camps", body: body})

		require.Equal(t, http.StatusCreated, rr.Code)
		resp := decodeBody[InsertResponse](t, rr)
		assert.True(t, resp.Acknowledged)
		require.NotNil(t, created)
		assert.Equal(t, created.ID.Hex(), resp.InsertedID)
		assert.Equal(t, 0, created.ParticipantCount)
		assert.Equal(t, 25.5, created.CampFees)
	})

	t.Run("missing name", func(t *testing.T) {
		rr := serve(t, h.CreateCamp, testRequest{method: http.MethodPost, target: "/camps", body: map[string]interface{}{"campFees": 1}})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("negative fees", func(t *testing.T) {
		body := map[string]interface{}{"campName": "X", "campFees": -1}
		rr := serve(t, h.CreateCamp, testRequest{method: http.MethodPost, target: "/camps", body: body})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCampHandler_SearchCamps(t *testing.T) {
	var got store.CampQuery
	camp := &domain.Camp{ID: primitive.NewObjectID(), CampName: "Dental"}
	camps := &mocks.MockCampStore{
		SearchFn: func(ctx context.Context, q store.CampQuery) (*store.CampPage, error) {
			got = q
			return &store.CampPage{Total: 11, Result: []*domain.Camp{camp}}, nil
		},
	}
	h := NewCampHandler(camps, testLogger())

	t.Run("passes parsed query", func(t *testing.T) {
		rr := serve(t, h.SearchCamps, testRequest{method: http.MethodGet, target: "/camps?search=dent&sort=participant&page=2&limit=5"})

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, store.CampQuery{Search: "dent", Sort: store.SortParticipant, Page: 2, Limit: 5}, got)
		page := decodeBody[store.CampPage](t, rr)
		assert.Equal(t, int64(11), page.Total)
		require.Len(t, page.Result, 1)
		assert.Equal(t, "Dental", page.Result[0].CampName)
	})

	t.Run("invalid page rejected before store", func(t *testing.T) {
		got = store.CampQuery{}
		rr := serve(t, h.SearchCamps, testRequest{method: http.MethodGet, target: "/camps?page=abc"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, store.CampQuery{}, got)
	})

	t.Run("page overflowing the offset rejected before store", func(t *testing.T) {
		got = store.CampQuery{}
		rr := serve(t, h.SearchCamps, testRequest{method: http.MethodGet, target: "/camps?page=100000000000000000&limit=100"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid page: is too large", decodeError(t, rr).Message)
		assert.Equal(t, store.CampQuery{}, got)
	})

	t.Run("store outage is an internal error", func(t *testing.T) {
		down := &mocks.MockCampStore{
			SearchFn: func(ctx context.Context, q store.CampQuery) (*store.CampPage, error) {
				return nil, store.NewStoreError("camp", "search", "failed to search camps", store.ErrUnavailable)
			},
		}
		rr := serve(t, NewCampHandler(down, testLogger()).SearchCamps, testRequest{method: http.MethodGet, target: "/camps"})
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Failed to search camps", decodeError(t, rr).Message)
	})

	t.Run("empty result is an array", func(t *testing.T) {
		empty := &mocks.MockCampStore{
			SearchFn: func(ctx context.Context, q store.CampQuery) (*store.CampPage, error) {
				return &store.CampPage{}, nil
			},
		}
		rr := serve(t, NewCampHandler(empty, testLogger()).SearchCamps, testRequest{method: http.MethodGet, target: "/camps"})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"total":0,"result":[]}`, rr.Body.String())
	})
}

func TestCampHandler_GetCamp(t *testing.T) {
	id := primitive.NewObjectID()
	camps := &mocks.MockCampStore{
		GetByIDFn: func(ctx context.Context, got primitive.ObjectID) (*domain.Camp, error) {
			if got != id {
				return nil, store.ErrCampNotFound
			}
			return &domain.Camp{ID: id, CampName: "Heart"}, nil
		},
	}
	h := NewCampHandler(camps, testLogger())

	tests := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{"found", id.Hex(), http.StatusOK},
		{"not found", primitive.NewObjectID().Hex(), http.StatusNotFound},
		{"malformed id", "123", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, h.GetCamp, testRequest{
				method: http.MethodGet, target: "/camps/" + tt.id, params: map[string]string{"id": tt.id},
			})
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestCampHandler_PopularCamps(t *testing.T) {
	var gotLimit int
	camps := &mocks.MockCampStore{
		PopularFn: func(ctx context.Context, limit int) ([]*domain.Camp, error) {
			gotLimit = limit
			return nil, nil
		},
	}

	rr := serve(t, NewCampHandler(camps, testLogger()).PopularCamps, testRequest{method: http.MethodGet, target: "/popular-camps"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, store.PopularCampLimit, gotLimit)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestCampHandler_UpdateCamp(t *testing.T) {
	id := primitive.NewObjectID()
	var gotFields map[string]interface{}
	camps := &mocks.MockCampStore{
		UpdateFn: func(ctx context.Context, got primitive.ObjectID, update domain.CampUpdate) (*store.UpdateResult, error) {
			if got != id {
				return nil, store.ErrCampNotFound
			}
			gotFields = update.Fields()
			return &store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	}
	h := NewCampHandler(camps, testLogger())

	t.Run("partial update", func(t *testing.T) {
		rr := serve(t, h.UpdateCamp, testRequest{
			method: http.MethodPatch, target: "/camps/" + id.Hex(),
			params: map[string]string{"id": id.Hex()},
			body:   map[string]interface{}{"campFees": 30, "participantCount": 99},
		})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, map[string]interface{}{"campFees": float64(30)}, gotFields)
	})

	t.Run("unknown camp", func(t *testing.T) {
		other := primitive.NewObjectID().Hex()
		rr := serve(t, h.UpdateCamp, testRequest{
			method: http.MethodPatch, target: "/camps/" + other,
			params: map[string]string{"id": other},
			body:   map[string]interface{}{"location": "Sylhet"},
		})
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Camp not found", decodeError(t, rr).Message)
	})

	t.Run("empty update", func(t *testing.T) {
		rr := serve(t, h.UpdateCamp, testRequest{
			method: http.MethodPatch, target: "/camps/" + id.Hex(),
			params: map[string]string{"id": id.Hex()},
			body:   map[string]interface{}{},
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCampHandler_IncrementAndDelete(t *testing.T) {
	id := primitive.NewObjectID()
	params := map[string]string{"id": id.Hex()}

	t.Run("increment", func(t *testing.T) {
		h := NewCampHandler(&mocks.MockCampStore{}, testLogger())
		rr := serve(t, h.IncrementParticipants, testRequest{method: http.MethodPatch, target: "/", params: params})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, decodeBody[store.UpdateResult](t, rr))
	})

	t.Run("increment unknown camp", func(t *testing.T) {
		h := NewCampHandler(&mocks.MockCampStore{Err: store.ErrCampNotFound}, testLogger())
		rr := serve(t, h.IncrementParticipants, testRequest{method: http.MethodPatch, target: "/", params: params})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("delete", func(t *testing.T) {
		h := NewCampHandler(&mocks.MockCampStore{}, testLogger())
		rr := serve(t, h.DeleteCamp, testRequest{method: http.MethodDelete, target: "/", params: params})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"deletedCount":1}`, rr.Body.String())
	})

	t.Run("delete store failure", func(t *testing.T) {
		h := NewCampHandler(&mocks.MockCampStore{Err: errors.New("timeout")}, testLogger())
		rr := serve(t, h.DeleteCamp, testRequest{method: http.MethodDelete, target: "/", params: params})
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Failed to delete camp", decodeError(t, rr).Message)
	})
}
