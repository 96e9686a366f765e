package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFeedbackHandler_CreateFeedback(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var created *domain.Feedback
	fb := &mocks.MockFeedbackStore{
		CreateFn: func(ctx context.Context, f *domain.Feedback) error {
			created = f
			return nil
		},
	}
	h := NewFeedbackHandler(fb, testLogger())
	h.timeFunc = func() time.Time { return now }

	t.Run("server timestamp", func(t *testing.T) {
		body := map[string]interface{}{"rating": 4, "comment": "Great", "createdAt": "1999-01-01T00:00:00Z"}
		rr := serve(t, h.CreateFeedback, testRequest{method: http.MethodPost, target: "/feedback", body: body})

		require.Equal(t, http.StatusCreated, rr.Code)
		resp := decodeBody[FeedbackResponse](t, rr)
		assert.Equal(t, "Feedback submitted successfully!", resp.Message)
		require.NotNil(t, created)
		assert.Equal(t, created.ID.Hex(), resp.InsertedID)
		assert.Equal(t, now, created.CreatedAt)
	})

	t.Run("free-form fields are kept", func(t *testing.T) {
		body := map[string]interface{}{
			"rating":      5,
			"comment":     "Helpful staff",
			"wouldReturn": true,
			"_id":         "000000000000000000000000",
		}
		rr := serve(t, h.CreateFeedback, testRequest{method: http.MethodPost, target: "/feedback", body: body})

		require.Equal(t, http.StatusCreated, rr.Code)
		require.NotNil(t, created)
		assert.Equal(t, domain.Fields{"wouldReturn": true}, created.Extra)
		assert.NotEqual(t, "000000000000000000000000", created.ID.Hex())
		assert.Equal(t, now, created.CreatedAt)
	})

	t.Run("rating out of range", func(t *testing.T) {
		rr := serve(t, h.CreateFeedback, testRequest{method: http.MethodPost, target: "/feedback", body: map[string]int{"rating": 6}})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestFeedbackHandler_ListFeedback(t *testing.T) {
	newer := &domain.Feedback{ID: primitive.NewObjectID(), Comment: "newer", Extra: domain.Fields{"wouldReturn": true}}
	older := &domain.Feedback{ID: primitive.NewObjectID(), Comment: "older"}
	fb := &mocks.MockFeedbackStore{
		ListFn: func(ctx context.Context) ([]*domain.Feedback, error) {
			return []*domain.Feedback{newer, older}, nil
		},
	}

	rr := serve(t, NewFeedbackHandler(fb, testLogger()).ListFeedback, testRequest{method: http.MethodGet, target: "/feedback"})

	require.Equal(t, http.StatusOK, rr.Code)
	items := decodeBody[[]domain.Feedback](t, rr)
	require.Len(t, items, 2)
	assert.Equal(t, "newer", items[0].Comment)
	assert.Equal(t, domain.Fields{"wouldReturn": true}, items[0].Extra)
	assert.Nil(t, items[1].Extra)
}
