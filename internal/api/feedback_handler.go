package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/carecamp/carecamp-api/internal/api/shared"
	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/platform/logger"
	"github.com/carecamp/carecamp-api/internal/store"
)

// FeedbackHandler handles participant feedback requests.
type FeedbackHandler struct {
	feedback store.FeedbackStore
	timeFunc func() time.Time
	logger   *slog.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler
func NewFeedbackHandler(feedback store.FeedbackStore, logger *slog.Logger) *FeedbackHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for FeedbackHandler")
	}

	return &FeedbackHandler{
		feedback: feedback,
		timeFunc: time.Now,
		logger:   logger.With(slog.String("component", "feedback_handler")),
	}
}

// CreateFeedback handles POST /feedback. The creation time is always the
// server's clock.
func (h *FeedbackHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateFeedbackRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	fb, err := domain.NewFeedback(req.toDomain(), h.timeFunc())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.feedback.Create(r.Context(), fb); err != nil {
		HandleAPIError(w, r, err, "Failed to submit feedback")
		return
	}

	log.Debug("feedback stored", slog.String("feedback_id", fb.ID.Hex()))
	shared.RespondWithJSON(w, r, http.StatusCreated, FeedbackResponse{
		Message:    "Feedback submitted successfully!",
		InsertedID: fb.ID.Hex(),
	})
}

// ListFeedback handles GET /feedback, newest first.
func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	items, err := h.feedback.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list feedback")
		return
	}
	if items == nil {
		items = []*domain.Feedback{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, items)
}
