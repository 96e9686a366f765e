package store

import (
	"context"

	"github.com/carecamp/carecamp-api/internal/domain"
)

// FeedbackStore defines the interface for participant feedback persistence.
// Feedback is append-only.
type FeedbackStore interface {
	// Create saves a new feedback entry.
	Create(ctx context.Context, feedback *domain.Feedback) error

	// List returns all feedback, newest first.
	List(ctx context.Context) ([]*domain.Feedback, error)
}
