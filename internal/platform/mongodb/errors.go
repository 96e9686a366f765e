package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/carecamp/carecamp-api/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
)

// MapError maps a driver error to the matching store sentinel, keeping the
// original error in the chain for logging.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case errors.Is(err, context.DeadlineExceeded),
		mongo.IsTimeout(err),
		mongo.IsNetworkError(err),
		errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	return err
}
