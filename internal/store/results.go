package store

import "context"

// UpdateResult reports how many documents an update matched and changed.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports how many documents a delete removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// Pinger is implemented by stores that can report backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
