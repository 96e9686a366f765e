package store

import (
	"context"
	"math"

	"github.com/carecamp/carecamp-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampSort selects the ordering of a camp search.
type CampSort string

// Recognized sort tokens. SortNone keeps the store's natural order.
const (
	SortNone        CampSort = ""
	SortParticipant CampSort = "participant"
	SortFeesLow     CampSort = "feesLow"
	SortFeesHigh    CampSort = "feesHigh"
	SortName        CampSort = "name"
)

// ParseCampSort maps a query token to a CampSort. Unknown tokens become SortNone.
func ParseCampSort(token string) CampSort {
	switch s := CampSort(token); s {
	case SortParticipant, SortFeesLow, SortFeesHigh, SortName:
		return s
	default:
		return SortNone
	}
}

// Camp search paging limits.
const (
	DefaultCampPage  = 1
	DefaultCampLimit = 9
	MaxCampLimit     = 100
	PopularCampLimit = 6
)

// SearchFields are the camp fields a search term is matched against.
var SearchFields = []string{"campName", "location", "healthcareProfessional", "description"}

// CampQuery describes one page of a camp search.
// Search matches a case-insensitive substring of any SearchFields entry;
// an empty Search matches every camp.
type CampQuery struct {
	Search string
	Sort   CampSort
	Page   int
	Limit  int
}

// NewCampQuery returns a query for the first page with the default limit.
func NewCampQuery() CampQuery {
	return CampQuery{Page: DefaultCampPage, Limit: DefaultCampLimit}
}

// Offset is the number of matching camps skipped before this page. It is
// never negative and saturates at math.MaxInt64.
func (q CampQuery) Offset() int64 {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	pages, limit := int64(q.Page-1), int64(q.Limit)
	if pages > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return pages * limit
}

// CampPage is one page of search results plus the total match count.
type CampPage struct {
	Total  int64          `json:"total"`
	Result []*domain.Camp `json:"result"`
}

// CampStore defines the interface for camp data persistence.
type CampStore interface {
	// Create saves a new camp.
	Create(ctx context.Context, camp *domain.Camp) error

	// GetByID retrieves a camp. Returns ErrCampNotFound if it does not exist.
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Camp, error)

	// Search returns the requested page of camps matching the query and the
	// total number of matches ignoring pagination.
	Search(ctx context.Context, query CampQuery) (*CampPage, error)

	// Popular returns up to limit camps ordered by participant count, highest first.
	Popular(ctx context.Context, limit int) ([]*domain.Camp, error)

	// Update applies a partial update. Returns ErrCampNotFound if no camp matched.
	Update(ctx context.Context, id primitive.ObjectID, update domain.CampUpdate) (*UpdateResult, error)

	// IncrementParticipants atomically adds one to the camp's participant count.
	// Returns ErrCampNotFound if no camp matched.
	IncrementParticipants(ctx context.Context, id primitive.ObjectID) (*UpdateResult, error)

	// Delete removes a camp. Returns ErrCampNotFound if it does not exist.
	Delete(ctx context.Context, id primitive.ObjectID) (*DeleteResult, error)
}
