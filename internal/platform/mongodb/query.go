package mongodb

import (
	"regexp"

	"github.com/carecamp/carecamp-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// buildCampFilter matches camps whose searchable fields contain search as a
// case-insensitive substring. The term is quoted so it is matched literally.
func buildCampFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	clauses := make(bson.A, 0, len(store.SearchFields))
	for _, field := range store.SearchFields {
		clauses = append(clauses, bson.M{field: pattern})
	}
	return bson.M{"$or": clauses}
}

// buildCampSort translates a sort token into a sort document. Every order ends
// with _id so that pages never overlap when the primary key ties.
func buildCampSort(sort store.CampSort) bson.D {
	idAsc := bson.E{Key: "_id", Value: 1}

	switch sort {
	case store.SortParticipant:
		return bson.D{{Key: "participantCount", Value: -1}, idAsc}
	case store.SortFeesLow:
		return bson.D{{Key: "campFees", Value: 1}, idAsc}
	case store.SortFeesHigh:
		return bson.D{{Key: "campFees", Value: -1}, idAsc}
	case store.SortName:
		return bson.D{{Key: "campName", Value: 1}, idAsc}
	default:
		return bson.D{idAsc}
	}
}

// campFindOptions applies the sort and page window of q.
func campFindOptions(q store.CampQuery) *options.FindOptions {
	return options.Find().
		SetSort(buildCampSort(q.Sort)).
		SetSkip(q.Offset()).
		SetLimit(int64(q.Limit))
}
