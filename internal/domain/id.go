package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// ParseID converts a hex string into an object ID.
// Malformed input fails with ErrInvalidID before any store access happens.
func ParseID(field, hex string) (primitive.ObjectID, error) {
	if hex == "" {
		return primitive.NilObjectID, NewValidationError(field, "is required", ErrInvalidID)
	}

	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, NewValidationError(field, "has invalid format", ErrInvalidID)
	}
	return id, nil
}

// IsValidID reports whether hex is a well-formed object ID.
func IsValidID(hex string) bool {
	return primitive.IsValidObjectID(hex)
}
