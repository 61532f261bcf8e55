package utils

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsValidDocumentID reports whether id has the shape of a generated
// document id. Path parameters that fail this are answered with 404
// without a store round trip.
func IsValidDocumentID(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
