package repositories

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newID returns the opaque string id stored in _id. Documents keep string ids
// so that both clients can treat them as plain strings.
func newID() string {
	return primitive.NewObjectID().Hex()
}

// toDocument encodes v with its bson tags and removes the given keys, which
// are the ones the server assigns.
func toDocument(v interface{}, drop ...string) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	for _, k := range drop {
		delete(doc, k)
	}
	return doc, nil
}

// createdAtDesc is the order both clients list collections in.
var createdAtDesc = bson.D{{Key: "createdAt", Value: -1}}
