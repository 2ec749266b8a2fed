// Package patch builds Mongo update documents from a field map.
package patch

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Update turns set into an update document. Nil values, including a nil
// *ObjectID, are removed with $unset instead of being stored as null.
func Update(set bson.M) bson.M {
	assign := bson.M{}
	unset := bson.M{}
	for k, v := range set {
		if isNil(v) {
			unset[k] = ""
			continue
		}
		assign[k] = v
	}
	doc := bson.M{}
	if len(assign) > 0 {
		doc["$set"] = assign
	}
	if len(unset) > 0 {
		doc["$unset"] = unset
	}
	return doc
}

// OptionalID parses hex as an ObjectID; "" yields nil, meaning "clear".
// Callers validate hex beforehand.
func OptionalID(hex string) *primitive.ObjectID {
	if hex == "" {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil
	}
	return &id
}

func isNil(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case *primitive.ObjectID:
		return x == nil
	}
	return false
}
