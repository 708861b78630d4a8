package mongo

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/foodhub/ordering-system/internal/core/domain"
)

// conflictByIndex maps a duplicate-key error to the coded error registered
// for the violated index. Unknown indexes fall back to fallback.
func conflictByIndex(err error, byIndex map[string]error, fallback error) (error, bool) {
	if !mongo.IsDuplicateKeyError(err) {
		return nil, false
	}
	msg := err.Error()
	for index, mapped := range byIndex {
		if strings.Contains(msg, "index: "+index+" ") {
			return mapped, true
		}
	}
	return fallback, true
}

func notFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// objectID parses a hex id. Malformed ids cannot match any document, so they
// are reported as missing records.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrRecordNotFound
	}
	return oid, nil
}

// excludeID narrows filter to documents other than id.
func excludeID(filter bson.M, id string) {
	if id == "" {
		return
	}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}
}
