package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/khata/ledger-api/internal/core/ports"
)

// pageOptions translates a normalized ListQuery into mongo find options.
func pageOptions(q ports.ListQuery) *options.FindOptions {
	dir := 1
	if q.SortDir == "desc" {
		dir = -1
	}
	return options.Find().
		SetSkip(q.Offset()).
		SetLimit(int64(q.Size)).
		SetSort(bson.D{{Key: sortField(q.SortBy), Value: dir}})
}

// sortField maps API sort keys to document field names. Unknown keys fall
// back to _id so a bad query cannot error the whole listing.
func sortField(key string) string {
	switch key {
	case "", "id":
		return "_id"
	case "name":
		return "name"
	case "full_name", "fullName":
		return "full_name"
	case "email":
		return "email"
	case "title":
		return "title"
	case "created_at", "createdAt":
		return "created_at"
	default:
		return "_id"
	}
}
