package helpers

import (
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NormalizePagination resolves raw page/limit query values to positive
// integers, falling back to (1, 10) whenever an input is absent, non-numeric
// or non-positive.
func NormalizePagination(pageStr string, limitStr string) (page int, limit int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 10
	}

	return page, limit
}

// GetPaginationParams reads page/limit off the request.
func GetPaginationParams(c *gin.Context) (page int, limit int) {
	return NormalizePagination(c.Query("page"), c.Query("limit"))
}

// BuildVideoMatch builds the listing filter: owner when only userID is given,
// case-insensitive title-or-description match when only query is given, and
// the conjunction when both are.
func BuildVideoMatch(query string, userID *primitive.ObjectID) bson.M {
	textMatch := bson.M{
		"$or": []bson.M{
			{"title": bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}},
			{"description": bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}},
		},
	}

	switch {
	case userID != nil && query != "":
		return bson.M{
			"$and": []bson.M{
				{"owner": *userID},
				textMatch,
			},
		}
	case userID != nil:
		return bson.M{"owner": *userID}
	case query != "":
		return textMatch
	default:
		return bson.M{}
	}
}

// BuildVideoSort resolves sortBy/sortType to a sort document;
// "asc" ascends, anything else descends, default is newest created first.
func BuildVideoSort(sortBy string, sortType string) bson.D {
	if sortBy == "" {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	direction := -1
	if sortType == "asc" {
		direction = 1
	}
	return bson.D{{Key: sortBy, Value: direction}}
}
