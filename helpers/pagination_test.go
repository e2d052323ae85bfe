package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"both absent", "", "", 1, 10},
		{"valid values", "3", "25", 3, 25},
		{"zero page", "0", "10", 1, 10},
		{"negative limit", "1", "-5", 1, 10},
		{"non-numeric page", "abc", "10", 1, 10},
		{"non-numeric limit", "2", "ten", 2, 10},
		{"float input", "1.5", "2.5", 1, 10},
		{"both negative", "-1", "-1", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := NormalizePagination(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestBuildVideoMatch(t *testing.T) {
	ownerID := primitive.NewObjectID()

	t.Run("no filters", func(t *testing.T) {
		match := BuildVideoMatch("", nil)
		assert.Equal(t, bson.M{}, match)
	})

	t.Run("owner only", func(t *testing.T) {
		match := BuildVideoMatch("", &ownerID)
		assert.Equal(t, bson.M{"owner": ownerID}, match)
	})

	t.Run("query only matches title or description", func(t *testing.T) {
		match := BuildVideoMatch("golang", nil)
		or, ok := match["$or"].([]bson.M)
		assert.True(t, ok)
		assert.Len(t, or, 2)
		assert.Contains(t, or[0], "title")
		assert.Contains(t, or[1], "description")

		title := or[0]["title"].(bson.M)
		assert.Equal(t, "golang", title["$regex"])
		assert.Equal(t, "i", title["$options"])
	})

	t.Run("owner and query are conjoined", func(t *testing.T) {
		match := BuildVideoMatch("golang", &ownerID)
		and, ok := match["$and"].([]bson.M)
		assert.True(t, ok)
		assert.Len(t, and, 2)
		assert.Equal(t, bson.M{"owner": ownerID}, and[0])
		assert.Contains(t, and[1], "$or")
	})

	t.Run("regex metacharacters are escaped", func(t *testing.T) {
		match := BuildVideoMatch("c++ (tutorial)", nil)
		or := match["$or"].([]bson.M)
		title := or[0]["title"].(bson.M)
		assert.Equal(t, `c\+\+ \(tutorial\)`, title["$regex"])
	})
}

func TestBuildVideoSort(t *testing.T) {
	tests := []struct {
		name     string
		sortBy   string
		sortType string
		want     bson.D
	}{
		{"default newest first", "", "", bson.D{{Key: "createdAt", Value: -1}}},
		{"explicit ascending", "views", "asc", bson.D{{Key: "views", Value: 1}}},
		{"explicit descending", "views", "desc", bson.D{{Key: "views", Value: -1}}},
		{"unknown direction descends", "title", "upwards", bson.D{{Key: "title", Value: -1}}},
		{"missing direction descends", "duration", "", bson.D{{Key: "duration", Value: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildVideoSort(tt.sortBy, tt.sortType))
		})
	}
}
