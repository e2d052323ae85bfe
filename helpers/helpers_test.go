package helpers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestVerifyOwnership(t *testing.T) {
	owner := primitive.NewObjectID()

	assert.NoError(t, VerifyOwnership(owner, owner.Hex()))
	assert.ErrorIs(t, VerifyOwnership(owner, primitive.NewObjectID().Hex()), ErrNotOwner)
	assert.ErrorIs(t, VerifyOwnership(owner, ""), ErrNotOwner)
}

func TestApiResponseShape(t *testing.T) {
	resp := NewApiResponse(200, map[string]int{"count": 3}, "ok")

	raw, err := json.Marshal(resp)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, float64(200), decoded["statusCode"])
	assert.Equal(t, "ok", decoded["message"])
	assert.Equal(t, true, decoded["success"])
	assert.Contains(t, decoded, "data")
}

func TestApiErrorShape(t *testing.T) {
	apiErr := NewApiError(404, "not found")

	raw, err := json.Marshal(apiErr)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, float64(404), decoded["statusCode"])
	assert.Equal(t, false, decoded["success"])

	// errors must always be a list, never null
	errs, ok := decoded["errors"].([]interface{})
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestApiErrorCarriesDetails(t *testing.T) {
	apiErr := NewApiError(400, "validation failed", "username is required", "email is invalid")
	assert.Equal(t, []string{"username is required", "email is invalid"}, apiErr.Errors)
}

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"image url", "https://res.cloudinary.com/demo/image/upload/v1700000000/avatars/pic.png", "pic"},
		{"video url", "https://res.cloudinary.com/demo/video/upload/v1/videos/clip.mp4", "clip"},
		{"no extension", "https://res.cloudinary.com/demo/image/upload/raw-id", "raw-id"},
		{"bare id", "standalone", "standalone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublicIDFromURL(tt.url))
		})
	}
}
