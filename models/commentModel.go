package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// A comment belongs to exactly one parent, either a video or a tweet.
type Comment struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Content   *string             `bson:"content" json:"content" validate:"required,min=1"`
	Video     *primitive.ObjectID `bson:"video,omitempty" json:"video,omitempty"`
	Tweet     *primitive.ObjectID `bson:"tweet,omitempty" json:"tweet,omitempty"`
	Owner     primitive.ObjectID  `bson:"owner" json:"owner"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}
