package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	VideoFile   *string            `bson:"videoFile" json:"videoFile" validate:"required"`
	Thumbnail   *string            `bson:"thumbnail" json:"thumbnail" validate:"required"`
	Title       *string            `bson:"title" json:"title" validate:"required,min=1,max=100"`
	Description *string            `bson:"description" json:"description" validate:"required"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
