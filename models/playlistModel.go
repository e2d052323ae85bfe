package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Playlist struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Name        *string              `bson:"name" json:"name" validate:"required,min=1,max=100"`
	Description *string              `bson:"description" json:"description" validate:"required,min=1,max=500"`
	Videos      []primitive.ObjectID `bson:"videos" json:"videos"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}
