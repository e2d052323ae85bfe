package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Username     *string              `bson:"username" json:"username" validate:"required,min=3,max=30,lowercase"`
	Email        *string              `bson:"email" json:"email" validate:"required,email"`
	FullName     *string              `bson:"fullName" json:"fullName" validate:"required,min=2,max=100"`
	Avatar       *string              `bson:"avatar" json:"avatar" validate:"required"`
	CoverImage   *string              `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	Password     *string              `bson:"password" json:"-" validate:"required,min=6"`
	RefreshToken *string              `bson:"refreshToken,omitempty" json:"-"`
	WatchHistory []primitive.ObjectID `bson:"watchHistory,omitempty" json:"watchHistory,omitempty"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}
