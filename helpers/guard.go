package helpers

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotOwner = errors.New("you do not have permission to modify this resource")

// VerifyOwnership compares a stored owner reference with the authenticated
// actor's id. Every mutating operation on an owned resource runs this before
// touching the document.
func VerifyOwnership(owner primitive.ObjectID, actorID string) error {
	if owner.Hex() != actorID {
		return ErrNotOwner
	}
	return nil
}
