package helpers

import (
	"context"
	"fmt"
	"os"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/ishanbagra18/videotube-using-go/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type SignedDetails struct {
	Uid      string
	Email    string
	Username string
	FullName string
	jwt.StandardClaims
}

var usercollection *mongo.Collection

func InitTokenHelper() {
	usercollection = database.OpenCollection(database.Client, "users")
}

func accessSecret() []byte {
	return []byte(os.Getenv("ACCESS_TOKEN_SECRET"))
}

func refreshSecret() []byte {
	return []byte(os.Getenv("REFRESH_TOKEN_SECRET"))
}

// GenerateAllTokens creates the access/refresh token pair for a user. The
// access token carries the public identity claims; the refresh token only the
// user id.
func GenerateAllTokens(email string, username string, fullName string, uid string) (signedToken string, signedRefreshToken string, err error) {
	claims := &SignedDetails{
		Uid:      uid,
		Email:    email,
		Username: username,
		FullName: fullName,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}

	refreshClaims := &SignedDetails{
		Uid: uid,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour * 30).Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(accessSecret())
	if err != nil {
		return "", "", err
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(refreshSecret())
	if err != nil {
		return "", "", err
	}

	return token, refreshToken, nil
}

// ValidateAccessToken verifies an access token and returns its claims.
func ValidateAccessToken(signedToken string) (*SignedDetails, error) {
	return validateToken(signedToken, accessSecret())
}

// ValidateRefreshToken verifies a refresh token and returns its claims.
func ValidateRefreshToken(signedToken string) (*SignedDetails, error) {
	return validateToken(signedToken, refreshSecret())
}

func validateToken(signedToken string, secret []byte) (*SignedDetails, error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("the token is invalid: %v", err)
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok {
		return nil, fmt.Errorf("the token is invalid")
	}

	if claims.ExpiresAt < time.Now().Unix() {
		return nil, fmt.Errorf("token is expired")
	}

	return claims, nil
}

// UpdateRefreshToken stores the current refresh token on the user document.
// The user's session is that single value: rotated on login and refresh.
func UpdateRefreshToken(ctx context.Context, refreshToken string, userID interface{}) error {
	update := bson.M{
		"$set": bson.M{
			"refreshToken": refreshToken,
			"updatedAt":    time.Now(),
		},
	}
	_, err := usercollection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	return err
}

// ClearRefreshToken drops the stored session value on logout.
func ClearRefreshToken(ctx context.Context, userID interface{}) error {
	update := bson.M{
		"$unset": bson.M{"refreshToken": 1},
		"$set":   bson.M{"updatedAt": time.Now()},
	}
	_, err := usercollection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	return err
}
