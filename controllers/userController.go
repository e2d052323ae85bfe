package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ishanbagra18/videotube-using-go/database"
	"github.com/ishanbagra18/videotube-using-go/helpers"
	"github.com/ishanbagra18/videotube-using-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var usercollection *mongo.Collection

func InitUserController() {
	usercollection = database.OpenCollection(database.Client, "users")
}

var validate = validator.New()

const (
	accessCookieMaxAge  = 24 * 60 * 60
	refreshCookieMaxAge = 30 * 24 * 60 * 60
)

// Public user projection used whenever a user document crosses a join.
// Credential and session fields never leave this package.
var publicUserProjection = bson.M{
	"username": 1,
	"fullName": 1,
	"avatar":   1,
}

// HashPassword hashes a plain password
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// VerifyPassword compares hashed password with plain text
func VerifyPassword(userPassword string, providedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(userPassword), []byte(providedPassword)) == nil
}

func setAuthCookies(c *gin.Context, token string, refreshToken string) {
	c.SetCookie("accessToken", token, accessCookieMaxAge, "/", "", true, true)
	c.SetCookie("refreshToken", refreshToken, refreshCookieMaxAge, "/", "", true, true)
}

func clearAuthCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", true, true)
	c.SetCookie("refreshToken", "", -1, "/", "", true, true)
}

// Register creates a user from a multipart form: username, email, fullName,
// password plus a required avatar file and an optional coverImage file.
func Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		username := strings.ToLower(strings.TrimSpace(c.PostForm("username")))
		email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
		fullName := strings.TrimSpace(c.PostForm("fullName"))
		password := c.PostForm("password")

		user := models.User{
			Username: &username,
			Email:    &email,
			FullName: &fullName,
			Password: &password,
		}
		placeholder := "pending"
		user.Avatar = &placeholder

		if validationErr := validate.Struct(user); validationErr != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid registration payload", validationErr.Error())
			return
		}

		// Uniqueness is also enforced by indexes; the lookup here gives the
		// client a 409 instead of a raw duplicate-key failure.
		count, err := usercollection.CountDocuments(ctx, bson.M{
			"$or": []bson.M{{"username": username}, {"email": email}},
		})
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error checking existing users")
			return
		}
		if count > 0 {
			helpers.RespondError(c, http.StatusConflict, "Username or email already exists")
			return
		}

		avatarFile, avatarHeader, err := c.Request.FormFile("avatar")
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Avatar file is required")
			return
		}
		defer avatarFile.Close()

		avatarURL, err := helpers.UploadFile(avatarFile, avatarHeader, "avatars", "image")
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to upload avatar")
			return
		}
		user.Avatar = &avatarURL

		coverFile, coverHeader, err := c.Request.FormFile("coverImage")
		if err == nil {
			defer coverFile.Close()
			coverURL, err := helpers.UploadFile(coverFile, coverHeader, "covers", "image")
			if err != nil {
				helpers.RespondError(c, http.StatusInternalServerError, "Failed to upload cover image")
				return
			}
			user.CoverImage = &coverURL
		}

		hashed, err := HashPassword(password)
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Password hashing failed")
			return
		}
		user.Password = &hashed

		now := time.Now()
		user.ID = primitive.NewObjectID()
		user.WatchHistory = []primitive.ObjectID{}
		user.CreatedAt = now
		user.UpdatedAt = now

		if _, err := usercollection.InsertOne(ctx, user); err != nil {
			log.Println("Register: insert failed:", err)
			helpers.RespondError(c, http.StatusInternalServerError, "User not created")
			return
		}

		helpers.RespondJSON(c, http.StatusCreated, user, "User registered successfully")
	}
}

// Login accepts email or username plus password, rotates the session and sets
// the token cookies.
func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var request struct {
			Email    string `json:"email"`
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.BindJSON(&request); err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid login payload", err.Error())
			return
		}
		if request.Email == "" && request.Username == "" {
			helpers.RespondError(c, http.StatusBadRequest, "Email or username is required")
			return
		}
		if request.Password == "" {
			helpers.RespondError(c, http.StatusBadRequest, "Password is required")
			return
		}

		filter := bson.M{"$or": []bson.M{
			{"email": strings.ToLower(request.Email)},
			{"username": strings.ToLower(request.Username)},
		}}

		var foundUser models.User
		if err := usercollection.FindOne(ctx, filter).Decode(&foundUser); err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Email/username or password is incorrect")
			return
		}

		if foundUser.Password == nil || !VerifyPassword(*foundUser.Password, request.Password) {
			helpers.RespondError(c, http.StatusUnauthorized, "Email/username or password is incorrect")
			return
		}

		token, refreshToken, err := helpers.GenerateAllTokens(
			*foundUser.Email, *foundUser.Username, *foundUser.FullName, foundUser.ID.Hex(),
		)
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Token generation failed")
			return
		}

		if err := helpers.UpdateRefreshToken(ctx, refreshToken, foundUser.ID); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to persist session")
			return
		}

		setAuthCookies(c, token, refreshToken)
		helpers.RespondJSON(c, http.StatusOK, gin.H{
			"user":         foundUser,
			"accessToken":  token,
			"refreshToken": refreshToken,
		}, "Logged in successfully")
	}
}

// Logout clears the stored session and expires the cookies.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userID, err := authenticatedUserID(c)
		if err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		if err := helpers.ClearRefreshToken(ctx, userID); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error logging out")
			return
		}

		clearAuthCookies(c)
		helpers.RespondJSON(c, http.StatusOK, gin.H{}, "Logged out successfully")
	}
}

// RefreshAccessToken rotates the token pair. The incoming refresh token comes
// from the cookie or the request body and must match the stored session value.
func RefreshAccessToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		incoming, _ := c.Cookie("refreshToken")
		if incoming == "" {
			var request struct {
				RefreshToken string `json:"refreshToken"`
			}
			if err := c.BindJSON(&request); err == nil {
				incoming = request.RefreshToken
			}
		}
		if incoming == "" {
			helpers.RespondError(c, http.StatusUnauthorized, "Refresh token is required")
			return
		}

		claims, err := helpers.ValidateRefreshToken(incoming)
		if err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Invalid refresh token")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.Uid)
		if err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Invalid refresh token")
			return
		}

		var user models.User
		if err := usercollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Invalid refresh token")
			return
		}

		if user.RefreshToken == nil || *user.RefreshToken != incoming {
			helpers.RespondError(c, http.StatusUnauthorized, "Refresh token is expired or has been rotated")
			return
		}

		token, refreshToken, err := helpers.GenerateAllTokens(
			*user.Email, *user.Username, *user.FullName, user.ID.Hex(),
		)
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Token generation failed")
			return
		}

		if err := helpers.UpdateRefreshToken(ctx, refreshToken, user.ID); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to persist session")
			return
		}

		setAuthCookies(c, token, refreshToken)
		helpers.RespondJSON(c, http.StatusOK, gin.H{
			"accessToken":  token,
			"refreshToken": refreshToken,
		}, "Access token refreshed")
	}
}

// ChangePassword verifies the old password before setting the new one.
func ChangePassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userID, err := authenticatedUserID(c)
		if err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		var request struct {
			OldPassword string `json:"oldPassword" binding:"required"`
			NewPassword string `json:"newPassword" binding:"required,min=6"`
		}
		if err := c.BindJSON(&request); err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid payload", err.Error())
			return
		}

		var user models.User
		if err := usercollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			helpers.RespondError(c, http.StatusNotFound, "User not found")
			return
		}

		if user.Password == nil || !VerifyPassword(*user.Password, request.OldPassword) {
			helpers.RespondError(c, http.StatusBadRequest, "Old password is incorrect")
			return
		}

		hashed, err := HashPassword(request.NewPassword)
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Password hashing failed")
			return
		}

		update := bson.M{"$set": bson.M{"password": hashed, "updatedAt": time.Now()}}
		if _, err := usercollection.UpdateOne(ctx, bson.M{"_id": userID}, update); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to update password")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, gin.H{}, "Password changed successfully")
	}
}

// CurrentUser returns the authenticated user.
func CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userID, err := authenticatedUserID(c)
		if err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		var user models.User
		if err := usercollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			helpers.RespondError(c, http.StatusNotFound, "User not found")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, user, "Current user fetched successfully")
	}
}

// UpdateAccount patches fullName and/or email.
func UpdateAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userID, err := authenticatedUserID(c)
		if err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		var request struct {
			FullName string `json:"fullName"`
			Email    string `json:"email"`
		}
		if err := c.BindJSON(&request); err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid payload", err.Error())
			return
		}
		if request.FullName == "" && request.Email == "" {
			helpers.RespondError(c, http.StatusBadRequest, "Provide at least one field to update")
			return
		}

		updateObj := bson.M{"updatedAt": time.Now()}
		if request.FullName != "" {
			updateObj["fullName"] = request.FullName
		}
		if request.Email != "" {
			email := strings.ToLower(strings.TrimSpace(request.Email))
			count, err := usercollection.CountDocuments(ctx, bson.M{
				"email": email,
				"_id":   bson.M{"$ne": userID},
			})
			if err != nil {
				helpers.RespondError(c, http.StatusInternalServerError, "Error checking existing users")
				return
			}
			if count > 0 {
				helpers.RespondError(c, http.StatusConflict, "Email already exists")
				return
			}
			updateObj["email"] = email
		}

		if _, err := usercollection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": updateObj}); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error while updating account")
			return
		}

		var updatedUser models.User
		if err := usercollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&updatedUser); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error while fetching updated account")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, updatedUser, "Account updated successfully")
	}
}

// UpdateAvatar replaces the avatar image and removes the previous file from
// the media host.
func UpdateAvatar() gin.HandlerFunc {
	return updateUserImage("avatar", "avatars")
}

// UpdateCoverImage replaces the cover image and removes the previous file.
func UpdateCoverImage() gin.HandlerFunc {
	return updateUserImage("coverImage", "covers")
}

func updateUserImage(field string, folder string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userID, err := authenticatedUserID(c)
		if err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		file, header, err := c.Request.FormFile(field)
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, field+" file is required")
			return
		}
		defer file.Close()

		var user models.User
		if err := usercollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			helpers.RespondError(c, http.StatusNotFound, "User not found")
			return
		}

		url, err := helpers.UploadFile(file, header, folder, "image")
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to upload "+field)
			return
		}

		update := bson.M{"$set": bson.M{field: url, "updatedAt": time.Now()}}
		if _, err := usercollection.UpdateOne(ctx, bson.M{"_id": userID}, update); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to update "+field)
			return
		}

		// best effort cleanup of the replaced file
		var oldURL string
		if field == "avatar" && user.Avatar != nil {
			oldURL = *user.Avatar
		} else if field == "coverImage" && user.CoverImage != nil {
			oldURL = *user.CoverImage
		}
		if oldURL != "" {
			_ = helpers.DeleteFile(oldURL, "image")
		}

		helpers.RespondJSON(c, http.StatusOK, gin.H{field: url}, field+" updated successfully")
	}
}

// GetUserChannelProfile resolves a channel page by username: subscriber and
// subscribed-to counts plus whether the requester is among the channel's
// subscribers.
func GetUserChannelProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		username := strings.ToLower(strings.TrimSpace(c.Param("username")))
		if username == "" {
			helpers.RespondError(c, http.StatusBadRequest, "Username is required")
			return
		}

		// isSubscribed is a membership test over the unwound subscriber ids,
		// false for anonymous requesters.
		var isSubscribed interface{} = false
		if requesterHex := c.GetString("user_id"); requesterHex != "" {
			if requesterID, err := primitive.ObjectIDFromHex(requesterHex); err == nil {
				isSubscribed = bson.M{"$in": []interface{}{requesterID, "$subscribers.subscriber"}}
			}
		}

		pipeline := []bson.M{
			{"$match": bson.M{"username": username}},
			{"$lookup": bson.M{
				"from":         "subscriptions",
				"localField":   "_id",
				"foreignField": "channel",
				"as":           "subscribers",
			}},
			{"$lookup": bson.M{
				"from":         "subscriptions",
				"localField":   "_id",
				"foreignField": "subscriber",
				"as":           "subscribedTo",
			}},
			{"$addFields": bson.M{
				"subscribersCount":          bson.M{"$size": "$subscribers"},
				"channelsSubscribedToCount": bson.M{"$size": "$subscribedTo"},
				"isSubscribed":              isSubscribed,
			}},
			{"$project": bson.M{
				"username":                  1,
				"fullName":                  1,
				"avatar":                    1,
				"coverImage":                1,
				"subscribersCount":          1,
				"channelsSubscribedToCount": 1,
				"isSubscribed":              1,
				"createdAt":                 1,
			}},
		}

		cursor, err := usercollection.Aggregate(ctx, pipeline)
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error fetching channel profile")
			return
		}

		var channels []bson.M
		if err := cursor.All(ctx, &channels); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error decoding channel profile")
			return
		}
		if len(channels) == 0 {
			helpers.RespondError(c, http.StatusNotFound, "Channel not found")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, channels[0], "Channel profile fetched successfully")
	}
}

// GetWatchHistory returns the requester's watch history in stored list order,
// each entry with its owner collapsed to the public profile fields.
func GetWatchHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userID, err := authenticatedUserID(c)
		if err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		pipeline := []bson.M{
			{"$match": bson.M{"_id": userID}},
			{"$lookup": bson.M{
				"from": "videos",
				"let":  bson.M{"historyIds": bson.M{"$ifNull": []interface{}{"$watchHistory", []interface{}{}}}},
				"pipeline": []bson.M{
					{"$match": bson.M{"$expr": bson.M{"$in": []interface{}{"$_id", "$$historyIds"}}}},
					// the lookup does not preserve the reference-list order,
					// so sort by each video's position in it
					{"$addFields": bson.M{
						"historyIndex": bson.M{"$indexOfArray": []interface{}{"$$historyIds", "$_id"}},
					}},
					{"$sort": bson.M{"historyIndex": 1}},
					{"$lookup": bson.M{
						"from":         "users",
						"localField":   "owner",
						"foreignField": "_id",
						"as":           "owner",
						"pipeline":     []bson.M{{"$project": publicUserProjection}},
					}},
					{"$addFields": bson.M{"owner": bson.M{"$first": "$owner"}}},
					{"$project": bson.M{"historyIndex": 0}},
				},
				"as": "watchHistory",
			}},
			{"$project": bson.M{"watchHistory": 1}},
		}

		cursor, err := usercollection.Aggregate(ctx, pipeline)
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error fetching watch history")
			return
		}

		var results []bson.M
		if err := cursor.All(ctx, &results); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error decoding watch history")
			return
		}
		if len(results) == 0 {
			helpers.RespondError(c, http.StatusNotFound, "User not found")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, results[0]["watchHistory"], "Watch history fetched successfully")
	}
}

// authenticatedUserID reads the user id the auth middleware stored on the
// context and parses it into an ObjectID.
func authenticatedUserID(c *gin.Context) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.GetString("user_id"))
}
