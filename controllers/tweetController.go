package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/videotube-using-go/database"
	"github.com/ishanbagra18/videotube-using-go/helpers"
	"github.com/ishanbagra18/videotube-using-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var tweetcollection *mongo.Collection

func InitTweetController() {
	tweetcollection = database.OpenCollection(database.Client, "tweets")
}

func CreateTweet() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userID, err := authenticatedUserID(c)
		if err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		var request struct {
			Content string `json:"content"`
		}
		if err := c.BindJSON(&request); err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid payload", err.Error())
			return
		}
		content := strings.TrimSpace(request.Content)
		if content == "" {
			helpers.RespondError(c, http.StatusBadRequest, "Content is required and cannot be empty")
			return
		}

		now := time.Now()
		tweet := models.Tweet{
			ID:        primitive.NewObjectID(),
			Content:   &content,
			Owner:     userID,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := tweetcollection.InsertOne(ctx, tweet); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to create tweet")
			return
		}

		helpers.RespondJSON(c, http.StatusCreated, tweet, "Tweet created successfully")
	}
}

// GetUserTweets lists a user's tweets, newest first. An existing user with no
// tweets gets an empty list, not a 404.
func GetUserTweets() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid user ID format")
			return
		}

		count, err := usercollection.CountDocuments(ctx, bson.M{"_id": userID})
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error checking user")
			return
		}
		if count == 0 {
			helpers.RespondError(c, http.StatusNotFound, "User not found")
			return
		}

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := tweetcollection.Find(ctx, bson.M{"owner": userID}, opts)
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error fetching tweets")
			return
		}

		tweets := []models.Tweet{}
		if err := cursor.All(ctx, &tweets); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error decoding tweets")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, tweets, "Tweets fetched successfully")
	}
}

func UpdateTweet() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		tweetID, err := primitive.ObjectIDFromHex(c.Param("tweet_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid tweet ID format")
			return
		}

		var request struct {
			Content string `json:"content"`
		}
		if err := c.BindJSON(&request); err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid payload", err.Error())
			return
		}
		content := strings.TrimSpace(request.Content)
		if content == "" {
			helpers.RespondError(c, http.StatusBadRequest, "Content is required and cannot be empty")
			return
		}

		var tweet models.Tweet
		if err := tweetcollection.FindOne(ctx, bson.M{"_id": tweetID}).Decode(&tweet); err != nil {
			helpers.RespondError(c, http.StatusNotFound, "Tweet not found")
			return
		}

		if err := helpers.VerifyOwnership(tweet.Owner, c.GetString("user_id")); err != nil {
			helpers.RespondError(c, http.StatusForbidden, err.Error())
			return
		}

		update := bson.M{"$set": bson.M{"content": content, "updatedAt": time.Now()}}
		if _, err := tweetcollection.UpdateOne(ctx, bson.M{"_id": tweetID}, update); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to update tweet")
			return
		}

		tweet.Content = &content
		helpers.RespondJSON(c, http.StatusOK, tweet, "Tweet updated successfully")
	}
}

func DeleteTweet() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		tweetID, err := primitive.ObjectIDFromHex(c.Param("tweet_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid tweet ID format")
			return
		}

		var tweet models.Tweet
		if err := tweetcollection.FindOne(ctx, bson.M{"_id": tweetID}).Decode(&tweet); err != nil {
			helpers.RespondError(c, http.StatusNotFound, "Tweet not found")
			return
		}

		if err := helpers.VerifyOwnership(tweet.Owner, c.GetString("user_id")); err != nil {
			helpers.RespondError(c, http.StatusForbidden, err.Error())
			return
		}

		if _, err := tweetcollection.DeleteOne(ctx, bson.M{"_id": tweetID}); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to delete tweet")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, gin.H{}, "Tweet deleted successfully")
	}
}
