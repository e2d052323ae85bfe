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
)

var commentcollection *mongo.Collection

func InitCommentController() {
	commentcollection = database.OpenCollection(database.Client, "comments")
}

// listComments pages comments for a parent (video or tweet), owner collapsed
// to the public profile. No total-count field is returned.
func listComments(parentField string, paramName string, invalidMsg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		parentID, err := primitive.ObjectIDFromHex(c.Param(paramName))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, invalidMsg)
			return
		}

		page, limit := helpers.GetPaginationParams(c)

		pipeline := []bson.M{
			{"$match": bson.M{parentField: parentID}},
			{"$lookup": bson.M{
				"from":         "users",
				"localField":   "owner",
				"foreignField": "_id",
				"as":           "owner",
				"pipeline":     []bson.M{{"$project": publicUserProjection}},
			}},
			{"$addFields": bson.M{"owner": bson.M{"$first": "$owner"}}},
			{"$sort": bson.M{"createdAt": -1}},
			{"$skip": (page - 1) * limit},
			{"$limit": limit},
		}

		cursor, err := commentcollection.Aggregate(ctx, pipeline)
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error fetching comments")
			return
		}

		comments := []bson.M{}
		if err := cursor.All(ctx, &comments); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error decoding comments")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, comments, "Comments fetched successfully")
	}
}

func GetVideoComments() gin.HandlerFunc {
	return listComments("video", "video_id", "Invalid video ID format")
}

func GetTweetComments() gin.HandlerFunc {
	return listComments("tweet", "tweet_id", "Invalid tweet ID format")
}

// AddCommentToVideo creates a comment after confirming the video exists.
func AddCommentToVideo() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		videoID, err := primitive.ObjectIDFromHex(c.Param("video_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid video ID format")
			return
		}

		content, ok := bindCommentContent(c)
		if !ok {
			return
		}

		count, err := videocollection.CountDocuments(ctx, bson.M{"_id": videoID})
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error checking video")
			return
		}
		if count == 0 {
			helpers.RespondError(c, http.StatusNotFound, "Video not found")
			return
		}

		userID, err := authenticatedUserID(c)
		if err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		comment := newComment(content, userID)
		comment.Video = &videoID

		if _, err := commentcollection.InsertOne(ctx, comment); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to post comment")
			return
		}

		helpers.RespondJSON(c, http.StatusCreated, comment, "Comment added to video successfully")
	}
}

// AddCommentToTweet creates a comment after confirming the tweet exists.
func AddCommentToTweet() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		tweetID, err := primitive.ObjectIDFromHex(c.Param("tweet_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid tweet ID format")
			return
		}

		content, ok := bindCommentContent(c)
		if !ok {
			return
		}

		count, err := tweetcollection.CountDocuments(ctx, bson.M{"_id": tweetID})
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error checking tweet")
			return
		}
		if count == 0 {
			helpers.RespondError(c, http.StatusNotFound, "Tweet not found")
			return
		}

		userID, err := authenticatedUserID(c)
		if err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		comment := newComment(content, userID)
		comment.Tweet = &tweetID

		if _, err := commentcollection.InsertOne(ctx, comment); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to post comment")
			return
		}

		helpers.RespondJSON(c, http.StatusCreated, comment, "Comment added to tweet successfully")
	}
}

func bindCommentContent(c *gin.Context) (string, bool) {
	var request struct {
		Content string `json:"content"`
	}
	if err := c.BindJSON(&request); err != nil {
		helpers.RespondError(c, http.StatusBadRequest, "Invalid payload", err.Error())
		return "", false
	}
	content := strings.TrimSpace(request.Content)
	if content == "" {
		helpers.RespondError(c, http.StatusBadRequest, "Content is required and cannot be empty")
		return "", false
	}
	return content, true
}

func newComment(content string, owner primitive.ObjectID) models.Comment {
	now := time.Now()
	return models.Comment{
		ID:        primitive.NewObjectID(),
		Content:   &content,
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateComment edits the content; only the owner may do so.
func UpdateComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		commentID, err := primitive.ObjectIDFromHex(c.Param("comment_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid comment ID format")
			return
		}

		content, ok := bindCommentContent(c)
		if !ok {
			return
		}

		var comment models.Comment
		if err := commentcollection.FindOne(ctx, bson.M{"_id": commentID}).Decode(&comment); err != nil {
			helpers.RespondError(c, http.StatusNotFound, "Comment not found")
			return
		}

		if err := helpers.VerifyOwnership(comment.Owner, c.GetString("user_id")); err != nil {
			helpers.RespondError(c, http.StatusForbidden, err.Error())
			return
		}

		update := bson.M{"$set": bson.M{"content": content, "updatedAt": time.Now()}}
		if _, err := commentcollection.UpdateOne(ctx, bson.M{"_id": commentID}, update); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to update comment")
			return
		}

		comment.Content = &content
		helpers.RespondJSON(c, http.StatusOK, comment, "Comment updated successfully")
	}
}

// DeleteComment removes a comment; only the owner may do so.
func DeleteComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		commentID, err := primitive.ObjectIDFromHex(c.Param("comment_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid comment ID format")
			return
		}

		var comment models.Comment
		if err := commentcollection.FindOne(ctx, bson.M{"_id": commentID}).Decode(&comment); err != nil {
			helpers.RespondError(c, http.StatusNotFound, "Comment not found")
			return
		}

		if err := helpers.VerifyOwnership(comment.Owner, c.GetString("user_id")); err != nil {
			helpers.RespondError(c, http.StatusForbidden, err.Error())
			return
		}

		if _, err := commentcollection.DeleteOne(ctx, bson.M{"_id": commentID}); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to delete comment")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, gin.H{}, "Comment deleted successfully")
	}
}
