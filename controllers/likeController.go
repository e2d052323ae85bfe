package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/videotube-using-go/database"
	"github.com/ishanbagra18/videotube-using-go/helpers"
	"github.com/ishanbagra18/videotube-using-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var likecollection *mongo.Collection

func InitLikeController() {
	likecollection = database.OpenCollection(database.Client, "likes")
}

// toggleLike is the shared toggle: if a like row exists for (actor, target)
// it is removed, otherwise created. The partial unique indexes on the likes
// collection keep the check-then-act safe under concurrent duplicates.
func toggleLike(c *gin.Context, targetField string, targetID primitive.ObjectID, targetCollection *mongo.Collection, targetLabel string) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	userID, err := authenticatedUserID(c)
	if err != nil {
		helpers.RespondError(c, http.StatusUnauthorized, "Unauthorized request")
		return
	}

	filter := bson.M{"likedBy": userID, targetField: targetID}

	var existing models.Like
	err = likecollection.FindOne(ctx, filter).Decode(&existing)
	if err == nil {
		if _, err := likecollection.DeleteOne(ctx, bson.M{"_id": existing.ID}); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error occurred while removing the like")
			return
		}
		helpers.RespondJSON(c, http.StatusOK, gin.H{"liked": false}, targetLabel+" unliked successfully")
		return
	}
	if err != mongo.ErrNoDocuments {
		helpers.RespondError(c, http.StatusInternalServerError, "Error checking existing like")
		return
	}

	count, err := targetCollection.CountDocuments(ctx, bson.M{"_id": targetID})
	if err != nil {
		helpers.RespondError(c, http.StatusInternalServerError, "Error checking "+targetLabel)
		return
	}
	if count == 0 {
		helpers.RespondError(c, http.StatusNotFound, targetLabel+" not found")
		return
	}

	now := time.Now()
	like := models.Like{
		ID:        primitive.NewObjectID(),
		LikedBy:   userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	switch targetField {
	case "video":
		like.Video = &targetID
	case "comment":
		like.Comment = &targetID
	case "tweet":
		like.Tweet = &targetID
	}

	if _, err := likecollection.InsertOne(ctx, like); err != nil {
		helpers.RespondError(c, http.StatusInternalServerError, "Error occurred while liking")
		return
	}

	helpers.RespondJSON(c, http.StatusOK, gin.H{"liked": true}, targetLabel+" liked successfully")
}

func ToggleVideoLike() gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, err := primitive.ObjectIDFromHex(c.Param("video_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid video ID format")
			return
		}
		toggleLike(c, "video", videoID, videocollection, "Video")
	}
}

func ToggleCommentLike() gin.HandlerFunc {
	return func(c *gin.Context) {
		commentID, err := primitive.ObjectIDFromHex(c.Param("comment_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid comment ID format")
			return
		}
		toggleLike(c, "comment", commentID, commentcollection, "Comment")
	}
}

func ToggleTweetLike() gin.HandlerFunc {
	return func(c *gin.Context) {
		tweetID, err := primitive.ObjectIDFromHex(c.Param("tweet_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid tweet ID format")
			return
		}
		toggleLike(c, "tweet", tweetID, tweetcollection, "Tweet")
	}
}

// GetLikedVideos lists the videos the requester has liked, reshaped to the
// video's own fields with the like wrapper dropped.
func GetLikedVideos() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userID, err := authenticatedUserID(c)
		if err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		pipeline := []bson.M{
			{"$match": bson.M{
				"likedBy": userID,
				"video":   bson.M{"$exists": true},
			}},
			{"$lookup": bson.M{
				"from":         "videos",
				"localField":   "video",
				"foreignField": "_id",
				"as":           "likedVideo",
			}},
			{"$unwind": "$likedVideo"},
			{"$project": bson.M{
				"_id":       "$likedVideo._id",
				"owner":     "$likedVideo.owner",
				"title":     "$likedVideo.title",
				"thumbnail": "$likedVideo.thumbnail",
				"videoFile": "$likedVideo.videoFile",
				"duration":  "$likedVideo.duration",
				"views":     "$likedVideo.views",
				"createdAt": "$likedVideo.createdAt",
			}},
		}

		cursor, err := likecollection.Aggregate(ctx, pipeline)
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error fetching liked videos")
			return
		}

		videos := []bson.M{}
		if err := cursor.All(ctx, &videos); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error decoding liked videos")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, videos, "Liked videos fetched successfully")
	}
}
