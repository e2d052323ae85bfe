package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
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

var videocollection *mongo.Collection

func InitVideoController() {
	videocollection = database.OpenCollection(database.Client, "videos")
}

// GetAllVideos lists videos with optional free-text query, owner filter,
// sorting and pagination. Each result carries the collapsed public owner and
// a like count.
func GetAllVideos() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		page, limit := helpers.GetPaginationParams(c)
		query := strings.TrimSpace(c.Query("query"))

		var ownerID *primitive.ObjectID
		if userIDStr := c.Query("userId"); userIDStr != "" {
			parsed, err := primitive.ObjectIDFromHex(userIDStr)
			if err != nil {
				helpers.RespondError(c, http.StatusBadRequest, "Invalid user ID format")
				return
			}
			ownerID = &parsed
		}

		pipeline := []bson.M{
			{"$match": helpers.BuildVideoMatch(query, ownerID)},
			{"$lookup": bson.M{
				"from":         "users",
				"localField":   "owner",
				"foreignField": "_id",
				"as":           "owner",
				"pipeline":     []bson.M{{"$project": publicUserProjection}},
			}},
			{"$lookup": bson.M{
				"from":         "likes",
				"localField":   "_id",
				"foreignField": "video",
				"as":           "likes",
			}},
			// sort before skip/limit so pages stay stable across requests
			{"$sort": helpers.BuildVideoSort(c.Query("sortBy"), c.Query("sortType"))},
			{"$skip": (page - 1) * limit},
			{"$limit": limit},
			{"$addFields": bson.M{
				"owner":      bson.M{"$arrayElemAt": []interface{}{"$owner", 0}},
				"likesCount": bson.M{"$size": "$likes"},
			}},
			{"$project": bson.M{"likes": 0}},
		}

		cursor, err := videocollection.Aggregate(ctx, pipeline)
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error fetching videos")
			return
		}

		videos := []bson.M{}
		if err := cursor.All(ctx, &videos); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error decoding videos")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, videos, "Videos fetched successfully")
	}
}

// PublishVideo uploads the video file and thumbnail to the media host and
// creates the video document.
func PublishVideo() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userID, err := authenticatedUserID(c)
		if err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		title := strings.TrimSpace(c.PostForm("title"))
		description := strings.TrimSpace(c.PostForm("description"))
		if title == "" || description == "" {
			helpers.RespondError(c, http.StatusBadRequest, "Title and description are required")
			return
		}

		duration, _ := strconv.ParseFloat(c.PostForm("duration"), 64)

		isPublished := true
		if raw := c.PostForm("isPublished"); raw != "" {
			if parsed, err := strconv.ParseBool(raw); err == nil {
				isPublished = parsed
			}
		}

		videoFile, videoHeader, err := c.Request.FormFile("videoFile")
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Video file is required")
			return
		}
		defer videoFile.Close()

		thumbFile, thumbHeader, err := c.Request.FormFile("thumbnail")
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Thumbnail file is required")
			return
		}
		defer thumbFile.Close()

		videoURL, err := helpers.UploadFile(videoFile, videoHeader, "videos", "video")
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to upload video file")
			return
		}

		thumbnailURL, err := helpers.UploadFile(thumbFile, thumbHeader, "thumbnails", "image")
		if err != nil {
			// don't leave an orphaned video file on the media host
			_ = helpers.DeleteFile(videoURL, "video")
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to upload thumbnail")
			return
		}

		now := time.Now()
		video := models.Video{
			ID:          primitive.NewObjectID(),
			VideoFile:   &videoURL,
			Thumbnail:   &thumbnailURL,
			Title:       &title,
			Description: &description,
			Duration:    duration,
			Views:       0,
			IsPublished: isPublished,
			Owner:       userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if _, err := videocollection.InsertOne(ctx, video); err != nil {
			log.Println("PublishVideo: insert failed:", err)
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to save video")
			return
		}

		helpers.RespondJSON(c, http.StatusCreated, video, "Video uploaded successfully")
	}
}

// GetVideoByID returns a single video with its like count. A logged-in
// requester also gets the view counted and the video moved to the end of
// their watch history.
func GetVideoByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		videoID, err := primitive.ObjectIDFromHex(c.Param("video_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid video ID format")
			return
		}

		pipeline := []bson.M{
			{"$match": bson.M{"_id": videoID}},
			{"$lookup": bson.M{
				"from":         "likes",
				"localField":   "_id",
				"foreignField": "video",
				"as":           "likes",
			}},
			{"$addFields": bson.M{"likesCount": bson.M{"$size": "$likes"}}},
			{"$project": bson.M{"likes": 0}},
		}

		cursor, err := videocollection.Aggregate(ctx, pipeline)
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error fetching video")
			return
		}

		var videos []bson.M
		if err := cursor.All(ctx, &videos); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error decoding video")
			return
		}
		if len(videos) == 0 {
			helpers.RespondError(c, http.StatusNotFound, "Video not found")
			return
		}

		if requester, err := authenticatedUserID(c); err == nil {
			recordView(ctx, videoID, requester)
		}

		helpers.RespondJSON(c, http.StatusOK, videos[0], "Video fetched successfully")
	}
}

// recordView bumps the view counter and moves the video to the end of the
// requester's watch history, keeping the list free of duplicates.
func recordView(ctx context.Context, videoID primitive.ObjectID, userID primitive.ObjectID) {
	if _, err := videocollection.UpdateOne(ctx,
		bson.M{"_id": videoID},
		bson.M{"$inc": bson.M{"views": 1}},
	); err != nil {
		log.Println("recordView: views increment failed:", err)
		return
	}

	_, _ = usercollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"watchHistory": videoID}},
	)
	_, _ = usercollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"watchHistory": videoID}},
	)
}

// UpdateVideo edits title/description and optionally replaces the thumbnail.
func UpdateVideo() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		videoID, err := primitive.ObjectIDFromHex(c.Param("video_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid video ID format")
			return
		}

		var video models.Video
		if err := videocollection.FindOne(ctx, bson.M{"_id": videoID}).Decode(&video); err != nil {
			helpers.RespondError(c, http.StatusNotFound, "Video not found")
			return
		}

		if err := helpers.VerifyOwnership(video.Owner, c.GetString("user_id")); err != nil {
			helpers.RespondError(c, http.StatusForbidden, err.Error())
			return
		}

		updateObj := bson.M{"updatedAt": time.Now()}
		if title := strings.TrimSpace(c.PostForm("title")); title != "" {
			updateObj["title"] = title
		}
		if description := strings.TrimSpace(c.PostForm("description")); description != "" {
			updateObj["description"] = description
		}

		var oldThumbnail string
		if thumbFile, thumbHeader, err := c.Request.FormFile("thumbnail"); err == nil {
			defer thumbFile.Close()
			thumbnailURL, err := helpers.UploadFile(thumbFile, thumbHeader, "thumbnails", "image")
			if err != nil {
				helpers.RespondError(c, http.StatusInternalServerError, "Failed to upload thumbnail")
				return
			}
			updateObj["thumbnail"] = thumbnailURL
			if video.Thumbnail != nil {
				oldThumbnail = *video.Thumbnail
			}
		}

		if len(updateObj) == 1 {
			helpers.RespondError(c, http.StatusBadRequest, "Provide at least one field to update")
			return
		}

		if _, err := videocollection.UpdateOne(ctx, bson.M{"_id": videoID}, bson.M{"$set": updateObj}); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to update video")
			return
		}

		if oldThumbnail != "" {
			_ = helpers.DeleteFile(oldThumbnail, "image")
		}

		var updated models.Video
		if err := videocollection.FindOne(ctx, bson.M{"_id": videoID}).Decode(&updated); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error fetching updated video")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, updated, "Video details updated successfully")
	}
}

// DeleteVideo removes the document and its media files.
func DeleteVideo() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		videoID, err := primitive.ObjectIDFromHex(c.Param("video_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid video ID format")
			return
		}

		var video models.Video
		if err := videocollection.FindOne(ctx, bson.M{"_id": videoID}).Decode(&video); err != nil {
			helpers.RespondError(c, http.StatusNotFound, "Video not found")
			return
		}

		if err := helpers.VerifyOwnership(video.Owner, c.GetString("user_id")); err != nil {
			helpers.RespondError(c, http.StatusForbidden, err.Error())
			return
		}

		if _, err := videocollection.DeleteOne(ctx, bson.M{"_id": videoID}); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to delete video")
			return
		}

		if video.VideoFile != nil {
			_ = helpers.DeleteFile(*video.VideoFile, "video")
		}
		if video.Thumbnail != nil {
			_ = helpers.DeleteFile(*video.Thumbnail, "image")
		}

		helpers.RespondJSON(c, http.StatusOK, video, "Video deleted successfully")
	}
}

// TogglePublishStatus flips the published flag.
func TogglePublishStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		videoID, err := primitive.ObjectIDFromHex(c.Param("video_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid video ID format")
			return
		}

		var video models.Video
		if err := videocollection.FindOne(ctx, bson.M{"_id": videoID}).Decode(&video); err != nil {
			helpers.RespondError(c, http.StatusNotFound, "Video not found")
			return
		}

		if err := helpers.VerifyOwnership(video.Owner, c.GetString("user_id")); err != nil {
			helpers.RespondError(c, http.StatusForbidden, err.Error())
			return
		}

		update := bson.M{"$set": bson.M{
			"isPublished": !video.IsPublished,
			"updatedAt":   time.Now(),
		}}
		if _, err := videocollection.UpdateOne(ctx, bson.M{"_id": videoID}, update); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to toggle publish status")
			return
		}

		video.IsPublished = !video.IsPublished
		helpers.RespondJSON(c, http.StatusOK, video, "Publish status toggled successfully")
	}
}
