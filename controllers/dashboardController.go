package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/videotube-using-go/helpers"

	"go.mongodb.org/mongo-driver/bson"
)

// GetChannelStats aggregates the requester's channel: video count, total
// views, total likes across all owned videos and subscriber count.
func GetChannelStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		channelID, err := authenticatedUserID(c)
		if err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		pipeline := []bson.M{
			{"$match": bson.M{"_id": channelID}},
			{"$lookup": bson.M{
				"from":         "videos",
				"localField":   "_id",
				"foreignField": "owner",
				"as":           "allVideos",
				"pipeline": []bson.M{
					{"$lookup": bson.M{
						"from":         "likes",
						"localField":   "_id",
						"foreignField": "video",
						"as":           "likes",
					}},
					{"$addFields": bson.M{"likesCount": bson.M{"$size": "$likes"}}},
				},
			}},
			{"$lookup": bson.M{
				"from":         "subscriptions",
				"localField":   "_id",
				"foreignField": "channel",
				"as":           "subscribers",
			}},
			{"$addFields": bson.M{
				"totalSubscribers": bson.M{"$size": "$subscribers"},
				"totalVideos":      bson.M{"$size": "$allVideos"},
				"totalViews":       bson.M{"$sum": "$allVideos.views"},
				"totalLikes":       bson.M{"$sum": "$allVideos.likesCount"},
			}},
			{"$project": bson.M{
				"totalVideos":      1,
				"totalViews":       1,
				"totalLikes":       1,
				"totalSubscribers": 1,
				"username":         1,
				"fullName":         1,
				"avatar":           1,
				"coverImage":       1,
			}},
		}

		cursor, err := usercollection.Aggregate(ctx, pipeline)
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error fetching channel stats")
			return
		}

		var stats []bson.M
		if err := cursor.All(ctx, &stats); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error decoding channel stats")
			return
		}
		if len(stats) == 0 {
			helpers.RespondError(c, http.StatusNotFound, "Channel not found")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, stats[0], "Channel stats fetched successfully")
	}
}

// GetChannelVideos lists the requester's videos with per-video like counts.
// A channel with no videos is a 404 for this view.
func GetChannelVideos() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		channelID, err := authenticatedUserID(c)
		if err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		pipeline := []bson.M{
			{"$match": bson.M{"owner": channelID}},
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
			helpers.RespondError(c, http.StatusInternalServerError, "Error fetching channel videos")
			return
		}

		var videos []bson.M
		if err := cursor.All(ctx, &videos); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error decoding channel videos")
			return
		}
		if len(videos) == 0 {
			helpers.RespondError(c, http.StatusNotFound, "No videos found for this channel")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, videos, "Channel videos fetched successfully")
	}
}
