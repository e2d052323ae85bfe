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

var subscriptioncollection *mongo.Collection

func InitSubscriptionController() {
	subscriptioncollection = database.OpenCollection(database.Client, "subscriptions")
}

// ToggleSubscription subscribes the requester to a channel, or unsubscribes
// if a subscription row already exists. The unique (subscriber, channel)
// index backs the check-then-act.
func ToggleSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		channelID, err := primitive.ObjectIDFromHex(c.Param("channel_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid channel ID format")
			return
		}

		userID, err := authenticatedUserID(c)
		if err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		if channelID == userID {
			helpers.RespondError(c, http.StatusBadRequest, "You cannot subscribe to your own channel")
			return
		}

		filter := bson.M{"subscriber": userID, "channel": channelID}

		var existing models.Subscription
		err = subscriptioncollection.FindOne(ctx, filter).Decode(&existing)
		if err == nil {
			if _, err := subscriptioncollection.DeleteOne(ctx, bson.M{"_id": existing.ID}); err != nil {
				helpers.RespondError(c, http.StatusInternalServerError, "Error occurred while unsubscribing")
				return
			}
			helpers.RespondJSON(c, http.StatusOK, gin.H{"subscribed": false}, "Unsubscribed successfully")
			return
		}
		if err != mongo.ErrNoDocuments {
			helpers.RespondError(c, http.StatusInternalServerError, "Error checking existing subscription")
			return
		}

		count, err := usercollection.CountDocuments(ctx, bson.M{"_id": channelID})
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error checking channel")
			return
		}
		if count == 0 {
			helpers.RespondError(c, http.StatusNotFound, "Channel not found")
			return
		}

		now := time.Now()
		subscription := models.Subscription{
			ID:         primitive.NewObjectID(),
			Subscriber: userID,
			Channel:    channelID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		if _, err := subscriptioncollection.InsertOne(ctx, subscription); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error occurred while subscribing")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, gin.H{"subscribed": true}, "Subscribed successfully")
	}
}

// listSubscriptionUsers flattens subscription rows into a flat list of the
// opposite side's public user profiles.
func listSubscriptionUsers(c *gin.Context, matchField string, matchID primitive.ObjectID, lookupField string, emptyMsg string, okMsg string) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{matchField: matchID}},
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   lookupField,
			"foreignField": "_id",
			"as":           "profiles",
			"pipeline":     []bson.M{{"$project": publicUserProjection}},
		}},
		{"$unwind": "$profiles"},
		{"$replaceRoot": bson.M{"newRoot": "$profiles"}},
	}

	cursor, err := subscriptioncollection.Aggregate(ctx, pipeline)
	if err != nil {
		helpers.RespondError(c, http.StatusInternalServerError, "Error fetching subscriptions")
		return
	}

	profiles := []bson.M{}
	if err := cursor.All(ctx, &profiles); err != nil {
		helpers.RespondError(c, http.StatusInternalServerError, "Error decoding subscriptions")
		return
	}

	// an empty list is a valid response for these views
	message := okMsg
	if len(profiles) == 0 {
		message = emptyMsg
	}
	helpers.RespondJSON(c, http.StatusOK, profiles, message)
}

// GetChannelSubscribers lists the users subscribed to a channel.
func GetChannelSubscribers() gin.HandlerFunc {
	return func(c *gin.Context) {
		channelID, err := primitive.ObjectIDFromHex(c.Param("channel_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid channel ID format")
			return
		}
		listSubscriptionUsers(c, "channel", channelID, "subscriber",
			"No subscribers found for this channel", "Subscribers fetched successfully")
	}
}

// GetSubscribedChannels lists the channels a user has subscribed to.
func GetSubscribedChannels() gin.HandlerFunc {
	return func(c *gin.Context) {
		subscriberID, err := primitive.ObjectIDFromHex(c.Param("subscriber_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid subscriber ID format")
			return
		}
		listSubscriptionUsers(c, "subscriber", subscriberID, "channel",
			"No subscribed channels found for this user", "Subscribed channels fetched successfully")
	}
}
