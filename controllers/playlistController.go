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

var playlistcollection *mongo.Collection

func InitPlaylistController() {
	playlistcollection = database.OpenCollection(database.Client, "playlists")
}

func CreatePlaylist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userID, err := authenticatedUserID(c)
		if err != nil {
			helpers.RespondError(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		var request struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := c.BindJSON(&request); err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid payload", err.Error())
			return
		}

		name := strings.TrimSpace(request.Name)
		description := strings.TrimSpace(request.Description)
		if name == "" || description == "" {
			helpers.RespondError(c, http.StatusBadRequest, "Please provide both name and description")
			return
		}

		now := time.Now()
		playlist := models.Playlist{
			ID:          primitive.NewObjectID(),
			Name:        &name,
			Description: &description,
			Videos:      []primitive.ObjectID{},
			Owner:       userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if _, err := playlistcollection.InsertOne(ctx, playlist); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to create playlist")
			return
		}

		helpers.RespondJSON(c, http.StatusCreated, playlist, "Playlist created successfully")
	}
}

// GetUserPlaylists lists a user's playlists; none found is a 404.
func GetUserPlaylists() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid user ID format")
			return
		}

		cursor, err := playlistcollection.Find(ctx, bson.M{"owner": userID})
		if err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error fetching playlists")
			return
		}

		playlists := []models.Playlist{}
		if err := cursor.All(ctx, &playlists); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Error decoding playlists")
			return
		}
		if len(playlists) == 0 {
			helpers.RespondError(c, http.StatusNotFound, "No playlists found for this user")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, playlists, "Playlists fetched successfully")
	}
}

func GetPlaylistByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		playlistID, err := primitive.ObjectIDFromHex(c.Param("playlist_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid playlist ID format")
			return
		}

		var playlist models.Playlist
		if err := playlistcollection.FindOne(ctx, bson.M{"_id": playlistID}).Decode(&playlist); err != nil {
			helpers.RespondError(c, http.StatusNotFound, "Playlist not found")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, playlist, "Playlist fetched successfully")
	}
}

// loadOwnedPlaylist fetches a playlist and verifies the requester owns it.
func loadOwnedPlaylist(c *gin.Context, ctx context.Context, playlistID primitive.ObjectID) (*models.Playlist, bool) {
	var playlist models.Playlist
	if err := playlistcollection.FindOne(ctx, bson.M{"_id": playlistID}).Decode(&playlist); err != nil {
		helpers.RespondError(c, http.StatusNotFound, "Playlist not found")
		return nil, false
	}

	if err := helpers.VerifyOwnership(playlist.Owner, c.GetString("user_id")); err != nil {
		helpers.RespondError(c, http.StatusForbidden, err.Error())
		return nil, false
	}
	return &playlist, true
}

// AddVideoToPlaylist appends a video reference; duplicates are rejected by an
// application check since the storage itself does not constrain the list.
func AddVideoToPlaylist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		playlistID, err := primitive.ObjectIDFromHex(c.Param("playlist_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid playlist ID format")
			return
		}
		videoID, err := primitive.ObjectIDFromHex(c.Param("video_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid video ID format")
			return
		}

		playlist, ok := loadOwnedPlaylist(c, ctx, playlistID)
		if !ok {
			return
		}

		for _, existing := range playlist.Videos {
			if existing == videoID {
				helpers.RespondError(c, http.StatusBadRequest, "Video is already in the playlist")
				return
			}
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

		update := bson.M{
			"$push": bson.M{"videos": videoID},
			"$set":  bson.M{"updatedAt": time.Now()},
		}
		if _, err := playlistcollection.UpdateOne(ctx, bson.M{"_id": playlistID}, update); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to update playlist")
			return
		}

		playlist.Videos = append(playlist.Videos, videoID)
		helpers.RespondJSON(c, http.StatusOK, playlist, "Video added to playlist successfully")
	}
}

func RemoveVideoFromPlaylist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		playlistID, err := primitive.ObjectIDFromHex(c.Param("playlist_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid playlist ID format")
			return
		}
		videoID, err := primitive.ObjectIDFromHex(c.Param("video_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid video ID format")
			return
		}

		playlist, ok := loadOwnedPlaylist(c, ctx, playlistID)
		if !ok {
			return
		}

		found := false
		for _, existing := range playlist.Videos {
			if existing == videoID {
				found = true
				break
			}
		}
		if !found {
			helpers.RespondError(c, http.StatusBadRequest, "Video not found in the playlist")
			return
		}

		update := bson.M{
			"$pull": bson.M{"videos": videoID},
			"$set":  bson.M{"updatedAt": time.Now()},
		}
		if _, err := playlistcollection.UpdateOne(ctx, bson.M{"_id": playlistID}, update); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to update playlist")
			return
		}

		remaining := make([]primitive.ObjectID, 0, len(playlist.Videos)-1)
		for _, existing := range playlist.Videos {
			if existing != videoID {
				remaining = append(remaining, existing)
			}
		}
		playlist.Videos = remaining

		helpers.RespondJSON(c, http.StatusOK, playlist, "Video removed from playlist successfully")
	}
}

func UpdatePlaylist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		playlistID, err := primitive.ObjectIDFromHex(c.Param("playlist_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid playlist ID format")
			return
		}

		var request struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := c.BindJSON(&request); err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid payload", err.Error())
			return
		}
		if request.Name == "" && request.Description == "" {
			helpers.RespondError(c, http.StatusBadRequest, "Please provide at least one field to update")
			return
		}

		playlist, ok := loadOwnedPlaylist(c, ctx, playlistID)
		if !ok {
			return
		}

		updateObj := bson.M{"updatedAt": time.Now()}
		if request.Name != "" {
			updateObj["name"] = request.Name
			playlist.Name = &request.Name
		}
		if request.Description != "" {
			updateObj["description"] = request.Description
			playlist.Description = &request.Description
		}

		if _, err := playlistcollection.UpdateOne(ctx, bson.M{"_id": playlistID}, bson.M{"$set": updateObj}); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to update playlist")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, playlist, "Playlist updated successfully")
	}
}

func DeletePlaylist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		playlistID, err := primitive.ObjectIDFromHex(c.Param("playlist_id"))
		if err != nil {
			helpers.RespondError(c, http.StatusBadRequest, "Invalid playlist ID format")
			return
		}

		playlist, ok := loadOwnedPlaylist(c, ctx, playlistID)
		if !ok {
			return
		}

		if _, err := playlistcollection.DeleteOne(ctx, bson.M{"_id": playlistID}); err != nil {
			helpers.RespondError(c, http.StatusInternalServerError, "Failed to delete playlist")
			return
		}

		helpers.RespondJSON(c, http.StatusOK, playlist, "Playlist deleted successfully")
	}
}
