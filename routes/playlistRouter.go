package routes

import (
	"github.com/gin-gonic/gin"
	controller "github.com/ishanbagra18/videotube-using-go/controllers"
	"github.com/ishanbagra18/videotube-using-go/middleware"
)

func PlaylistRoutes(router *gin.Engine) {

	// PUBLIC ROUTES
	router.GET("/playlists/user/:user_id", controller.GetUserPlaylists())
	router.GET("/playlists/:playlist_id", controller.GetPlaylistByID())

	// PROTECTED ROUTES
	playlistGroup := router.Group("/playlists")
	playlistGroup.Use(middleware.Authentication())
	{
		playlistGroup.POST("", controller.CreatePlaylist())
		playlistGroup.PATCH("/:playlist_id", controller.UpdatePlaylist())
		playlistGroup.DELETE("/:playlist_id", controller.DeletePlaylist())
		playlistGroup.PATCH("/add/:playlist_id/:video_id", controller.AddVideoToPlaylist())
		playlistGroup.PATCH("/remove/:playlist_id/:video_id", controller.RemoveVideoFromPlaylist())
	}
}
