package routes

import (
	"github.com/gin-gonic/gin"
	controller "github.com/ishanbagra18/videotube-using-go/controllers"
	"github.com/ishanbagra18/videotube-using-go/middleware"
)

func LikeRoutes(router *gin.Engine) {

	likeGroup := router.Group("/likes")
	likeGroup.Use(middleware.Authentication())
	{
		likeGroup.POST("/toggle/video/:video_id", controller.ToggleVideoLike())
		likeGroup.POST("/toggle/comment/:comment_id", controller.ToggleCommentLike())
		likeGroup.POST("/toggle/tweet/:tweet_id", controller.ToggleTweetLike())
		likeGroup.GET("/videos", controller.GetLikedVideos())
	}
}
