package routes

import (
	"github.com/gin-gonic/gin"
	controller "github.com/ishanbagra18/videotube-using-go/controllers"
	"github.com/ishanbagra18/videotube-using-go/middleware"
)

func CommentRoutes(router *gin.Engine) {

	// PUBLIC ROUTES
	router.GET("/comments/video/:video_id", controller.GetVideoComments())
	router.GET("/comments/tweet/:tweet_id", controller.GetTweetComments())

	// PROTECTED ROUTES
	commentGroup := router.Group("/comments")
	commentGroup.Use(middleware.Authentication())
	{
		commentGroup.POST("/video/:video_id", controller.AddCommentToVideo())
		commentGroup.POST("/tweet/:tweet_id", controller.AddCommentToTweet())
		commentGroup.PATCH("/:comment_id", controller.UpdateComment())
		commentGroup.DELETE("/:comment_id", controller.DeleteComment())
	}
}
