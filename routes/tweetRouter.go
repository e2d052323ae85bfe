package routes

import (
	"github.com/gin-gonic/gin"
	controller "github.com/ishanbagra18/videotube-using-go/controllers"
	"github.com/ishanbagra18/videotube-using-go/middleware"
)

func TweetRoutes(router *gin.Engine) {

	// PUBLIC ROUTES
	router.GET("/tweets/user/:user_id", controller.GetUserTweets())

	// PROTECTED ROUTES
	tweetGroup := router.Group("/tweets")
	tweetGroup.Use(middleware.Authentication())
	{
		tweetGroup.POST("", controller.CreateTweet())
		tweetGroup.PATCH("/:tweet_id", controller.UpdateTweet())
		tweetGroup.DELETE("/:tweet_id", controller.DeleteTweet())
	}
}
