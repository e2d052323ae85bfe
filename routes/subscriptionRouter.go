package routes

import (
	"github.com/gin-gonic/gin"
	controller "github.com/ishanbagra18/videotube-using-go/controllers"
	"github.com/ishanbagra18/videotube-using-go/middleware"
)

func SubscriptionRoutes(router *gin.Engine) {

	// PUBLIC ROUTES
	router.GET("/subscriptions/channel/:channel_id", controller.GetChannelSubscribers())
	router.GET("/subscriptions/user/:subscriber_id", controller.GetSubscribedChannels())

	// PROTECTED ROUTES
	router.POST("/subscriptions/channel/:channel_id", middleware.Authentication(), controller.ToggleSubscription())
}
