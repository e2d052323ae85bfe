package routes

import (
	"github.com/gin-gonic/gin"
	controller "github.com/ishanbagra18/videotube-using-go/controllers"
	"github.com/ishanbagra18/videotube-using-go/middleware"
)

func UserRoutes(router *gin.Engine) {

	// PUBLIC ROUTES
	router.POST("/users/register", controller.Register())
	router.POST("/users/login", controller.Login())
	router.POST("/users/refresh-token", controller.RefreshAccessToken())

	// channel profile personalizes isSubscribed when a user is logged in
	router.GET("/users/c/:username", middleware.OptionalAuthentication(), controller.GetUserChannelProfile())

	// PROTECTED ROUTES
	userGroup := router.Group("/users")
	userGroup.Use(middleware.Authentication())
	{
		userGroup.POST("/logout", controller.Logout())
		userGroup.POST("/change-password", controller.ChangePassword())
		userGroup.GET("/current-user", controller.CurrentUser())
		userGroup.PATCH("/update-account", controller.UpdateAccount())
		userGroup.PATCH("/avatar", controller.UpdateAvatar())
		userGroup.PATCH("/cover-image", controller.UpdateCoverImage())
		userGroup.GET("/history", controller.GetWatchHistory())
	}
}
