package routes

import (
	"github.com/gin-gonic/gin"
	controller "github.com/ishanbagra18/videotube-using-go/controllers"
	"github.com/ishanbagra18/videotube-using-go/middleware"
)

func VideoRoutes(router *gin.Engine) {

	// PUBLIC ROUTES (optional auth feeds views + watch history)
	router.GET("/videos", controller.GetAllVideos())
	router.GET("/videos/:video_id", middleware.OptionalAuthentication(), controller.GetVideoByID())

	// PROTECTED ROUTES
	videoGroup := router.Group("/videos")
	videoGroup.Use(middleware.Authentication())
	{
		videoGroup.POST("", controller.PublishVideo())
		videoGroup.PATCH("/:video_id", controller.UpdateVideo())
		videoGroup.DELETE("/:video_id", controller.DeleteVideo())
		videoGroup.PATCH("/toggle/publish/:video_id", controller.TogglePublishStatus())
	}
}
