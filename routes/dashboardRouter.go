package routes

import (
	"github.com/gin-gonic/gin"
	controller "github.com/ishanbagra18/videotube-using-go/controllers"
	"github.com/ishanbagra18/videotube-using-go/middleware"
)

func DashboardRoutes(router *gin.Engine) {

	dashboardGroup := router.Group("/dashboard")
	dashboardGroup.Use(middleware.Authentication())
	{
		dashboardGroup.GET("/stats", controller.GetChannelStats())
		dashboardGroup.GET("/videos", controller.GetChannelVideos())
	}
}
