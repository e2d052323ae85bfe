package routes

import (
	"github.com/gin-gonic/gin"
	controller "github.com/ishanbagra18/videotube-using-go/controllers"
)

func HealthcheckRoutes(router *gin.Engine) {
	router.GET("/healthcheck", controller.Healthcheck())
}
