package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/videotube-using-go/helpers"
)

func Healthcheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		helpers.RespondJSON(c, http.StatusOK, gin.H{}, "The server is up and running")
	}
}
