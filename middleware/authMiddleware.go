package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	helper "github.com/ishanbagra18/videotube-using-go/helpers"
)

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// Authentication is used on routes that REQUIRE login. The access token is
// read from the accessToken cookie or the Authorization header.
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			helper.RespondError(c, http.StatusUnauthorized, "Unauthorized request")
			c.Abort()
			return
		}

		claims, err := helper.ValidateAccessToken(token)
		if err != nil {
			helper.RespondError(c, http.StatusUnauthorized, "Invalid access token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.Uid)
		c.Next()
	}
}

// OptionalAuthentication is used on PUBLIC routes that personalize when a user
// happens to be logged in (watch history, isSubscribed). It never aborts.
func OptionalAuthentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token != "" {
			if claims, err := helper.ValidateAccessToken(token); err == nil {
				c.Set("user_id", claims.Uid)
			}
		}
		c.Next()
	}
}
