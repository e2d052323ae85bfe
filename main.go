package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/videotube-using-go/controllers"
	"github.com/ishanbagra18/videotube-using-go/database"
	"github.com/ishanbagra18/videotube-using-go/helpers"
	"github.com/ishanbagra18/videotube-using-go/routes"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	database.InitDB()
	database.EnsureIndexes(database.Client)

	helpers.InitTokenHelper()
	controllers.InitUserController()
	controllers.InitVideoController()
	controllers.InitCommentController()
	controllers.InitTweetController()
	controllers.InitLikeController()
	controllers.InitSubscriptionController()
	controllers.InitPlaylistController()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:5173"
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(corsOrigin, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.HealthcheckRoutes(router)
	routes.UserRoutes(router)
	routes.VideoRoutes(router)
	routes.CommentRoutes(router)
	routes.TweetRoutes(router)
	routes.LikeRoutes(router)
	routes.SubscriptionRoutes(router)
	routes.PlaylistRoutes(router)
	routes.DashboardRoutes(router)

	log.Println("🚀 [main] Server running on port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("❌ [main] Server failed:", err)
	}
}
