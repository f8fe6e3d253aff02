package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/tygam/khaosat-server/config"
	"github.com/tygam/khaosat-server/repository"
	"github.com/tygam/khaosat-server/routes"
)

func main() {
	// .env cho chạy local, trên server dùng env thật
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	// Kết nối DB + AutoMigrate
	config.ConnectDB()
	repository.Init(config.DB)

	// Tạo instance router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return origin == "http://localhost:5173" || origin == os.Getenv("APP_URL")
		},
		AllowMethods:           []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:           []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:          []string{"Content-Length", "Content-Disposition"},
		AllowCredentials:       true,
		MaxAge:                 12 * time.Hour,
		AllowWildcard:          true,
		AllowBrowserExtensions: true,
	}))

	// Route test server
	r.GET("/", func(c *gin.Context) {
		c.String(200, "Khao sat server is running")
	})

	if err := r.SetTrustedProxies(nil); err != nil {
		panic(err)
	}

	// Setup routes khác
	routes.SetupRoutes(r)

	// Lấy PORT từ biến môi trường
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on port %s", port)
	r.Run(":" + port)
}
