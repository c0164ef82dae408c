package main

import (
	"log"

	"readian-backend/db"
	_ "readian-backend/docs"
	"readian-backend/routes"
	"readian-backend/utils"

	"github.com/gin-gonic/gin"
)

// @title Readian API
// @version 1.0
// @description API for the Readian story-publishing and reading platform
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the JWT with the Bearer prefix: Bearer <JWT>
func main() {

	gin.SetMode(gin.ReleaseMode)

	db.InitDB()

	if err := utils.InitCloudinary(); err != nil {
		log.Printf("Warning: Cloudinary initialization failed: %v", err)
		log.Println("Image uploads will not work properly.")
	}

	r := routes.SetupRouter()

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Error starting the server:", err)
	}
}
