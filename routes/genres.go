package routes

import (
	"readian-backend/handlers/genres"
	"readian-backend/middleware"

	"github.com/gin-gonic/gin"
)

func GenresRoutes(r *gin.Engine) {
	r.GET("/genres", genres.GetAllGenres)

	genresRoutes := r.Group("/genres")
	genresRoutes.Use(middleware.AdminAuth())
	{
		genresRoutes.POST("", genres.CreateGenre)
		genresRoutes.DELETE("/:id", genres.DeleteGenre)
	}
}
