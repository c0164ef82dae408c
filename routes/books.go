package routes

import (
	"readian-backend/handlers/books"
	"readian-backend/handlers/books/chapters"
	"readian-backend/handlers/books/likes"
	"readian-backend/handlers/books/ratings"
	"readian-backend/handlers/moderation"
	"readian-backend/middleware"

	"github.com/gin-gonic/gin"
)

func BooksRoutes(r *gin.Engine) {
	// Public routes. Access to gated content is decided per request from the
	// optional token, so anonymous and signed-in readers share handlers.
	r.GET("/books", books.GetAllBooks)
	r.GET("/books/:id", middleware.OptionalJWTAuth(), books.GetBookByID)
	r.GET("/books/:id/chapters", middleware.OptionalJWTAuth(), chapters.GetChapters)
	r.GET("/books/:id/chapters/:number", middleware.OptionalJWTAuth(), chapters.ReadChapter)
	r.GET("/books/:id/download", middleware.OptionalJWTAuth(), chapters.DownloadBook)
	r.GET("/books/:id/likes", likes.CountLikes)
	r.GET("/books/:id/rating", ratings.GetBookRating)

	// Protected routes
	booksRoutes := r.Group("/books")
	booksRoutes.Use(middleware.JWTAuth())
	{
		booksRoutes.POST("", books.CreateBook)
		booksRoutes.GET("/mine", books.GetMyBooks)
		booksRoutes.PUT("/:id", books.UpdateBook)
		booksRoutes.PUT("/:id/cover", books.UploadBookCover)
		booksRoutes.DELETE("/:id", books.DeleteBook)

		booksRoutes.POST("/:id/chapters", chapters.CreateChapter)
		booksRoutes.PUT("/:id/chapters/:number", chapters.UpdateChapter)
		booksRoutes.DELETE("/:id/chapters/:number", chapters.DeleteChapter)

		// Interactions
		booksRoutes.POST("/:id/like", likes.ToggleLike)
		booksRoutes.PUT("/:id/rating", ratings.RateBook)
		booksRoutes.POST("/:id/report", moderation.ReportBook)
	}
}
