package routes

import (
	"readian-backend/handlers/users"
	"readian-backend/middleware"

	"github.com/gin-gonic/gin"
)

func UsersRoutes(r *gin.Engine) {
	usersRoutes := r.Group("/users")
	usersRoutes.Use(middleware.JWTAuth())
	{
		usersRoutes.GET("/me", users.GetMyProfile)
		usersRoutes.PUT("/me", users.UpdateMyProfile)
		usersRoutes.PUT("/me/picture", users.UploadProfilePicture)
		usersRoutes.POST("/me/become-author", users.BecomeAuthor)

		usersRoutes.GET("", middleware.AdminAuth(), users.GetAllUsers)
		usersRoutes.PATCH("/:id/toggle-enable", middleware.AdminAuth(), users.ToggleUserEnable)
	}
}
