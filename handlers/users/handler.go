package users

import (
	"net/http"

	"readian-backend/db"
	"readian-backend/models"
	"readian-backend/utils"

	"github.com/gin-gonic/gin"
)

// @Summary Get my profile
// @Description Retrieve the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /users/me [get]
func GetMyProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Update my profile
// @Description Update username, bio and birth date. The birth date feeds age verification for restricted content.
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.UserUpdate true "Profile fields"
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /users/me [put]
func UpdateMyProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input models.UserUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.UserName != "" {
		user.UserName = input.UserName
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.BirthDate != nil {
		user.BirthDate = input.BirthDate
	}

	if err := db.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(user.ID, "Profile updated")
	c.JSON(http.StatusOK, user)
}

// @Summary Upload my profile picture
// @Description Replace the authenticated user's profile picture
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param picture formData file true "Profile picture"
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string "error: Picture is required"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /users/me/picture [put]
func UploadProfilePicture(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	file, err := c.FormFile("picture")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Picture is required"})
		return
	}

	if user.ProfilePicture != "" {
		_ = utils.DeleteImage(user.ProfilePicture)
	}

	imageURL, err := utils.UploadImage(file, "profile_pictures", "profile")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading picture: " + err.Error()})
		return
	}

	user.ProfilePicture = imageURL
	if err := db.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving profile: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Become an author
// @Description Upgrade the authenticated reader to the author role
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: You are now an author"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 409 {object} map[string]string "error: Already an author"
// @Router /users/me/become-author [post]
func BecomeAuthor(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.Role != models.ReaderRole {
		c.JSON(http.StatusConflict, gin.H{"error": "Already an author"})
		return
	}

	if err := db.DB.Model(&user).Update("role", models.AuthorRole).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating role: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(user.ID, "Reader upgraded to author")
	c.JSON(http.StatusOK, gin.H{"message": "You are now an author"})
}

// @Summary List all users
// @Description Retrieve every user account (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 403 {object} map[string]string "error: Admin role required"
// @Router /users [get]
func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := db.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving users: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

// @Summary Enable or disable a user
// @Description Toggle an account's enable flag (admin only). Disabled accounts cannot log in.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: User updated"
// @Failure 403 {object} map[string]string "error: Admin role required"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /users/{id}/toggle-enable [patch]
func ToggleUserEnable(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := db.DB.Model(&user).Update("enable", !user.Enable).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating user: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(user.ID, "User enable flag toggled")
	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}
