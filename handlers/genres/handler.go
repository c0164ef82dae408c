package genres

import (
	"net/http"

	"readian-backend/db"
	"readian-backend/models"

	"github.com/gin-gonic/gin"
)

// @Summary Create a genre
// @Description Create a new genre (admin only)
// @Tags genres
// @Accept json
// @Produce json
// @Param genre body models.GenreCreate true "Genre name"
// @Security BearerAuth
// @Success 201 {object} models.Genre
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 403 {object} map[string]string "error: Admin role required"
// @Failure 409 {object} map[string]string "error: Genre already exists"
// @Router /genres [post]
func CreateGenre(c *gin.Context) {
	var input models.GenreCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var existing models.Genre
	if err := db.DB.Where("name = ?", input.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Genre already exists"})
		return
	}

	genre := models.Genre{Name: input.Name}
	if err := db.DB.Create(&genre).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating genre: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, genre)
}

// @Summary Get all genres
// @Description Retrieve every genre
// @Tags genres
// @Produce json
// @Success 200 {array} models.Genre
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /genres [get]
func GetAllGenres(c *gin.Context) {
	var genres []models.Genre
	if err := db.DB.Order("name ASC").Find(&genres).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving genres: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, genres)
}

// @Summary Delete a genre
// @Description Delete a genre (admin only)
// @Tags genres
// @Produce json
// @Param id path string true "Genre ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Genre deleted successfully"
// @Failure 403 {object} map[string]string "error: Admin role required"
// @Failure 404 {object} map[string]string "error: Genre not found"
// @Router /genres/{id} [delete]
func DeleteGenre(c *gin.Context) {
	var genre models.Genre
	if err := db.DB.First(&genre, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Genre not found"})
		return
	}

	if err := db.DB.Model(&genre).Association("Books").Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error detaching books: " + err.Error()})
		return
	}

	if err := db.DB.Delete(&genre).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting genre: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Genre deleted successfully"})
}
