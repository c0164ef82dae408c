package ratings

import (
	"errors"
	"net/http"
	"time"

	"readian-backend/db"
	"readian-backend/entitlement"
	"readian-backend/middleware"
	"readian-backend/models"
	"readian-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Rate a book
// @Description Create or update the authenticated user's rating (1 to 5). Requires read access to the book.
// @Tags books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param rating body models.RatingCreate true "Score"
// @Security BearerAuth
// @Success 200 {object} models.Rating
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Access denied"
// @Failure 404 {object} map[string]string "error: Book not found"
// @Router /books/{id}/rating [put]
func RateBook(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	bookID := c.Param("id")

	var book models.Book
	if err := db.DB.First(&book, "id = ?", bookID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	var input models.RatingCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// Rating requires the same entitlement as reading: you cannot score a
	// book you cannot open.
	now := time.Now()
	viewer, viewerID := middleware.CurrentViewer(c, now)
	if viewerID != book.AuthorID {
		decision, err := entitlement.EvaluateReadAccess(viewer, book.ToContent(), now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error evaluating access"})
			return
		}
		if !decision.Allowed() {
			utils.SendAccessDenied(c, decision)
			return
		}
	}

	var rating models.Rating
	err := db.DB.Where("book_id = ? AND user_id = ?", bookID, userID).First(&rating).Error
	if err == nil {
		rating.Score = input.Score
		if err := db.DB.Save(&rating).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating rating: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, rating)
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking rating: " + err.Error()})
		return
	}

	rating = models.Rating{
		BookID: bookID,
		UserID: userID.(string),
		Score:  input.Score,
	}

	if err := db.DB.Create(&rating).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating rating: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, rating)
}

// @Summary Get a book's rating summary
// @Description Retrieve the average score and number of ratings
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} map[string]interface{} "average: float, count: int"
// @Failure 404 {object} map[string]string "error: Book not found"
// @Router /books/{id}/rating [get]
func GetBookRating(c *gin.Context) {
	bookID := c.Param("id")

	var book models.Book
	if err := db.DB.First(&book, "id = ?", bookID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	var result struct {
		Average float64
		Count   int64
	}
	if err := db.DB.Model(&models.Rating{}).Where("book_id = ?", bookID).
		Select("COALESCE(AVG(score), 0) AS average, COUNT(*) AS count").
		Scan(&result).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving ratings: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"average": result.Average, "count": result.Count})
}
