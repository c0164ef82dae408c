package likes

import (
	"net/http"

	"readian-backend/db"
	"readian-backend/models"

	"github.com/gin-gonic/gin"
)

// @Summary Toggle like on a book
// @Description Add or remove a like on a book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Like added/removed successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Book not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /books/{id}/like [post]
func ToggleLike(c *gin.Context) {
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

	var like models.Like
	result := db.DB.Where("book_id = ? AND user_id = ?", bookID, userID).First(&like)

	if result.Error == nil {
		if err := db.DB.Delete(&like).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing like: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Like removed successfully"})
		return
	}

	like = models.Like{
		BookID: bookID,
		UserID: userID.(string),
	}

	if err := db.DB.Create(&like).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding like: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Like added successfully"})
}

// @Summary Count likes on a book
// @Description Retrieve the number of likes on a book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} map[string]int64 "likes: count"
// @Failure 404 {object} map[string]string "error: Book not found"
// @Router /books/{id}/likes [get]
func CountLikes(c *gin.Context) {
	bookID := c.Param("id")

	var book models.Book
	if err := db.DB.First(&book, "id = ?", bookID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	var count int64
	if err := db.DB.Model(&models.Like{}).Where("book_id = ?", bookID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting likes: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": count})
}
