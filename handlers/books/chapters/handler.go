package chapters

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"readian-backend/db"
	"readian-backend/entitlement"
	"readian-backend/middleware"
	"readian-backend/models"
	"readian-backend/utils"

	"github.com/gin-gonic/gin"
)

func loadBook(c *gin.Context) (models.Book, bool) {
	var book models.Book
	if err := db.DB.First(&book, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return book, false
	}
	return book, true
}

func canManage(c *gin.Context, book models.Book) bool {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return false
	}

	userRole, _ := c.Get("user_role")
	if book.AuthorID != userID.(string) && userRole != string(models.AdminRole) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to manage this book's chapters"})
		return false
	}
	return true
}

// @Summary Add a chapter
// @Description Append a chapter to a book. Owner or admin only.
// @Tags chapters
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param chapter body models.ChapterCreate true "Chapter content"
// @Security BearerAuth
// @Success 201 {object} models.Chapter
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 403 {object} map[string]string "error: Not authorized"
// @Failure 404 {object} map[string]string "error: Book not found"
// @Router /books/{id}/chapters [post]
func CreateChapter(c *gin.Context) {
	book, ok := loadBook(c)
	if !ok {
		return
	}
	if !canManage(c, book) {
		return
	}

	var input models.ChapterCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var lastNumber int
	row := db.DB.Model(&models.Chapter{}).Where("book_id = ?", book.ID).
		Select("COALESCE(MAX(number), 0)").Row()
	if err := row.Scan(&lastNumber); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error numbering chapter: " + err.Error()})
		return
	}

	chapter := models.Chapter{
		BookID: book.ID,
		Number: lastNumber + 1,
		Title:  input.Title,
		Body:   input.Body,
	}

	if err := db.DB.Create(&chapter).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating chapter: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, chapter)
}

// @Summary List a book's chapters
// @Description Retrieve the chapter list (titles and numbers, no bodies). Gated by view access like the detail page.
// @Tags chapters
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {array} models.Chapter
// @Failure 401 {object} map[string]string "error: Access denied, route: /signin"
// @Failure 403 {object} map[string]string "error: Access denied"
// @Failure 404 {object} map[string]string "error: Book not found"
// @Router /books/{id}/chapters [get]
func GetChapters(c *gin.Context) {
	book, ok := loadBook(c)
	if !ok {
		return
	}

	now := time.Now()
	viewer, viewerID := middleware.CurrentViewer(c, now)

	if book.PublicationStatus == models.PublicationDraft || !book.Enable {
		if viewerID != book.AuthorID && viewer.Role != entitlement.RoleAdmin {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
	}

	if viewerID != book.AuthorID {
		decision, err := entitlement.EvaluateViewAccess(viewer, book.ToContent(), now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error evaluating access"})
			return
		}
		if !decision.Allowed() {
			utils.SendAccessDenied(c, decision)
			return
		}
	}

	var chapters []models.Chapter
	if err := db.DB.Select("id", "book_id", "number", "title", "created_at", "updated_at").
		Where("book_id = ?", book.ID).Order("number ASC").Find(&chapters).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving chapters: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, chapters)
}

// @Summary Read a chapter
// @Description Retrieve a chapter's full text. Gated by read access: ongoing works and premium books need the right plan.
// @Tags chapters
// @Produce json
// @Param id path string true "Book ID"
// @Param number path int true "Chapter number"
// @Success 200 {object} models.Chapter
// @Failure 401 {object} map[string]string "error: Access denied, route: /signin"
// @Failure 403 {object} map[string]string "error: Access denied"
// @Failure 404 {object} map[string]string "error: Chapter not found"
// @Router /books/{id}/chapters/{number} [get]
func ReadChapter(c *gin.Context) {
	book, ok := loadBook(c)
	if !ok {
		return
	}

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chapter number"})
		return
	}

	now := time.Now()
	viewer, viewerID := middleware.CurrentViewer(c, now)

	if book.PublicationStatus == models.PublicationDraft || !book.Enable {
		if viewerID != book.AuthorID && viewer.Role != entitlement.RoleAdmin {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
	}

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

	var chapter models.Chapter
	if err := db.DB.Where("book_id = ? AND number = ?", book.ID, number).
		First(&chapter).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chapter not found"})
		return
	}

	c.JSON(http.StatusOK, chapter)
}

// @Summary Download a book
// @Description Stream the book's full text as a plain-text file. Gated by download access: paid plans only, and the book must allow downloads.
// @Tags chapters
// @Produce plain
// @Param id path string true "Book ID"
// @Security BearerAuth
// @Success 200 {string} string "The book as text"
// @Failure 401 {object} map[string]string "error: Access denied, route: /signin"
// @Failure 403 {object} map[string]string "error: Access denied"
// @Failure 404 {object} map[string]string "error: Book not found"
// @Router /books/{id}/download [get]
func DownloadBook(c *gin.Context) {
	book, ok := loadBook(c)
	if !ok {
		return
	}

	now := time.Now()
	viewer, viewerID := middleware.CurrentViewer(c, now)

	if book.PublicationStatus == models.PublicationDraft || !book.Enable {
		if viewerID != book.AuthorID && viewer.Role != entitlement.RoleAdmin {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
	}

	if viewerID != book.AuthorID {
		decision, err := entitlement.EvaluateDownloadAccess(viewer, book.ToContent(), now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error evaluating access"})
			return
		}
		if !decision.Allowed() {
			utils.SendAccessDenied(c, decision)
			return
		}
	}

	var chapters []models.Chapter
	if err := db.DB.Where("book_id = ?", book.ID).Order("number ASC").
		Find(&chapters).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving chapters: " + err.Error()})
		return
	}

	var sb strings.Builder
	sb.WriteString(book.Title + "\n\n")
	for _, chapter := range chapters {
		sb.WriteString(fmt.Sprintf("Chapter %d: %s\n\n", chapter.Number, chapter.Title))
		sb.WriteString(chapter.Body + "\n\n")
	}

	filename := strings.ReplaceAll(book.Title, " ", "_") + ".txt"
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(sb.String()))

	utils.LogSuccessWithUser(viewerID, "Book downloaded")
}

// @Summary Update a chapter
// @Description Update a chapter's title or body. Owner or admin only.
// @Tags chapters
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param number path int true "Chapter number"
// @Param chapter body models.ChapterUpdate true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} models.Chapter
// @Failure 403 {object} map[string]string "error: Not authorized"
// @Failure 404 {object} map[string]string "error: Chapter not found"
// @Router /books/{id}/chapters/{number} [put]
func UpdateChapter(c *gin.Context) {
	book, ok := loadBook(c)
	if !ok {
		return
	}
	if !canManage(c, book) {
		return
	}

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chapter number"})
		return
	}

	var chapter models.Chapter
	if err := db.DB.Where("book_id = ? AND number = ?", book.ID, number).
		First(&chapter).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chapter not found"})
		return
	}

	var input models.ChapterUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.Title != "" {
		chapter.Title = input.Title
	}
	if input.Body != "" {
		chapter.Body = input.Body
	}

	if err := db.DB.Save(&chapter).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating chapter: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, chapter)
}

// @Summary Delete a chapter
// @Description Remove a chapter from a book. Owner or admin only.
// @Tags chapters
// @Produce json
// @Param id path string true "Book ID"
// @Param number path int true "Chapter number"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Chapter deleted successfully"
// @Failure 403 {object} map[string]string "error: Not authorized"
// @Failure 404 {object} map[string]string "error: Chapter not found"
// @Router /books/{id}/chapters/{number} [delete]
func DeleteChapter(c *gin.Context) {
	book, ok := loadBook(c)
	if !ok {
		return
	}
	if !canManage(c, book) {
		return
	}

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chapter number"})
		return
	}

	var chapter models.Chapter
	if err := db.DB.Where("book_id = ? AND number = ?", book.ID, number).
		First(&chapter).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chapter not found"})
		return
	}

	if err := db.DB.Delete(&chapter).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting chapter: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Chapter deleted successfully"})
}
