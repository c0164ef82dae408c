package moderation

import (
	"net/http"
	"slices"

	"readian-backend/db"
	"readian-backend/models"
	"readian-backend/utils"

	"github.com/gin-gonic/gin"
)

// @Summary Report a book
// @Description Report a book for inappropriate content
// @Tags moderation
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param report body models.ReportCreate true "Report reason"
// @Security BearerAuth
// @Success 201 {object} models.Report
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Book not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /books/{id}/report [post]
func ReportBook(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not found in token in ReportBook")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	bookID := c.Param("id")

	var book models.Book
	if err := db.DB.First(&book, "id = ?", bookID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	var input models.ReportCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	validReasons := []models.ReportReason{
		models.HARASSMENT, models.SELF_HARM, models.VIOLENCE,
		models.NUDITY, models.PLAGIARISM, models.MISINFORMATION,
		models.ILLEGAL_CONTENT,
	}

	if !slices.Contains(validReasons, input.Reason) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report reason"})
		return
	}

	var existingReport models.Report
	if err := db.DB.Where("book_id = ? AND reported_by = ?", bookID, userID).
		First(&existingReport).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You have already reported this book"})
		return
	}

	report := models.Report{
		BookID:     bookID,
		ReportedBy: userID.(string),
		Reason:     input.Reason,
		Comment:    input.Comment,
		Status:     models.ReportPending,
	}

	if err := db.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating report: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Book reported")
	c.JSON(http.StatusCreated, report)
}

// @Summary List reports
// @Description Retrieve reports, optionally filtered by status (admin only)
// @Tags moderation
// @Produce json
// @Param status query string false "PENDING, REVIEWED or DISMISSED"
// @Security BearerAuth
// @Success 200 {array} models.Report
// @Failure 403 {object} map[string]string "error: Admin role required"
// @Router /moderation/reports [get]
func GetAllReports(c *gin.Context) {
	var reports []models.Report
	query := db.DB.Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving reports: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, reports)
}

// @Summary Update a report's status
// @Description Mark a report as reviewed or dismissed (admin only)
// @Tags moderation
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param status body models.ReportStatusUpdate true "New status"
// @Security BearerAuth
// @Success 200 {object} models.Report
// @Failure 400 {object} map[string]string "error: Invalid status"
// @Failure 403 {object} map[string]string "error: Admin role required"
// @Failure 404 {object} map[string]string "error: Report not found"
// @Router /moderation/reports/{id} [patch]
func UpdateReportStatus(c *gin.Context) {
	var report models.Report
	if err := db.DB.First(&report, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	var input models.ReportStatusUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.Status != models.ReportReviewed && input.Status != models.ReportDismissed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	if err := db.DB.Model(&report).Update("status", input.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating report: " + err.Error()})
		return
	}

	report.Status = input.Status
	c.JSON(http.StatusOK, report)
}

// @Summary Enable or disable a book
// @Description Toggle a book's enable flag (admin only). Disabled books disappear from public listings.
// @Tags moderation
// @Produce json
// @Param id path string true "Book ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Book updated"
// @Failure 403 {object} map[string]string "error: Admin role required"
// @Failure 404 {object} map[string]string "error: Book not found"
// @Router /moderation/books/{id}/toggle-enable [patch]
func ToggleBookEnable(c *gin.Context) {
	var book models.Book
	if err := db.DB.First(&book, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	if err := db.DB.Model(&book).Update("enable", !book.Enable).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating book: " + err.Error()})
		return
	}

	utils.LogSuccess("Book enable flag toggled by admin")
	c.JSON(http.StatusOK, gin.H{"message": "Book updated"})
}
