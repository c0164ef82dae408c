package books

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"readian-backend/db"
	"readian-backend/entitlement"
	"readian-backend/middleware"
	"readian-backend/models"
	"readian-backend/utils"

	"github.com/gin-gonic/gin"
)

// @Summary Create a new book
// @Description Create a book with the provided information. Authors and admins only.
// @Tags books
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Book title"
// @Param synopsis formData string false "Synopsis"
// @Param isPremium formData boolean false "Premium book"
// @Param contentRating formData string false "GENERAL or ADULT"
// @Param ageRestriction formData integer false "Minimum age, 0 for none"
// @Param downloadAllowed formData boolean false "Allow downloads"
// @Param serializationStatus formData string false "ONGOING, FINISHED or HIATUS"
// @Param genres formData []string false "Genre IDs"
// @Param cover formData file false "Cover image"
// @Security BearerAuth
// @Success 201 {object} models.Book
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Author role required"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /books [post]
func CreateBook(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	userRole, _ := c.Get("user_role")
	if userRole != string(models.AuthorRole) && userRole != string(models.AdminRole) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Author role required"})
		return
	}

	title := c.Request.FormValue("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	book := models.Book{
		AuthorID:            userID.(string),
		Title:               title,
		Synopsis:            c.Request.FormValue("synopsis"),
		PublicationStatus:   models.PublicationDraft,
		SerializationStatus: models.SerializationOngoing,
		ContentRating:       models.RatingGeneral,
		DownloadAllowed:     true,
		Enable:              true,
	}

	book.IsPremium = c.Request.FormValue("isPremium") == "true"

	if rating := c.Request.FormValue("contentRating"); rating != "" {
		if rating != string(models.RatingGeneral) && rating != string(models.RatingAdult) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content rating"})
			return
		}
		book.ContentRating = models.ContentRating(rating)
	}

	if restriction := c.Request.FormValue("ageRestriction"); restriction != "" {
		age, err := strconv.Atoi(restriction)
		if err != nil || age < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid age restriction"})
			return
		}
		book.AgeRestriction = age
	}

	if download := c.Request.FormValue("downloadAllowed"); download != "" {
		book.DownloadAllowed = download == "true"
	}

	if status := c.Request.FormValue("serializationStatus"); status != "" {
		if !validSerializationStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid serialization status"})
			return
		}
		book.SerializationStatus = models.SerializationStatus(status)
	}

	var genreIDs []string
	if genresStr := c.Request.FormValue("genres"); genresStr != "" {
		if err := json.Unmarshal([]byte(genresStr), &genreIDs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid genres format: " + err.Error()})
			return
		}
	}

	file, err := c.FormFile("cover")
	if err == nil && file != nil {
		coverURL, err := utils.UploadImage(file, "book_covers", "cover")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading cover: " + err.Error()})
			return
		}
		book.CoverURL = coverURL
	}

	if len(genreIDs) > 0 {
		var genres []models.Genre
		if err := db.DB.Where("id IN ?", genreIDs).Find(&genres).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error finding genres: " + err.Error()})
			return
		}

		if len(genres) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No valid genres found"})
			return
		}

		book.Genres = genres
	}

	if err := db.DB.Create(&book).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating book: " + err.Error()})
		return
	}

	if err := db.DB.Preload("Genres").First(&book, "id = ?", book.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving created book: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Book created")
	c.JSON(http.StatusCreated, book)
}

// @Summary Get all published books
// @Description Retrieve published books with optional filtering. Drafts and disabled books never appear here.
// @Tags books
// @Produce json
// @Param isPremium query boolean false "Filter premium books"
// @Param genre query string false "Filter by genre ID"
// @Param serializationStatus query string false "Filter by serialization status"
// @Success 200 {array} models.Book
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /books [get]
func GetAllBooks(c *gin.Context) {
	var books []models.Book
	query := db.DB.Preload("Genres").
		Where("publication_status = ?", models.PublicationPublished).
		Where("enable = ?", true).
		Order("created_at DESC")

	if isPremium := c.Query("isPremium"); isPremium != "" {
		query = query.Where("is_premium = ?", isPremium == "true")
	}

	if status := c.Query("serializationStatus"); status != "" {
		query = query.Where("serialization_status = ?", status)
	}

	if genreID := c.Query("genre"); genreID != "" {
		query = query.Joins("JOIN book_genres ON books.id = book_genres.book_id").
			Where("book_genres.genre_id = ?", genreID)
	}

	if err := query.Find(&books).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving books: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, books)
}

// @Summary Get my books
// @Description Retrieve the authenticated author's books, drafts included
// @Tags books
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Book
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /books/mine [get]
func GetMyBooks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var books []models.Book
	if err := db.DB.Preload("Genres").Where("author_id = ?", userID).
		Order("created_at DESC").Find(&books).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving books: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, books)
}

// @Summary Get a book by ID
// @Description Retrieve a book's detail page. Access is gated: the response is either the book or a paywall payload telling the frontend what to offer.
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} models.Book
// @Failure 401 {object} map[string]string "error: Access denied, route: /signin"
// @Failure 403 {object} map[string]string "error: Access denied"
// @Failure 404 {object} map[string]string "error: Book not found"
// @Router /books/{id} [get]
func GetBookByID(c *gin.Context) {
	var book models.Book
	if err := db.DB.Preload("Genres").First(&book, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	now := time.Now()
	viewer, viewerID := middleware.CurrentViewer(c, now)

	// Drafts and moderated books are invisible to everyone but their owner
	// and admins.
	if book.PublicationStatus == models.PublicationDraft || !book.Enable {
		if viewerID != book.AuthorID && viewer.Role != entitlement.RoleAdmin {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
	}

	// Owners always see their own work.
	if viewerID != book.AuthorID {
		decision, err := entitlement.EvaluateViewAccess(viewer, book.ToContent(), now)
		if err != nil {
			utils.LogError(err, "Entitlement evaluation failed in GetBookByID")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error evaluating access"})
			return
		}
		if !decision.Allowed() {
			utils.SendAccessDenied(c, decision)
			return
		}
	}

	c.JSON(http.StatusOK, book)
}

// @Summary Update a book
// @Description Update a book's metadata and flags. Owner or admin only.
// @Tags books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param book body models.BookUpdate true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} models.Book
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not authorized to update this book"
// @Failure 404 {object} map[string]string "error: Book not found"
// @Router /books/{id} [put]
func UpdateBook(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var book models.Book
	if err := db.DB.Preload("Genres").First(&book, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	userRole, _ := c.Get("user_role")
	if book.AuthorID != userID.(string) && userRole != string(models.AdminRole) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this book"})
		return
	}

	var input models.BookUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.Title != "" {
		book.Title = input.Title
	}
	if input.Synopsis != "" {
		book.Synopsis = input.Synopsis
	}
	if input.PublicationStatus != "" {
		if input.PublicationStatus != string(models.PublicationDraft) &&
			input.PublicationStatus != string(models.PublicationPublished) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publication status"})
			return
		}
		book.PublicationStatus = models.PublicationStatus(input.PublicationStatus)
	}
	if input.SerializationStatus != "" {
		if !validSerializationStatus(input.SerializationStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid serialization status"})
			return
		}
		book.SerializationStatus = models.SerializationStatus(input.SerializationStatus)
	}
	if input.ContentRating != "" {
		if input.ContentRating != string(models.RatingGeneral) && input.ContentRating != string(models.RatingAdult) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content rating"})
			return
		}
		book.ContentRating = models.ContentRating(input.ContentRating)
	}
	if input.IsPremium != nil {
		book.IsPremium = *input.IsPremium
	}
	if input.AgeRestriction != nil {
		if *input.AgeRestriction < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid age restriction"})
			return
		}
		book.AgeRestriction = *input.AgeRestriction
	}
	if input.DownloadAllowed != nil {
		book.DownloadAllowed = *input.DownloadAllowed
	}

	if len(input.Genres) > 0 {
		var genres []models.Genre
		if err := db.DB.Where("id IN ?", input.Genres).Find(&genres).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error finding genres: " + err.Error()})
			return
		}

		if len(genres) > 0 {
			if err := db.DB.Model(&book).Association("Genres").Replace(&genres); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating genres: " + err.Error()})
				return
			}
		}
	}

	if err := db.DB.Save(&book).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating book: " + err.Error()})
		return
	}

	if err := db.DB.Preload("Genres").First(&book, "id = ?", book.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving updated book: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, book)
}

// @Summary Upload a book cover
// @Description Replace a book's cover image. Owner or admin only.
// @Tags books
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Book ID"
// @Param cover formData file true "Cover image"
// @Security BearerAuth
// @Success 200 {object} models.Book
// @Failure 400 {object} map[string]string "error: Cover is required"
// @Failure 403 {object} map[string]string "error: Not authorized to update this book"
// @Failure 404 {object} map[string]string "error: Book not found"
// @Router /books/{id}/cover [put]
func UploadBookCover(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var book models.Book
	if err := db.DB.First(&book, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	userRole, _ := c.Get("user_role")
	if book.AuthorID != userID.(string) && userRole != string(models.AdminRole) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this book"})
		return
	}

	file, err := c.FormFile("cover")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cover is required"})
		return
	}

	if book.CoverURL != "" {
		_ = utils.DeleteImage(book.CoverURL)
	}

	coverURL, err := utils.UploadImage(file, "book_covers", "cover")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading cover: " + err.Error()})
		return
	}

	book.CoverURL = coverURL
	if err := db.DB.Save(&book).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving book: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, book)
}

// @Summary Delete a book
// @Description Delete a book and its chapters. Owner or admin only.
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Book deleted successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not authorized to delete this book"
// @Failure 404 {object} map[string]string "error: Book not found"
// @Router /books/{id} [delete]
func DeleteBook(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var book models.Book
	if err := db.DB.First(&book, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	userRole, _ := c.Get("user_role")
	if book.AuthorID != userID.(string) && userRole != string(models.AdminRole) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this book"})
		return
	}

	if book.CoverURL != "" {
		_ = utils.DeleteImage(book.CoverURL)
	}

	if err := db.DB.Model(&book).Association("Genres").Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing book genres: " + err.Error()})
		return
	}

	if err := db.DB.Where("book_id = ?", book.ID).Delete(&models.Chapter{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting chapters: " + err.Error()})
		return
	}

	if err := db.DB.Delete(&book).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting book: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Book deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Book deleted successfully"})
}

func validSerializationStatus(status string) bool {
	switch models.SerializationStatus(status) {
	case models.SerializationOngoing, models.SerializationFinished, models.SerializationHiatus:
		return true
	}
	return false
}
