package moderation

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"readian-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func TestReportBook_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	bookID := "123e4567-e89b-12d3-a456-426614174000"
	userID := "def12345-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "books" WHERE id = \$1`).
		WithArgs(bookID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow(bookID, "Reported Book"))

	// No previous report from this user
	mock.ExpectQuery(`SELECT (.+) FROM "reports" WHERE book_id = \$1 AND reported_by = \$2`).
		WithArgs(bookID, userID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "reports" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("report123"))
	mock.ExpectCommit()

	body, _ := json.Marshal(map[string]string{
		"reason":  "PLAGIARISM",
		"comment": "Copied from another author",
	})

	r := testutils.SetupTestRouter()
	r.POST("/books/:id/report", func(c *gin.Context) {
		c.Set("user_id", userID)
		ReportBook(c)
	})

	req, _ := http.NewRequest(http.MethodPost, "/books/"+bookID+"/report", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "PLAGIARISM", respBody["reason"])
	assert.Equal(t, "PENDING", respBody["status"])
}

func TestReportBook_InvalidReason(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	bookID := "123e4567-e89b-12d3-a456-426614174000"
	userID := "def12345-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "books" WHERE id = \$1`).
		WithArgs(bookID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow(bookID, "Reported Book"))

	body, _ := json.Marshal(map[string]string{
		"reason": "I_JUST_DONT_LIKE_IT",
	})

	r := testutils.SetupTestRouter()
	r.POST("/books/:id/report", func(c *gin.Context) {
		c.Set("user_id", userID)
		ReportBook(c)
	})

	req, _ := http.NewRequest(http.MethodPost, "/books/"+bookID+"/report", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Contains(t, respBody["error"], "Invalid report reason")
}

func TestReportBook_AlreadyReported(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	bookID := "123e4567-e89b-12d3-a456-426614174000"
	userID := "def12345-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "books" WHERE id = \$1`).
		WithArgs(bookID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow(bookID, "Reported Book"))

	mock.ExpectQuery(`SELECT (.+) FROM "reports" WHERE book_id = \$1 AND reported_by = \$2`).
		WithArgs(bookID, userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "book_id", "reported_by"}).
			AddRow("report123", bookID, userID))

	body, _ := json.Marshal(map[string]string{
		"reason": "VIOLENCE",
	})

	r := testutils.SetupTestRouter()
	r.POST("/books/:id/report", func(c *gin.Context) {
		c.Set("user_id", userID)
		ReportBook(c)
	})

	req, _ := http.NewRequest(http.MethodPost, "/books/"+bookID+"/report", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Contains(t, respBody["error"], "already reported")
}

func TestUpdateReportStatus_Reviewed(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	reportID := "123e4567-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "reports" WHERE id = \$1`).
		WithArgs(reportID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(reportID, "PENDING"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "reports" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body, _ := json.Marshal(map[string]string{"status": "REVIEWED"})

	r := testutils.SetupTestRouter()
	r.PATCH("/moderation/reports/:id", UpdateReportStatus)

	req, _ := http.NewRequest(http.MethodPatch, "/moderation/reports/"+reportID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "REVIEWED", respBody["status"])
}

func TestUpdateReportStatus_InvalidStatus(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	reportID := "123e4567-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "reports" WHERE id = \$1`).
		WithArgs(reportID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(reportID, "PENDING"))

	body, _ := json.Marshal(map[string]string{"status": "PENDING"})

	r := testutils.SetupTestRouter()
	r.PATCH("/moderation/reports/:id", UpdateReportStatus)

	req, _ := http.NewRequest(http.MethodPatch, "/moderation/reports/"+reportID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Contains(t, respBody["error"], "Invalid status")
}

func TestToggleBookEnable_Disable(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	bookID := "123e4567-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "books" WHERE id = \$1`).
		WithArgs(bookID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "enable"}).
			AddRow(bookID, "Offending Book", true))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "books" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.PATCH("/moderation/books/:id/toggle-enable", ToggleBookEnable)

	req, _ := http.NewRequest(http.MethodPatch, "/moderation/books/"+bookID+"/toggle-enable", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Book updated", respBody["message"])
}
