package users

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

func TestGetMyProfile_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	userID := "def12345-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WithArgs(userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "user_name", "role", "plan"}).
			AddRow(userID, "test@example.com", "tester", "READER", "FREE"))

	r := testutils.SetupTestRouter()
	r.GET("/users/me", func(c *gin.Context) {
		c.Set("user_id", userID)
		GetMyProfile(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/users/me", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "test@example.com", respBody["email"])
	assert.Equal(t, "tester", respBody["username"])
}

func TestGetMyProfile_Unauthorized(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.GET("/users/me", GetMyProfile)

	req, _ := http.NewRequest(http.MethodGet, "/users/me", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestUpdateMyProfile_SetsBirthDate(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	userID := "def12345-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WithArgs(userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "user_name"}).
			AddRow(userID, "test@example.com", "tester"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body, _ := json.Marshal(map[string]string{
		"username":  "newname",
		"birthDate": "1995-04-10T00:00:00Z",
	})

	r := testutils.SetupTestRouter()
	r.PUT("/users/me", func(c *gin.Context) {
		c.Set("user_id", userID)
		UpdateMyProfile(c)
	})

	req, _ := http.NewRequest(http.MethodPut, "/users/me", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "newname", respBody["username"])
	assert.Contains(t, respBody["birthDate"], "1995-04-10")
}

func TestGetMyProfile_NotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	userID := "def12345-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WithArgs(userID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.GET("/users/me", func(c *gin.Context) {
		c.Set("user_id", userID)
		GetMyProfile(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/users/me", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
