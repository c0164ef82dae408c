package ping

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"readian-backend/testutils"
	"readian-backend/utils"

	"github.com/stretchr/testify/assert"
)

func TestHandlePing(t *testing.T) {
	testutils.InitTestMain()

	r := testutils.SetupTestRouter()
	handler := New()
	r.GET("/ping", handler.HandlePing)

	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody utils.Response
	err := json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.NoError(t, err)
	assert.True(t, respBody.Success)
	assert.Equal(t, "Ping successful", respBody.Message)

	data, ok := respBody.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "pong", data["message"])
}
