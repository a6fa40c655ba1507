package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rloerke/puffins/models"
	"github.com/rloerke/puffins/utils"
)

func newAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	r := gin.New()
	ctrl := NewAuthController(db)
	r.POST("/register", ctrl.Register)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegister_DuplicateUsernameConflict(t *testing.T) {
	r := newAuthTestRouter(t)
	body := `{"username":"bob","password":"secret123"}`

	w := postJSON(r, "/register", body)
	require.Equal(t, http.StatusOK, w.Code)

	// The duplicate is caught by the unique index, not a pre-check, so even
	// concurrent registrations of the same name resolve to a conflict.
	w = postJSON(r, "/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 40901, resp.Code)
	assert.Equal(t, "username already exists", resp.Message)
}
