package profile_controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/middleware"
	"github.com/fitgear/fitgear-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var userColumns = []string{"id", "email", "name", "password_hash", "provider", "created_at", "updated_at"}

func useMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	previous := config.DB
	config.DB = gdb
	t.Cleanup(func() { config.DB = previous })
	return mock
}

func newRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.UserIDKey, userID)
		}
		c.Next()
	})
	r.GET("/users/profile", GetProfile)
	r.PUT("/users/profile", UpdateProfile)
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func expectUser(mock sqlmock.Sqlmock, id uuid.UUID, email string) {
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(id, email, "Wanjiru", "", "password", now, now))
}

func TestGetProfile_Unauthenticated(t *testing.T) {
	w := serve(newRouter(""), http.MethodGet, "/users/profile", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetProfile_UnknownUser(t *testing.T) {
	mock := useMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns))

	w := serve(newRouter(uuid.NewString()), http.MethodGet, "/users/profile", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfile_EmailOwnedByAnotherAccount(t *testing.T) {
	mock := useMockDB(t)
	userID := uuid.Must(uuid.NewV7())

	expectUser(mock, userID, "wanjiru@example.com")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE email = $1 AND id <> $2`)).
		WithArgs("taken@example.com", userID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	w := serve(newRouter(userID.String()), http.MethodPut, "/users/profile", `{"email":"Taken@Example.com"}`)

	require.Equal(t, http.StatusConflict, w.Code)
	var resp models.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Error)
	assert.Contains(t, resp.Fields, "email")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfile_FreeEmailIsSaved(t *testing.T) {
	mock := useMockDB(t)
	userID := uuid.Must(uuid.NewV7())

	expectUser(mock, userID, "wanjiru@example.com")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE email = $1 AND id <> $2`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "email"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := serve(newRouter(userID.String()), http.MethodPut, "/users/profile", `{"email":"new@example.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfile_UnchangedEmailSkipsUniquenessCheck(t *testing.T) {
	mock := useMockDB(t)
	userID := uuid.Must(uuid.NewV7())

	expectUser(mock, userID, "wanjiru@example.com")

	w := serve(newRouter(userID.String()), http.MethodPut, "/users/profile", `{"email":"wanjiru@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No fields to update")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfile_InvalidEmail(t *testing.T) {
	w := serve(newRouter(uuid.NewString()), http.MethodPut, "/users/profile", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
