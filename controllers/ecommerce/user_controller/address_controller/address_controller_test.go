package address_controller

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var addressColumns = []string{"id", "user_id", "street", "city", "state", "postal_code", "country", "is_default", "created_at", "updated_at"}

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
	r.POST("/users/addresses", AddAddress)
	r.DELETE("/users/addresses/:id", DeleteAddress)
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func addressRow(rows *sqlmock.Rows, id, userID uuid.UUID, isDefault bool, created time.Time) *sqlmock.Rows {
	return rows.AddRow(id, userID, "12 Moi Avenue", "Nairobi", "Nairobi County", "00100", "Kenya", isDefault, created, created)
}

func TestDeleteAddress_Unauthenticated(t *testing.T) {
	w := serve(newRouter(""), http.MethodDelete, "/users/addresses/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteAddress_InvalidID(t *testing.T) {
	w := serve(newRouter(uuid.NewString()), http.MethodDelete, "/users/addresses/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAddress_OtherUsersAddressIsNotFound(t *testing.T) {
	mock := useMockDB(t)
	userID := uuid.Must(uuid.NewV7())
	addressID := uuid.Must(uuid.NewV7())

	mock.ExpectQuery(`SELECT \* FROM "addresses" WHERE id = \$1 AND user_id = \$2`).
		WillReturnRows(sqlmock.NewRows(addressColumns))

	w := serve(newRouter(userID.String()), http.MethodDelete, "/users/addresses/"+addressID.String(), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAddress_DefaultPromotesOldestRemaining(t *testing.T) {
	mock := useMockDB(t)
	userID := uuid.Must(uuid.NewV7())
	deleted := uuid.Must(uuid.NewV7())
	oldest := uuid.Must(uuid.NewV7())
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "addresses" WHERE id = \$1 AND user_id = \$2`).
		WillReturnRows(addressRow(sqlmock.NewRows(addressColumns), deleted, userID, true, now))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "addresses" WHERE "addresses"."id" = $1`)).
		WithArgs(deleted.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "addresses" WHERE user_id = \$1 ORDER BY created_at ASC`).
		WillReturnRows(addressRow(sqlmock.NewRows(addressColumns), oldest, userID, false, now.Add(-72*time.Hour)))
	mock.ExpectExec(`UPDATE "addresses" SET "is_default"=\$1,"updated_at"=\$2 WHERE "addresses"."id" = \$3`).
		WithArgs(true, sqlmock.AnyArg(), oldest.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := serve(newRouter(userID.String()), http.MethodDelete, "/users/addresses/"+deleted.String(), "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAddress_LastDefaultLeavesNoDefault(t *testing.T) {
	mock := useMockDB(t)
	userID := uuid.Must(uuid.NewV7())
	deleted := uuid.Must(uuid.NewV7())

	mock.ExpectQuery(`SELECT \* FROM "addresses" WHERE id = \$1 AND user_id = \$2`).
		WillReturnRows(addressRow(sqlmock.NewRows(addressColumns), deleted, userID, true, time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "addresses"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "addresses" WHERE user_id = \$1 ORDER BY created_at ASC`).
		WillReturnRows(sqlmock.NewRows(addressColumns))
	mock.ExpectCommit()

	w := serve(newRouter(userID.String()), http.MethodDelete, "/users/addresses/"+deleted.String(), "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAddress_NonDefaultTouchesNothingElse(t *testing.T) {
	mock := useMockDB(t)
	userID := uuid.Must(uuid.NewV7())
	deleted := uuid.Must(uuid.NewV7())

	mock.ExpectQuery(`SELECT \* FROM "addresses" WHERE id = \$1 AND user_id = \$2`).
		WillReturnRows(addressRow(sqlmock.NewRows(addressColumns), deleted, userID, false, time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "addresses"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := serve(newRouter(userID.String()), http.MethodDelete, "/users/addresses/"+deleted.String(), "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

const addressBody = `{"street":"12 Moi Avenue","city":"Nairobi","state":"Nairobi County","postalCode":"00100","country":"Kenya"}`

func TestAddAddress_FirstAddressBecomesDefault(t *testing.T) {
	mock := useMockDB(t)
	userID := uuid.Must(uuid.NewV7())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "addresses" WHERE user_id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "addresses"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := serve(newRouter(userID.String()), http.MethodPost, "/users/addresses", addressBody)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"isDefault":true`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddAddress_NewDefaultClearsPrevious(t *testing.T) {
	mock := useMockDB(t)
	userID := uuid.Must(uuid.NewV7())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "addresses" WHERE user_id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(`UPDATE "addresses" SET "is_default"=\$1,"updated_at"=\$2 WHERE user_id = \$3 AND is_default = \$4`).
		WithArgs(false, sqlmock.AnyArg(), userID.String(), true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "addresses"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := strings.TrimSuffix(addressBody, "}") + `,"isDefault":true}`
	w := serve(newRouter(userID.String()), http.MethodPost, "/users/addresses", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddAddress_MissingFields(t *testing.T) {
	w := serve(newRouter(uuid.NewString()), http.MethodPost, "/users/addresses", `{"street":"12 Moi Avenue"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
