package order_controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fitgear/fitgear-api/cache"
	"github.com/fitgear/fitgear-api/catalog"
	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/middleware"
	"github.com/fitgear/fitgear-api/models"
	"github.com/fitgear/fitgear-api/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var orderColumns = []string{"id", "user_id", "order_number", "email", "total_amount", "payment_method", "status", "source", "created_at", "updated_at"}

// useOrderService points the handlers at an order service backed by sqlmock.
func useOrderService(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	previousDB, previousService := config.DB, orderService
	config.DB = gdb
	Init(services.NewOrderService(gdb, services.NewCatalogService(gdb, nil), nil, nil, nil))
	t.Cleanup(func() {
		config.DB = previousDB
		orderService = previousService
	})
	return mock
}

// newRouter mounts the order routes behind the real auth middleware.
func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	orders := r.Group("/orders", middleware.AuthMiddleware())
	orders.POST("", CreateOrder)
	orders.GET("/:id", GetOrderDetails)
	orders.GET("/:id/receipt", DownloadReceipt)
	return r
}

func tokenFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	require.NoError(t, services.InitJWTService("order-controller-secret", time.Hour))
	token, err := services.GetJWTService().Generate(&models.User{ID: userID, Email: "wanjiru@example.com", Name: "Wanjiru"})
	require.NoError(t, err)
	return token
}

func serve(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func expectOrderLookup(mock sqlmock.Sqlmock, orderID, userID uuid.UUID, rows *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(orderID.String(), userID.String(), sqlmock.AnyArg()).
		WillReturnRows(rows)
}

func TestGetOrderDetails_RequiresAuth(t *testing.T) {
	w := serve(newRouter(), http.MethodGet, "/orders/"+uuid.NewString(), "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetOrderDetails_OtherUsersOrderIsNotFound(t *testing.T) {
	mock := useOrderService(t)
	caller := uuid.Must(uuid.NewV7())
	orderID := uuid.Must(uuid.NewV7())

	// The order exists but belongs to someone else, so the scoped lookup is empty.
	expectOrderLookup(mock, orderID, caller, sqlmock.NewRows(orderColumns))

	w := serve(newRouter(), http.MethodGet, "/orders/"+orderID.String(), tokenFor(t, caller), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderDetails_Owner(t *testing.T) {
	mock := useOrderService(t)
	owner := uuid.Must(uuid.NewV7())
	orderID := uuid.Must(uuid.NewV7())
	now := time.Now()

	expectOrderLookup(mock, orderID, owner, sqlmock.NewRows(orderColumns).
		AddRow(orderID, owner, "FG-20261016-ABCD", "wanjiru@example.com", 31998, "mpesa", "pending", "api", now, now))
	mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE "order_items"."order_id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "product_name", "price", "quantity", "subtotal"}).
			AddRow(uuid.New(), orderID, "1", "Premium Training Shoes", 15999, 2, 31998))

	w := serve(newRouter(), http.MethodGet, "/orders/"+orderID.String(), tokenFor(t, owner), "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"orderNumber":"FG-20261016-ABCD"`)
	assert.Contains(t, w.Body.String(), `"productName":"Premium Training Shoes"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDownloadReceipt_OtherUsersOrderIsNotFound(t *testing.T) {
	mock := useOrderService(t)
	caller := uuid.Must(uuid.NewV7())
	orderID := uuid.Must(uuid.NewV7())

	expectOrderLookup(mock, orderID, caller, sqlmock.NewRows(orderColumns))

	w := serve(newRouter(), http.MethodGet, "/orders/"+orderID.String()+"/receipt", tokenFor(t, caller), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEqual(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDownloadReceipt_Owner(t *testing.T) {
	mock := useOrderService(t)
	owner := uuid.Must(uuid.NewV7())
	orderID := uuid.Must(uuid.NewV7())
	now := time.Now()

	expectOrderLookup(mock, orderID, owner, sqlmock.NewRows(orderColumns).
		AddRow(orderID, owner, "FG-20261016-WXYZ", "wanjiru@example.com", 5999, "card", "paid", "api", now, now))
	mock.ExpectQuery(`SELECT \* FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "product_name", "price", "quantity", "subtotal"}).
			AddRow(uuid.New(), orderID, "3", "Premium Yoga Mat", 5999, 1, 5999))

	w := serve(newRouter(), http.MethodGet, "/orders/"+orderID.String()+"/receipt", tokenFor(t, owner), "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "receipt-FG-20261016-WXYZ.pdf")
	assert.NoError(t, mock.ExpectationsWereMet())
}

const orderBody = `{
	"items": [{"productId": "1", "quantity": 2}],
	"shippingAddress": {"street": "12 Moi Avenue", "city": "Nairobi", "state": "Nairobi County", "postalCode": "00100", "country": "Kenya"},
	"paymentMethod": "mpesa",
	"totalAmount": %TOTAL%
}`

func TestCreateOrder_RejectsTotalMismatch(t *testing.T) {
	mock := useOrderService(t)
	cache.SetProducts(catalog.DefaultProducts())
	t.Cleanup(cache.InvalidateCatalog)

	// Two pairs of training shoes cost 31998; the client claims 1000.
	body := strings.Replace(orderBody, "%TOTAL%", "1000", 1)
	w := serve(newRouter(), http.MethodPost, "/orders", tokenFor(t, uuid.Must(uuid.NewV7())), body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Error)
	assert.Contains(t, resp.Fields, "totalAmount")
	assert.Contains(t, resp.Fields["totalAmount"], "expected 31998, got 1000")

	// Nothing reaches the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	useOrderService(t)
	cache.SetProducts(catalog.DefaultProducts())
	t.Cleanup(cache.InvalidateCatalog)

	body := strings.Replace(strings.Replace(orderBody, `"productId": "1"`, `"productId": "999"`, 1), "%TOTAL%", "0", 1)
	w := serve(newRouter(), http.MethodPost, "/orders", tokenFor(t, uuid.Must(uuid.NewV7())), body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"items"`)
}

func TestCreateOrder_RequiresAuth(t *testing.T) {
	body := strings.Replace(orderBody, "%TOTAL%", "31998", 1)
	w := serve(newRouter(), http.MethodPost, "/orders", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
