package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitgear/fitgear-api/checkout"
	"github.com/fitgear/fitgear-api/models"
	"github.com/fitgear/fitgear-api/payment"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrTotalMismatch = errors.New("total amount does not match the cart")
	ErrUnknownItem   = errors.New("order contains an unknown product")
)

const notifyTimeout = 30 * time.Second

// OrderEventPublisher announces committed orders to other services.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error
}

// OrderService persists orders placed through the API or the checkout flow.
type OrderService struct {
	db        *gorm.DB
	catalog   *CatalogService
	mailer    Mailer
	publisher OrderEventPublisher
	log       *zap.Logger
	now       func() time.Time
}

func NewOrderService(db *gorm.DB, catalog *CatalogService, mailer Mailer, publisher OrderEventPublisher, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mailer == nil {
		mailer = LogMailer{Logger: logger}
	}
	return &OrderService{
		db:        db,
		catalog:   catalog,
		mailer:    mailer,
		publisher: publisher,
		log:       logger.Named("orders"),
		now:       time.Now,
	}
}

// NewOrderNumber formats a human-facing order number such as
// FG-20260501-3F9A.
func NewOrderNumber(at time.Time) string {
	id := strings.ReplaceAll(uuid.Must(uuid.NewV7()).String(), "-", "")
	return fmt.Sprintf("FG-%s-%s", at.UTC().Format("20060102"), strings.ToUpper(id[len(id)-4:]))
}

// PriceItems turns requested items into order lines priced from the
// catalog. Repeated products are merged.
func PriceItems(products []models.Product, inputs []models.OrderItemInput) ([]models.OrderItem, int64, error) {
	index := make(map[string]models.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}

	var (
		items []models.OrderItem
		pos   = map[string]int{}
		total int64
	)
	for _, in := range inputs {
		if in.Quantity < 1 {
			return nil, 0, fmt.Errorf("quantity for %s must be at least 1", in.ProductID)
		}
		p, ok := index[in.ProductID]
		if !ok {
			return nil, 0, fmt.Errorf("%w: %s", ErrUnknownItem, in.ProductID)
		}
		if i, seen := pos[p.ID]; seen {
			items[i].Quantity += in.Quantity
			items[i].Subtotal = items[i].Price * int64(items[i].Quantity)
		} else {
			pos[p.ID] = len(items)
			items = append(items, models.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Price:       p.Price,
				Quantity:    in.Quantity,
				Subtotal:    p.Price * int64(in.Quantity),
			})
		}
		total += p.Price * int64(in.Quantity)
	}
	return items, total, nil
}

// CreateOrder stores an order submitted through the REST API. Prices come
// from the catalog; a client-supplied total must agree with them.
func (s *OrderService) CreateOrder(ctx context.Context, owner models.Principal, req models.CreateOrderRequest) (*models.Order, error) {
	if !owner.Authenticated() {
		return nil, ErrUnauthenticated
	}
	userID, err := uuid.Parse(owner.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	method, err := payment.ParseMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	items, total, err := PriceItems(products, req.Items)
	if err != nil {
		return nil, err
	}
	if req.TotalAmount != nil && *req.TotalAmount != total {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrTotalMismatch, total, *req.TotalAmount)
	}

	shipping, err := json.Marshal(req.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("encode shipping address: %w", err)
	}

	order := &models.Order{
		UserID:          &userID,
		OrderNumber:     NewOrderNumber(s.now()),
		Email:           owner.Email,
		TotalAmount:     total,
		PaymentMethod:   method.String(),
		ShippingAddress: datatypes.JSON(shipping),
		Status:          models.OrderStatusPending,
		Source:          models.OrderSourceAPI,
		Items:           items,
	}
	if err := s.save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// RecordOrder stores an order completed by the checkout flow.
func (s *OrderService) RecordOrder(ctx context.Context, done checkout.CompletedOrder) error {
	order := &models.Order{
		OrderNumber:      NewOrderNumber(done.Receipt.CompletedAt),
		Email:            done.Principal.Email,
		TotalAmount:      done.Total,
		PaymentMethod:    done.Method.String(),
		PaymentReference: done.Receipt.Reference,
		Status:           models.OrderStatusPaid,
		Source:           models.OrderSourceCheckout,
	}
	if done.Principal.Authenticated() {
		if id, err := uuid.Parse(done.Principal.UserID); err == nil {
			order.UserID = &id
		}
	}
	for _, line := range done.Lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Price:       line.Product.Price,
			Quantity:    line.Quantity,
			Subtotal:    line.Subtotal(),
		})
	}
	return s.save(ctx, order)
}

func (s *OrderService) save(ctx context.Context, order *models.Order) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		s.log.Error("❌ failed to save order", zap.String("order", order.OrderNumber), zap.Error(err))
		return fmt.Errorf("save order: %w", err)
	}

	s.log.Info("✅ order saved",
		zap.String("order", order.OrderNumber),
		zap.String("source", order.Source),
		zap.Int64("total", order.TotalAmount),
	)

	placed := *order
	go s.notify(&placed)
	return nil
}

// notify runs after commit. Failures are logged and never surface to the
// customer.
func (s *OrderService) notify(order *models.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	receipt, err := GenerateOrderReceiptPDF(order)
	if err != nil {
		s.log.Warn("⚠️ receipt not rendered", zap.String("order", order.OrderNumber), zap.Error(err))
	}
	if err := s.mailer.SendOrderConfirmation(ctx, order, receipt); err != nil {
		s.log.Warn("⚠️ confirmation email failed", zap.String("order", order.OrderNumber), zap.Error(err))
	}

	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderPlaced(ctx, OrderPlacedEvent(order)); err != nil {
		s.log.Warn("⚠️ order event not published", zap.String("order", order.OrderNumber), zap.Error(err))
	}
}

// OrderPlacedEvent summarises order for subscribers.
func OrderPlacedEvent(order *models.Order) models.OrderPlacedEvent {
	e := models.OrderPlacedEvent{
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		Email:       order.Email,
		TotalAmount: order.TotalAmount,
		Method:      order.PaymentMethod,
		Source:      order.Source,
		PlacedAt:    order.CreatedAt,
	}
	if order.UserID != nil {
		e.UserID = order.UserID.String()
	}
	for _, item := range order.Items {
		e.ItemCount += item.Quantity
	}
	return e
}

// ListOrders returns one page of userID's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	orders := []models.Order{}
	if total == 0 {
		return orders, 0, nil
	}
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

// GetOrder loads one of userID's orders. Orders of other users are reported
// as not found.
func (s *OrderService) GetOrder(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	return &order, nil
}
