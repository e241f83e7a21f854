package checkout_controller

import (
	"errors"
	"net/http"

	"github.com/fitgear/fitgear-api/cart"
	"github.com/fitgear/fitgear-api/checkout"
	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/middleware"
	"github.com/fitgear/fitgear-api/models"
	"github.com/fitgear/fitgear-api/payment"
	"github.com/fitgear/fitgear-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	sessions       *checkout.Manager
	catalogService *services.CatalogService
)

// Init wires the checkout handlers to the session manager and the catalog.
func Init(manager *checkout.Manager, catalog *services.CatalogService) {
	sessions = manager
	catalogService = catalog
}

// loadSession resolves :id for the caller and attaches a guest session to a
// caller who has since signed in. It writes the error response itself when
// it returns false.
func loadSession(c *gin.Context) (*checkout.Session, bool) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	principal := middleware.PrincipalFromContext(c)
	s, err := sessions.Get(ctx, c.Param("id"), principal)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	s.Attach(principal)
	return s, true
}

// respondError maps checkout, cart and payment errors to HTTP responses.
func respondError(c *gin.Context, err error) {
	var fieldErr *payment.FieldError
	switch {
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusUnprocessableEntity, models.FieldErrorResponse(c, "Invalid payment details", fieldErr.Field, fieldErr.Message))
	case errors.Is(err, checkout.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Checkout session not found"))
	case errors.Is(err, services.ErrProductNotFound), errors.Is(err, cart.ErrLineNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, err.Error()))
	case errors.Is(err, checkout.ErrCartLocked),
		errors.Is(err, checkout.ErrInvalidTransition),
		errors.Is(err, checkout.ErrPaymentPending):
		c.JSON(http.StatusConflict, models.ErrorResponse(c, err.Error()))
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidProduct),
		errors.Is(err, payment.ErrUnsupportedMethod):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
	default:
		config.Logger.Error("❌ checkout request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Checkout failed"))
	}
}

// apply loads the session, runs op and answers with the new snapshot.
func apply(c *gin.Context, message string, op func(s *checkout.Session) error) {
	s, ok := loadSession(c)
	if !ok {
		return
	}
	if err := op(s); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, message, s.Snapshot()))
}
