package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fitgear/fitgear-api/cart"
	"github.com/fitgear/fitgear-api/models"
	"github.com/fitgear/fitgear-api/payment"
	"go.uber.org/zap"
)

const recordTimeout = 30 * time.Second

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is the message the host shows after a payment attempt settles.
type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Message   string     `json:"message"`
	Reference string     `json:"reference,omitempty"`
	Amount    int64      `json:"amount,omitempty"`
	At        time.Time  `json:"at"`
}

// CompletedOrder is handed to the OrderRecorder after a successful payment.
type CompletedOrder struct {
	SessionID string
	Principal models.Principal
	Method    payment.Method
	Lines     []cart.Line
	Total     int64
	Receipt   payment.Receipt
}

// OrderRecorder persists completed orders. Checkout does not wait for it and
// never fails because of it.
type OrderRecorder interface {
	RecordOrder(ctx context.Context, order CompletedOrder) error
}

// Config is shared by every session a Manager creates.
type Config struct {
	Gateways payment.Registry
	Recorder OrderRecorder
	Logger   *zap.Logger
	Now      func() time.Time

	// OnCartChange runs under the session lock after every cart mutation,
	// so snapshots are written in order.
	OnCartChange func(s *Session, lines []cart.Line)
	// OnActivity runs under the session lock when a session with a
	// non-empty cart is used without changing the cart.
	OnActivity func(s *Session)
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Gateways == nil {
		c.Gateways = payment.Registry{}
	}
	return c
}

// Session is one customer's cart plus the checkout state machine around it.
// All methods are safe for concurrent use.
type Session struct {
	mu  sync.Mutex
	cfg Config
	log *zap.Logger

	id        string
	principal models.Principal
	cart      *cart.Cart
	phase     Phase

	method      payment.Method
	frozenTotal int64
	processing  bool
	attempt     uint64
	cancel      context.CancelFunc
	fieldError  *payment.FieldError
	notice      *Notice
	lastActive  time.Time
}

// NewSession starts an Idle session around c. A nil cart starts empty.
func NewSession(id string, principal models.Principal, c *cart.Cart, cfg Config) *Session {
	cfg = cfg.withDefaults()
	if c == nil {
		c = cart.New()
	}
	return &Session{
		cfg:        cfg,
		log:        cfg.Logger.With(zap.String("session", id)),
		id:         id,
		principal:  principal,
		cart:       c,
		phase:      PhaseIdle,
		lastActive: cfg.Now(),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Principal() models.Principal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.principal
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Attach binds a guest session to the principal that just signed in.
func (s *Session) Attach(p models.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.principal.Authenticated() && p.Authenticated() {
		s.principal = p
	}
}

func (s *Session) idleSince() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive, s.processing
}

func (s *Session) touch() {
	s.lastActive = s.cfg.Now()
	if s.cfg.OnActivity != nil && !s.cart.IsEmpty() {
		s.cfg.OnActivity(s)
	}
}

func (s *Session) lines() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

func (s *Session) transition(to Phase) error {
	if !s.phase.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.phase, to)
	}
	s.log.Debug("checkout transition", zap.Stringer("from", s.phase), zap.Stringer("to", to))
	s.phase = to
	return nil
}

func (s *Session) mutateCart(fn func(c *cart.Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.phase.cartEditable() {
		return ErrCartLocked
	}
	if err := fn(s.cart); err != nil {
		return err
	}
	s.lastActive = s.cfg.Now()
	s.cartChanged()
	return nil
}

func (s *Session) cartChanged() {
	if s.cfg.OnCartChange != nil {
		s.cfg.OnCartChange(s, s.cart.Lines())
	}
}

// AddItem puts one more unit of p in the cart.
func (s *Session) AddItem(p models.Product) error {
	return s.mutateCart(func(c *cart.Cart) error {
		return c.Add(p)
	})
}

// RemoveItem drops the line for productID. Absent products are ignored.
func (s *Session) RemoveItem(productID string) error {
	return s.mutateCart(func(c *cart.Cart) error {
		c.Remove(productID)
		return nil
	})
}

func (s *Session) UpdateQuantity(productID string, quantity int) error {
	return s.mutateCart(func(c *cart.Cart) error {
		return c.UpdateQuantity(productID, quantity)
	})
}

// ResetCart empties the cart outside of a payment.
func (s *Session) ResetCart() error {
	return s.mutateCart(func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
}

// OpenCart shows the cart panel. Opening an open cart is a no-op.
func (s *Session) OpenCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseCartReview {
		return nil
	}
	if err := s.transition(PhaseCartReview); err != nil {
		return err
	}
	s.touch()
	return nil
}

// DismissCart hides the cart panel. Dismissing a closed cart is a no-op.
func (s *Session) DismissCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseIdle {
		return nil
	}
	if s.phase != PhaseCartReview {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.phase, PhaseIdle)
	}
	if err := s.transition(PhaseIdle); err != nil {
		return err
	}
	s.touch()
	return nil
}

// DismissNotice clears the last payment notice.
func (s *Session) DismissNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = nil
}

// BeginCheckout moves from the cart panel to method selection.
func (s *Session) BeginCheckout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseCartReview {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.phase, PhaseMethodSelection)
	}
	if s.cart.IsEmpty() {
		return ErrEmptyCart
	}
	if err := s.transition(PhaseMethodSelection); err != nil {
		return err
	}
	s.notice = nil
	s.touch()
	return nil
}

// SelectMethod fixes the payment method and freezes the cart total.
func (s *Session) SelectMethod(m payment.Method) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseMethodSelection {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.phase, PhasePaymentInProgress)
	}
	if _, err := s.cfg.Gateways.Lookup(m); err != nil {
		return err
	}
	if err := s.transition(PhasePaymentInProgress); err != nil {
		return err
	}
	s.method = m
	s.frozenTotal = s.cart.Total()
	s.fieldError = nil
	s.touch()
	s.log.Info("💳 payment method selected", zap.Stringer("method", m), zap.Int64("total", s.frozenTotal))
	return nil
}

// SubmitPayment validates in against the selected gateway. Invalid input
// returns a *payment.FieldError and leaves the session where it is. Valid
// input starts the charge in the background; the outcome arrives through
// the session's snapshot.
func (s *Session) SubmitPayment(in payment.Input) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhasePaymentInProgress {
		return fmt.Errorf("%w: payment submitted in %s", ErrInvalidTransition, s.phase)
	}
	if s.processing {
		return ErrPaymentPending
	}
	gateway, err := s.cfg.Gateways.Lookup(s.method)
	if err != nil {
		return err
	}

	if err := gateway.Validate(in); err != nil {
		var fe *payment.FieldError
		if errors.As(err, &fe) {
			s.fieldError = fe
		}
		s.touch()
		return err
	}

	s.fieldError = nil
	s.notice = nil
	s.processing = true
	s.attempt++
	token := s.attempt

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	req := payment.ChargeRequest{
		SessionID: s.id,
		Method:    s.method,
		Amount:    s.frozenTotal,
		Input:     in,
	}
	s.touch()

	go func() {
		receipt, err := gateway.Charge(ctx, req)
		if err == nil && receipt == nil {
			err = payment.ErrMissingReceipt
		}
		s.complete(token, receipt, err)
	}()
	return nil
}

// complete applies the outcome of charge attempt token. Outcomes of
// cancelled or superseded attempts are dropped.
func (s *Session) complete(token uint64, receipt *payment.Receipt, chargeErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.attempt || s.phase != PhasePaymentInProgress || !s.processing {
		s.log.Debug("ignoring late payment outcome", zap.Uint64("attempt", token))
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.processing = false
	s.touch()

	if chargeErr != nil {
		var fe *payment.FieldError
		if errors.As(chargeErr, &fe) {
			s.fieldError = fe
		}
		s.notice = &Notice{
			Kind:    NoticeError,
			Message: "Payment failed. Please check your details and try again.",
			At:      s.cfg.Now(),
		}
		s.log.Warn("⚠️ payment failed", zap.Stringer("method", s.method), zap.Error(chargeErr))
		return
	}

	if err := s.transition(PhaseSuccess); err != nil {
		s.log.Error("❌ cannot settle payment", zap.Error(err))
		return
	}

	order := CompletedOrder{
		SessionID: s.id,
		Principal: s.principal,
		Method:    s.method,
		Lines:     s.cart.Lines(),
		Total:     s.frozenTotal,
		Receipt:   *receipt,
	}
	s.cart.Clear()
	s.cartChanged()
	s.notice = &Notice{
		Kind:      NoticeSuccess,
		Message:   "Payment successful! Your order has been placed.",
		Reference: receipt.Reference,
		Amount:    order.Total,
		At:        s.cfg.Now(),
	}
	s.resetPayment()
	_ = s.transition(PhaseIdle)

	s.log.Info("✅ payment completed",
		zap.Stringer("method", order.Method),
		zap.Int64("total", order.Total),
		zap.String("reference", receipt.Reference),
	)
	s.record(order)
}

func (s *Session) record(order CompletedOrder) {
	if s.cfg.Recorder == nil {
		return
	}
	recorder := s.cfg.Recorder
	log := s.log
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := recorder.RecordOrder(ctx, order); err != nil {
			log.Warn("⚠️ failed to record order", zap.String("reference", order.Receipt.Reference), zap.Error(err))
		}
	}()
}

// Cancel abandons method selection or payment and returns to Idle with the
// cart untouched. A charge already running is cancelled and its outcome
// ignored.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.transition(PhaseCancelled); err != nil {
		return err
	}
	s.attempt++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.resetPayment()
	s.notice = nil
	s.touch()
	s.log.Info("checkout cancelled")
	return s.transition(PhaseIdle)
}

func (s *Session) resetPayment() {
	s.method = ""
	s.frozenTotal = 0
	s.processing = false
	s.fieldError = nil
}

// close stops any running charge. Used when the session is evicted.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempt++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// View is a point-in-time copy of the session for rendering.
type View struct {
	ID               string              `json:"id"`
	Phase            Phase               `json:"phase"`
	Authenticated    bool                `json:"authenticated"`
	Lines            []cart.Line         `json:"lines"`
	ItemCount        int                 `json:"itemCount"`
	Total            int64               `json:"total"`
	Method           payment.Method      `json:"method,omitempty"`
	FrozenTotal      int64               `json:"frozenTotal,omitempty"`
	Processing       bool                `json:"processing"`
	FieldError       *payment.FieldError `json:"fieldError,omitempty"`
	Notice           *Notice             `json:"notice,omitempty"`
	AvailableMethods []payment.Method    `json:"availableMethods"`
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:               s.id,
		Phase:            s.phase,
		Authenticated:    s.principal.Authenticated(),
		Lines:            s.cart.Lines(),
		ItemCount:        s.cart.Count(),
		Total:            s.cart.Total(),
		Method:           s.method,
		FrozenTotal:      s.frozenTotal,
		Processing:       s.processing,
		AvailableMethods: s.cfg.Gateways.Methods(),
	}
	if s.fieldError != nil {
		fe := *s.fieldError
		v.FieldError = &fe
	}
	if s.notice != nil {
		n := *s.notice
		v.Notice = &n
	}
	return v
}
