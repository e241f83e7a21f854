package checkout

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/fitgear/fitgear-api/models"
	"github.com/fitgear/fitgear-api/payment"
)

type checkoutTestContext struct {
	session  *Session
	recorder *recordingRecorder
	products map[string]models.Product
	err      error
}

func (c *checkoutTestContext) reset() {
	c.recorder = &recordingRecorder{}
	c.session = NewSession("feature", models.Principal{UserID: "shopper"}, nil, Config{
		Gateways: payment.NewRegistry(payment.NewMobileMoneySimulator(0), payment.NewCardSimulator(0)),
		Recorder: c.recorder,
	})
	c.products = map[string]models.Product{}
	c.err = nil
}

func (c *checkoutTestContext) aFreshCheckoutSession() error {
	c.reset()
	return nil
}

func (c *checkoutTestContext) theCatalogContains(a string, priceA int, b string, priceB int) error {
	c.products[a] = models.Product{ID: a, Name: "Product " + a, Price: int64(priceA), Category: "gear"}
	c.products[b] = models.Product{ID: b, Name: "Product " + b, Price: int64(priceB), Category: "gear"}
	return nil
}

func (c *checkoutTestContext) product(id string) (models.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return models.Product{}, fmt.Errorf("unknown product %q", id)
	}
	return p, nil
}

func (c *checkoutTestContext) aCartWith(qtyA int, a string, qtyB int, b string) error {
	for id, qty := range map[string]int{a: qtyA, b: qtyB} {
		p, err := c.product(id)
		if err != nil {
			return err
		}
		for i := 0; i < qty; i++ {
			if err := c.session.AddItem(p); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *checkoutTestContext) iAddToTheCart(id string) error {
	p, err := c.product(id)
	if err != nil {
		return err
	}
	c.err = c.session.AddItem(p)
	return nil
}

func (c *checkoutTestContext) iRemoveFromTheCart(id string) error {
	c.err = c.session.RemoveItem(id)
	return nil
}

func (c *checkoutTestContext) iSetTheQuantityOf(id string, qty int) error {
	c.err = c.session.UpdateQuantity(id, qty)
	return nil
}

func (c *checkoutTestContext) iOpenTheCart() error {
	c.err = c.session.OpenCart()
	return c.err
}

func (c *checkoutTestContext) iBeginCheckout() error {
	c.err = c.session.BeginCheckout()
	return nil
}

func (c *checkoutTestContext) iChooseToPayWith(method string) error {
	m, err := payment.ParseMethod(method)
	if err != nil {
		return err
	}
	c.err = c.session.SelectMethod(m)
	return c.err
}

func (c *checkoutTestContext) iSubmitThePhoneNumber(phone string) error {
	c.err = c.session.SubmitPayment(payment.Input{Phone: phone})
	return nil
}

func (c *checkoutTestContext) iSubmitTheCard(number, expiry, cvv string) error {
	c.err = c.session.SubmitPayment(payment.Input{CardHolder: "Feature Shopper", CardNumber: number, Expiry: expiry, CVV: cvv})
	return nil
}

func (c *checkoutTestContext) iCancelCheckout() error {
	c.err = c.session.Cancel()
	return c.err
}

func (c *checkoutTestContext) theCartHasLines(n int) error {
	if got := len(c.session.Snapshot().Lines); got != n {
		return fmt.Errorf("expected %d lines, got %d", n, got)
	}
	return nil
}

func (c *checkoutTestContext) theLineHasQuantity(id string, qty int) error {
	for _, l := range c.session.Snapshot().Lines {
		if l.Product.ID == id {
			if l.Quantity != qty {
				return fmt.Errorf("expected quantity %d for %s, got %d", qty, id, l.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("no line for %s", id)
}

func (c *checkoutTestContext) theCartTotalIs(total int) error {
	if got := c.session.Snapshot().Total; got != int64(total) {
		return fmt.Errorf("expected total %d, got %d", total, got)
	}
	return nil
}

func (c *checkoutTestContext) theFrozenTotalIs(total int) error {
	if got := c.session.Snapshot().FrozenTotal; got != int64(total) {
		return fmt.Errorf("expected frozen total %d, got %d", total, got)
	}
	return nil
}

func (c *checkoutTestContext) theOperationFailsWith(msg string) error {
	if c.err == nil {
		return fmt.Errorf("expected error containing %q, got none", msg)
	}
	if !strings.Contains(c.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got %q", msg, c.err.Error())
	}
	return nil
}

func (c *checkoutTestContext) theCheckoutPhaseIs(phase string) error {
	if got := c.session.Phase(); got != Phase(phase) {
		return fmt.Errorf("expected phase %s, got %s", phase, got)
	}
	return nil
}

func (c *checkoutTestContext) theCheckoutSettlesInPhase(phase string) error {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		v := c.session.Snapshot()
		if v.Phase == Phase(phase) && !v.Processing {
			return nil
		}
		time.Sleep(5 * time.Millisecond)
	}
	return fmt.Errorf("session did not settle in %s (now %s)", phase, c.session.Phase())
}

func (c *checkoutTestContext) theCartIsEmpty() error {
	return c.theCartHasLines(0)
}

func (c *checkoutTestContext) aNoticeIsShown(kind string) error {
	n := c.session.Snapshot().Notice
	if n == nil || string(n.Kind) != kind {
		return fmt.Errorf("expected %s notice, got %+v", kind, n)
	}
	return nil
}

func (c *checkoutTestContext) ordersAreRecorded(count, total int) error {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		orders := c.recorder.recorded()
		if len(orders) == count {
			if orders[0].Total != int64(total) {
				return fmt.Errorf("expected order total %d, got %d", total, orders[0].Total)
			}
			return nil
		}
		time.Sleep(5 * time.Millisecond)
	}
	return fmt.Errorf("expected %d recorded orders, got %d", count, len(c.recorder.recorded()))
}

func (c *checkoutTestContext) noOrderIsRecorded() error {
	time.Sleep(10 * time.Millisecond)
	if n := len(c.recorder.recorded()); n != 0 {
		return fmt.Errorf("expected no orders, got %d", n)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a fresh checkout session$`, tc.aFreshCheckoutSession)
	ctx.Step(`^the catalog contains "([^"]*)" priced (\d+) and "([^"]*)" priced (\d+)$`, tc.theCatalogContains)
	ctx.Step(`^a cart with (\d+) of "([^"]*)" and (\d+) of "([^"]*)"$`, tc.aCartWith)

	// When steps
	ctx.Step(`^I add "([^"]*)" to the cart$`, tc.iAddToTheCart)
	ctx.Step(`^I remove "([^"]*)" from the cart$`, tc.iRemoveFromTheCart)
	ctx.Step(`^I set the quantity of "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantityOf)
	ctx.Step(`^I open the cart$`, tc.iOpenTheCart)
	ctx.Step(`^I begin checkout$`, tc.iBeginCheckout)
	ctx.Step(`^I choose to pay with "([^"]*)"$`, tc.iChooseToPayWith)
	ctx.Step(`^I submit the phone number "([^"]*)"$`, tc.iSubmitThePhoneNumber)
	ctx.Step(`^I submit the card "([^"]*)" expiring "([^"]*)" with CVV "([^"]*)"$`, tc.iSubmitTheCard)
	ctx.Step(`^I cancel checkout$`, tc.iCancelCheckout)

	// Then steps
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the line for "([^"]*)" has quantity (\d+)$`, tc.theLineHasQuantity)
	ctx.Step(`^the cart total is (\d+)$`, tc.theCartTotalIs)
	ctx.Step(`^the frozen total is (\d+)$`, tc.theFrozenTotalIs)
	ctx.Step(`^the operation fails with "([^"]*)"$`, tc.theOperationFailsWith)
	ctx.Step(`^the checkout phase is "([^"]*)"$`, tc.theCheckoutPhaseIs)
	ctx.Step(`^the checkout settles in phase "([^"]*)"$`, tc.theCheckoutSettlesInPhase)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^a "([^"]*)" notice is shown$`, tc.aNoticeIsShown)
	ctx.Step(`^(\d+) orders? of (\d+) (?:is|are) recorded$`, tc.ordersAreRecorded)
	ctx.Step(`^no order is recorded$`, tc.noOrderIsRecorded)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
