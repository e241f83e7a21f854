// Package cart holds the insertion-ordered product selection of one checkout
// session. A Cart is not safe for concurrent use; its owner serialises access.
package cart

import (
	"errors"
	"fmt"

	"github.com/fitgear/fitgear-api/models"
)

var (
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrLineNotFound    = errors.New("product is not in the cart")
)

// Line is a product and how many of it were selected.
type Line struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

func (l Line) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Restore rebuilds a cart from a snapshot, rejecting snapshots that break the
// one-line-per-product or positive-quantity rules.
func Restore(lines []Line) (*Cart, error) {
	c := New()
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if err := validateProduct(l.Product); err != nil {
			return nil, err
		}
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("product %s: %w", l.Product.ID, ErrInvalidQuantity)
		}
		if seen[l.Product.ID] {
			return nil, fmt.Errorf("duplicate line for product %s", l.Product.ID)
		}
		seen[l.Product.ID] = true
		c.lines = append(c.lines, l)
	}
	return c, nil
}

func validateProduct(p models.Product) error {
	if p.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidProduct)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: negative price for %s", ErrInvalidProduct, p.ID)
	}
	return nil
}

// Add increments the line for p, or appends a new line with quantity 1.
func (c *Cart) Add(p models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if i := c.index(p.ID); i >= 0 {
		c.lines[i].Quantity++
		return nil
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: 1})
	return nil
}

// Remove deletes the line for id. Removing an absent product is a no-op.
func (c *Cart) Remove(id string) {
	i := c.index(id)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// UpdateQuantity replaces the quantity of the line for id.
func (c *Cart) UpdateQuantity(id string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	i := c.index(id)
	if i < 0 {
		return ErrLineNotFound
	}
	c.lines[i].Quantity = quantity
	return nil
}

func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) index(id string) int {
	for i, l := range c.lines {
		if l.Product.ID == id {
			return i
		}
	}
	return -1
}
