package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the live aggregate: an ordered item sequence (newest first)
// plus running totals. Invariant: TotalVES/TotalUSD always equal the
// sums of the items' line totals.
type Cart struct {
	Items    []LineItem
	TotalVES decimal.Decimal
	TotalUSD decimal.Decimal
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add prepends the item and increments both totals.
func (c *Cart) Add(item LineItem) {
	c.Items = append([]LineItem{item}, c.Items...)
	c.TotalVES = c.TotalVES.Add(item.VES)
	c.TotalUSD = c.TotalUSD.Add(item.USD)
}

// Remove deletes the item with the given id, decrementing both totals.
// Returns false (and changes nothing) when the id is absent.
func (c *Cart) Remove(id uuid.UUID) bool {
	for idx, item := range c.Items {
		if item.ID == id {
			c.TotalVES = c.TotalVES.Sub(item.VES)
			c.TotalUSD = c.TotalUSD.Sub(item.USD)
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return true
		}
	}
	return false
}

// ApplyEdit edits the item with the given id, then fully recomputes
// both totals from the item sequence. Full recomputation (instead of an
// incremental adjustment) keeps repeated edits from accumulating drift.
// A validation failure leaves the cart untouched.
func (c *Cart) ApplyEdit(id uuid.UUID, edit ItemEdit, rate decimal.Decimal) error {
	for idx := range c.Items {
		if c.Items[idx].ID != id {
			continue
		}

		updated := c.Items[idx]
		if err := updated.Update(edit, rate); err != nil {
			return err
		}

		c.Items[idx] = updated
		c.Recompute()
		return nil
	}

	return ErrNotFound
}

// Reset clears the item sequence and zeroes both totals.
func (c *Cart) Reset() {
	c.Items = nil
	c.TotalVES = decimal.Decimal{}
	c.TotalUSD = decimal.Decimal{}
}

// Recompute rebuilds both totals from the items. Used after edits and
// after rehydration from storage.
func (c *Cart) Recompute() {
	totalVES, totalUSD := decimal.Decimal{}, decimal.Decimal{}
	for _, item := range c.Items {
		totalVES = totalVES.Add(item.VES)
		totalUSD = totalUSD.Add(item.USD)
	}
	c.TotalVES = totalVES
	c.TotalUSD = totalUSD
}

// Find returns the item with the given id.
func (c *Cart) Find(id uuid.UUID) (LineItem, error) {
	for _, item := range c.Items {
		if item.ID == id {
			return item, nil
		}
	}
	return LineItem{}, ErrNotFound
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Validate checks the totals invariant against the item sums.
func (c *Cart) Validate() error {
	sumVES, sumUSD := decimal.Decimal{}, decimal.Decimal{}
	for _, item := range c.Items {
		sumVES = sumVES.Add(item.VES)
		sumUSD = sumUSD.Add(item.USD)
	}

	if !c.TotalVES.Equal(sumVES) {
		return errors.New("cart VES total does not match sum of items")
	}
	if !c.TotalUSD.Equal(sumUSD) {
		return errors.New("cart USD total does not match sum of items")
	}

	return nil
}
