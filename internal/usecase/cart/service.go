package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mimercadove/cart-calculator/internal/domain"
)

// RateSource supplies the exchange rate active at entry time.
type RateSource interface {
	Current() (decimal.Decimal, error)
}

// AddUnitInput carries the raw form fields for a unit-priced add. At
// most one of VESInput/USDInput is expected; whichever is positive
// becomes the anchor and the other unit price is derived from the rate.
type AddUnitInput struct {
	Description   string
	VESInput      string
	USDInput      string
	QuantityInput string
}

// AddWeightInput carries the raw form fields for a weight-priced add.
// The amount inputs are prices per kilogram.
type AddWeightInput struct {
	Description string
	VESInput    string
	USDInput    string
	WeightInput string
}

// EditInput carries one atomic edit submission. QuantityInput is read
// for unit items, WeightInput for weight items; the item's pricing mode
// itself never changes.
type EditInput struct {
	ID            uuid.UUID
	Description   string
	QuantityInput string
	WeightInput   string
	PriceInput    string
	PriceCurrency domain.Currency
}

// Service owns the live cart aggregate. Every successful mutation is
// mirrored to storage; engine-level validation failures leave both the
// aggregate and storage untouched.
type Service struct {
	cart  *domain.Cart
	rates RateSource
	repo  domain.CartRepository
}

// NewService creates a cart service with an empty aggregate.
func NewService(rates RateSource, repo domain.CartRepository) *Service {
	return &Service{
		cart:  domain.NewCart(),
		rates: rates,
		repo:  repo,
	}
}

// Load rehydrates the aggregate from storage, recomputing totals from
// the loaded items. On a read failure the aggregate starts empty and
// the error is returned for display.
func (s *Service) Load() error {
	items, err := s.repo.Load()
	if err != nil {
		s.cart.Reset()
		return err
	}

	s.cart.Items = items
	s.cart.Recompute()
	return nil
}

// AddUnit validates the raw input, builds a unit-priced item under the
// current rate and adds it to the cart.
func (s *Service) AddUnit(in AddUnitInput) (domain.LineItem, error) {
	rate, err := s.rates.Current()
	if err != nil {
		return domain.LineItem{}, err
	}

	quantity, err := domain.ParseQuantity("quantity", in.QuantityInput)
	if err != nil {
		return domain.LineItem{}, err
	}

	anchor, currency, err := domain.ResolveAnchor(in.VESInput, in.USDInput)
	if err != nil {
		return domain.LineItem{}, err
	}

	item, err := domain.NewUnitItem(in.Description, anchor, currency, quantity, rate)
	if err != nil {
		return domain.LineItem{}, err
	}

	s.cart.Add(item)
	return item, s.persist()
}

// AddWeight validates the raw input, builds a weight-priced item under
// the current rate and adds it to the cart.
func (s *Service) AddWeight(in AddWeightInput) (domain.LineItem, error) {
	rate, err := s.rates.Current()
	if err != nil {
		return domain.LineItem{}, err
	}

	weight, err := domain.ParsePositiveDecimal("weight", in.WeightInput)
	if err != nil {
		return domain.LineItem{}, err
	}

	anchor, currency, err := domain.ResolveAnchor(in.VESInput, in.USDInput)
	if err != nil {
		return domain.LineItem{}, err
	}

	item, err := domain.NewWeightItem(in.Description, anchor, currency, weight, rate)
	if err != nil {
		return domain.LineItem{}, err
	}

	s.cart.Add(item)
	return item, s.persist()
}

// Edit applies an atomic edit to an existing item: the non-edited
// currency of the price pair is re-derived from the current rate, never
// left stale. A validation failure leaves the item as it was.
func (s *Service) Edit(in EditInput) error {
	rate, err := s.rates.Current()
	if err != nil {
		return err
	}

	item, err := s.cart.Find(in.ID)
	if err != nil {
		return err
	}

	price, err := domain.ParsePositiveDecimal("price", in.PriceInput)
	if err != nil {
		return err
	}

	edit := domain.ItemEdit{
		Description:   in.Description,
		Price:         price,
		PriceCurrency: in.PriceCurrency,
	}

	switch item.Mode {
	case domain.PricingModeUnit:
		edit.Quantity, err = domain.ParseQuantity("quantity", in.QuantityInput)
	case domain.PricingModeWeight:
		edit.Weight, err = domain.ParsePositiveDecimal("weight", in.WeightInput)
	}
	if err != nil {
		return err
	}

	if err := s.cart.ApplyEdit(in.ID, edit, rate); err != nil {
		return err
	}

	return s.persist()
}

// Remove deletes the item with the given id. An absent id is a no-op,
// not an error, and nothing is persisted in that case.
func (s *Service) Remove(id uuid.UUID) error {
	if !s.cart.Remove(id) {
		return nil
	}
	return s.persist()
}

// Reset clears the aggregate and erases the persisted cart entry.
func (s *Service) Reset() error {
	s.cart.Reset()
	if err := s.repo.Clear(); err != nil {
		return err
	}
	return nil
}

// Items returns a copy of the item sequence, newest first.
func (s *Service) Items() []domain.LineItem {
	items := make([]domain.LineItem, len(s.cart.Items))
	copy(items, s.cart.Items)
	return items
}

// Totals returns the running VES and USD totals.
func (s *Service) Totals() (decimal.Decimal, decimal.Decimal) {
	return s.cart.TotalVES, s.cart.TotalUSD
}

// Aggregate exposes the live cart for snapshotting.
func (s *Service) Aggregate() *domain.Cart {
	return s.cart
}

// persist mirrors the aggregate to storage. A failure here is reported
// to the caller but the in-memory state is kept: the mutation itself
// was valid.
func (s *Service) persist() error {
	return s.repo.Save(s.cart.Items)
}
