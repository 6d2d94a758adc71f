package rate

import (
	"github.com/shopspring/decimal"

	"github.com/mimercadove/cart-calculator/internal/domain"
)

// Service owns the process-wide exchange rate: user-supplied, strictly
// positive, persisted independently of the cart.
type Service struct {
	repo    domain.RateRepository
	current decimal.Decimal
	set     bool
}

// NewService creates a rate service over the given repository.
func NewService(repo domain.RateRepository) *Service {
	return &Service{repo: repo}
}

// Load rehydrates the persisted rate. An absent or non-positive stored
// value leaves the rate unset; a read failure is returned and the rate
// stays unset.
func (s *Service) Load() error {
	rate, ok, err := s.repo.Load()
	if err != nil {
		return err
	}

	if ok && rate.GreaterThan(decimal.Zero) {
		s.current = rate
		s.set = true
	}

	return nil
}

// Set parses and validates a new rate, persists it, then makes it the
// current rate. On any failure the previous rate stays in effect.
func (s *Service) Set(raw string) (decimal.Decimal, error) {
	rate, err := domain.ParsePositiveDecimal("exchange rate", raw)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if err := s.repo.Save(rate); err != nil {
		return decimal.Decimal{}, err
	}

	s.current = rate
	s.set = true
	return rate, nil
}

// Current returns the active rate, or ErrRateNotSet before one has been
// configured. Conversions fail closed on that error.
func (s *Service) Current() (decimal.Decimal, error) {
	if !s.set {
		return decimal.Decimal{}, domain.ErrRateNotSet
	}
	return s.current, nil
}

// IsSet reports whether a rate is configured.
func (s *Service) IsSet() bool {
	return s.set
}
