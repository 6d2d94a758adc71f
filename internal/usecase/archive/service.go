package archive

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mimercadove/cart-calculator/internal/domain"
)

// Service owns the saved-cart archive: named, typed, timestamped
// snapshots independent of the live cart. The whole archive is
// persisted on every mutation.
type Service struct {
	repo  domain.ArchiveRepository
	carts []domain.SavedCart
}

// NewService creates an archive service over the given repository.
func NewService(repo domain.ArchiveRepository) *Service {
	return &Service{repo: repo}
}

// Load rehydrates the archive. On a read failure the archive starts
// empty and the error is returned for display.
func (s *Service) Load() error {
	carts, err := s.repo.Load()
	if err != nil {
		s.carts = nil
		return err
	}

	s.carts = carts
	return nil
}

// Save snapshots the cart into the archive. The cart must be non-empty
// and the rate set; the snapshot is a deep copy, so later mutation of
// the live cart never alters it. A persistence failure rolls the
// in-memory append back.
func (s *Service) Save(name string, cartType domain.CartType, cart *domain.Cart, rate decimal.Decimal) (domain.SavedCart, error) {
	snapshot, err := domain.NewSavedCart(name, cartType, cart, rate)
	if err != nil {
		return domain.SavedCart{}, err
	}

	s.carts = append(s.carts, snapshot)
	if err := s.repo.Save(s.carts); err != nil {
		s.carts = s.carts[:len(s.carts)-1]
		return domain.SavedCart{}, err
	}

	return snapshot, nil
}

// List returns snapshots newest-created-first. An empty filter returns
// everything; otherwise only snapshots of the given type.
func (s *Service) List(filter domain.CartType) []domain.SavedCart {
	carts := make([]domain.SavedCart, 0, len(s.carts))
	for _, c := range s.carts {
		if filter == "" || c.Type == filter {
			carts = append(carts, c)
		}
	}

	sort.Slice(carts, func(i, j int) bool {
		return carts[i].CreatedAt.After(carts[j].CreatedAt)
	})

	return carts
}

// Get returns the snapshot with the given id, or ErrNotFound.
func (s *Service) Get(id uuid.UUID) (domain.SavedCart, error) {
	for _, c := range s.carts {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.SavedCart{}, domain.ErrNotFound
}

// Delete removes the snapshot with the given id; absent ids are a
// no-op. The archive is re-persisted only when something changed, and a
// persistence failure rolls the in-memory delete back.
func (s *Service) Delete(id uuid.UUID) error {
	for idx, c := range s.carts {
		if c.ID != id {
			continue
		}

		removed := c
		s.carts = append(s.carts[:idx], s.carts[idx+1:]...)
		if err := s.repo.Save(s.carts); err != nil {
			s.carts = append(s.carts, removed)
			return err
		}
		return nil
	}

	return nil
}
