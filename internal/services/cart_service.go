package services

import (
	"errors"
	"fmt"

	"oesters_backend/internal/models"
	"oesters_backend/internal/sessions"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrItemOutOfStock   = errors.New("this item is currently out of stock")
)

// CartService owns the session's cart: every mutation runs synchronously,
// merges through the composition engine and is written through to the
// session store before returning.
type CartService interface {
	GetCart(sessionID string) (*models.Cart, error)
	AddToCart(sessionID string, itemID string, opts models.SelectionOptions) (*models.Cart, error)
	Decrement(sessionID string, cartLineID string) (*models.Cart, error)
	DeleteLine(sessionID string, cartLineID string) (*models.Cart, error)
	ClearCart(sessionID string) error
}

type cartService struct {
	catalog CatalogService
	store   sessions.Store
}

// NewCartService creates a new instance of CartService.
func NewCartService(catalog CatalogService, store sessions.Store) CartService {
	return &cartService{catalog: catalog, store: store}
}

func (s *cartService) GetCart(sessionID string) (*models.Cart, error) {
	return s.store.LoadCart(sessionID)
}

func (s *cartService) AddToCart(sessionID string, itemID string, opts models.SelectionOptions) (*models.Cart, error) {
	item, err := s.catalog.GetMenuItem(itemID)
	if err != nil {
		return nil, err
	}
	if item.OutOfStock {
		return nil, ErrItemOutOfStock
	}

	cart, err := s.store.LoadCart(sessionID)
	if err != nil {
		return nil, err
	}

	for _, line := range ComposeLines(item, opts) {
		if existing := cart.Find(line.CartLineID); existing != nil {
			// First-add price is retained; only the quantity grows.
			existing.Quantity += line.Quantity
		} else {
			cart.Lines = append(cart.Lines, line)
		}
	}

	if err := s.store.SaveCart(sessionID, cart); err != nil {
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}
	return cart, nil
}

func (s *cartService) Decrement(sessionID string, cartLineID string) (*models.Cart, error) {
	cart, err := s.store.LoadCart(sessionID)
	if err != nil {
		return nil, err
	}

	line := cart.Find(cartLineID)
	if line == nil || line.Quantity <= 1 {
		// A quantity-1 line stays at 1; removal requires an explicit delete.
		return cart, nil
	}
	line.Quantity--

	if err := s.store.SaveCart(sessionID, cart); err != nil {
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}
	return cart, nil
}

func (s *cartService) DeleteLine(sessionID string, cartLineID string) (*models.Cart, error) {
	cart, err := s.store.LoadCart(sessionID)
	if err != nil {
		return nil, err
	}

	kept := cart.Lines[:0]
	removed := false
	for _, line := range cart.Lines {
		if line.CartLineID == cartLineID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	cart.Lines = kept

	if !removed {
		return cart, nil
	}
	if err := s.store.SaveCart(sessionID, cart); err != nil {
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}
	return cart, nil
}

func (s *cartService) ClearCart(sessionID string) error {
	return s.store.DeleteCart(sessionID)
}
