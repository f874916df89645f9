package state

import (
	"fmt"
	"log"

	"lumina/internal/domain"
)

// AddToCart adds one unit. Exceeding the product's stock refuses the add
// outright: the cart stays untouched and exactly one error notification
// fires.
func (s *Store) AddToCart(product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := 0
	for _, it := range s.cart {
		if it.ID == product.ID {
			current = it.Quantity
			break
		}
	}
	if current+1 > product.Stock {
		s.pushNotification(domain.NotifyError, fmt.Sprintf("Only %d items available in stock!", product.Stock))
		return ErrInsufficientStock
	}

	found := false
	for i := range s.cart {
		if s.cart[i].ID == product.ID {
			s.cart[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.cart = append(s.cart, domain.CartItem{Product: product, Quantity: 1})
	}
	s.cartOpen = true
	s.persistCart()
	s.pushNotification(domain.NotifySuccess, fmt.Sprintf("Added %s to cart", product.Name))
	return nil
}

// UpdateQuantity applies a delta, clamped to [1, stock]. A delta that would
// exceed stock is refused with a visible reason rather than silently clamped.
func (s *Store) UpdateQuantity(productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ID != productID {
			continue
		}

		maxStock := 99
		for _, p := range s.products {
			if p.ID == productID {
				maxStock = p.Stock
				break
			}
		}

		if s.cart[i].Quantity+delta > maxStock {
			s.pushNotification(domain.NotifyError, fmt.Sprintf("Cannot add more. Only %d in stock.", maxStock))
			return ErrInsufficientStock
		}

		newQty := s.cart[i].Quantity + delta
		if newQty < 1 {
			newQty = 1
		}
		s.cart[i].Quantity = newQty
		s.persistCart()
		return nil
	}
	return nil
}

func (s *Store) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ID == productID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			break
		}
	}
	s.persistCart()
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	s.persistCart()
}

func (s *Store) Cart() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartItem(nil), s.cart...)
}

func (s *Store) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CartTotal(s.cart)
}

func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CartCount(s.cart)
}

func (s *Store) IsCartOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartOpen
}

func (s *Store) SetCartOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartOpen = open
}

// persistCart writes the cart through to the local cache after every
// mutation. Requires s.mu held. Best effort: a cache failure costs cart
// durability across restarts, nothing else.
func (s *Store) persistCart() {
	items := s.cart
	if items == nil {
		items = []domain.CartItem{}
	}
	if err := s.cache.Put(cacheKeyCart, items); err != nil {
		log.Printf("[state] cart cache write failed: %v", err)
	}
}
