package state

import (
	"time"

	"lumina/internal/domain"

	"github.com/google/uuid"
)

func (s *Store) AddProduct(p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.prodRepo.Put(p); err != nil {
		s.pushNotification(domain.NotifyError, "Failed to save product")
		return err
	}
	s.products = append([]domain.Product{p}, s.products...)
	s.pushNotification(domain.NotifySuccess, "Product added successfully")
	return nil
}

// UpdateProduct is a full replace by id.
func (s *Store) UpdateProduct(p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateProduct(p)
}

// updateProduct requires s.mu held. AddReview routes through here so a
// review lands exactly like an admin edit would.
func (s *Store) updateProduct(p domain.Product) error {
	if err := s.prodRepo.Put(p); err != nil {
		s.pushNotification(domain.NotifyError, "Failed to save product")
		return err
	}
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
			break
		}
	}
	s.pushNotification(domain.NotifySuccess, "Product updated successfully")
	return nil
}

func (s *Store) DeleteProduct(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.prodRepo.Delete(productID); err != nil && !isNotFound(err) {
		s.pushNotification(domain.NotifyError, "Failed to delete product")
		return err
	}
	for i := range s.products {
		if s.products[i].ID == productID {
			s.products = append(s.products[:i], s.products[i+1:]...)
			break
		}
	}
	s.pushNotification(domain.NotifyInfo, "Product deleted")
	return nil
}

// AddReview prepends a review, recomputes the count and the one-decimal mean
// rating, and persists through the product update path. Unknown product ids
// are a silent no-op.
func (s *Store) AddReview(productID string, review domain.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var product domain.Product
	found := false
	for _, p := range s.products {
		if p.ID == productID {
			product, found = p, true
			break
		}
	}
	if !found {
		return nil
	}

	review.ID = "rev-" + uuid.NewString()
	review.Date = time.Now().UTC().Format(time.RFC3339)

	list := append([]domain.Review{review}, product.ReviewsList...)
	product.ReviewsList = list
	product.Reviews = len(list)
	product.Rating = domain.AverageRating(list, product.Rating)

	if err := s.updateProduct(product); err != nil {
		return err
	}
	s.pushNotification(domain.NotifySuccess, "Review submitted!")
	return nil
}
