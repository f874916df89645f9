package state

import (
	"lumina/internal/domain"

	"github.com/google/uuid"
)

func (s *Store) AddUser(u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.userRepo.Put(u); err != nil {
		if isConflict(err) {
			s.pushNotification(domain.NotifyError, "A user with that email already exists")
		}
		return err
	}
	s.users = append(s.users, u)
	return nil
}

// UpdateUser is a full replace by id. A self-edit refreshes the
// authenticated-user reference immediately.
func (s *Store) UpdateUser(u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateUser(u)
}

// updateUser requires s.mu held; wishlist and address mutations route
// through here.
func (s *Store) updateUser(u domain.User) error {
	if err := s.userRepo.Put(u); err != nil {
		if isConflict(err) {
			s.pushNotification(domain.NotifyError, "A user with that email already exists")
		}
		return err
	}
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			break
		}
	}
	if s.user != nil && s.user.ID == u.ID {
		current := u
		s.user = &current
	}
	s.pushNotification(domain.NotifySuccess, "Profile updated")
	return nil
}

// DeleteUser removes an account; deleting the account currently signed in
// logs it out too.
func (s *Store) DeleteUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.userRepo.Delete(userID); err != nil && !isNotFound(err) {
		return err
	}
	for i := range s.users {
		if s.users[i].ID == userID {
			s.users = append(s.users[:i], s.users[i+1:]...)
			break
		}
	}
	if s.user != nil && s.user.ID == userID {
		s.logout()
	}
	return nil
}

// ToggleWishlist flips membership for the signed-in user.
func (s *Store) ToggleWishlist(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		s.pushNotification(domain.NotifyError, "Please login to use wishlist")
		return ErrNotAuthenticated
	}

	u := *s.user
	if domain.InWishlist(u.Wishlist, productID) {
		next := make([]string, 0, len(u.Wishlist))
		for _, id := range u.Wishlist {
			if id != productID {
				next = append(next, id)
			}
		}
		u.Wishlist = next
		s.pushNotification(domain.NotifyInfo, "Removed from wishlist")
	} else {
		u.Wishlist = append(append([]string(nil), u.Wishlist...), productID)
		s.pushNotification(domain.NotifySuccess, "Added to wishlist")
	}
	return s.updateUser(u)
}

func (s *Store) IsInWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return false
	}
	return domain.InWishlist(s.user.Wishlist, productID)
}

// AddAddress appends to the signed-in user's address book. No-op when
// nobody is signed in.
func (s *Store) AddAddress(a domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	if a.ID == "" {
		a.ID = "addr-" + uuid.NewString()
	}
	u := *s.user
	u.Addresses = append(append([]domain.Address(nil), u.Addresses...), a)
	return s.updateUser(u)
}

func (s *Store) RemoveAddress(addressID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	next := make([]domain.Address, 0, len(u.Addresses))
	for _, a := range u.Addresses {
		if a.ID != addressID {
			next = append(next, a)
		}
	}
	u.Addresses = next
	return s.updateUser(u)
}
