package state

import (
	"fmt"
	"log"
	"net/url"

	"lumina/internal/domain"

	"github.com/google/uuid"
)

// Login re-fetches users from the store first so edits from another process
// are picked up, then matches by email. An empty password is a bypass: any
// account with that email logs in. That is the demo trust model, kept on
// purpose; tightening it is a policy change, not a bug fix.
func (s *Store) Login(email, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.userRepo.All()
	if err != nil {
		return false, err
	}
	s.users = users

	for _, u := range users {
		if u.Email != email {
			continue
		}
		if password != "" && u.Password != password {
			continue
		}
		target := u
		s.user = &target
		if err := s.cache.Put(cacheKeySession, target.ID); err != nil {
			log.Printf("[state] session marker write failed: %v", err)
		}
		s.pushNotification(domain.NotifySuccess, fmt.Sprintf("Welcome back, %s", target.Name))
		return true, nil
	}
	// No notification on a miss; the caller decides how to surface it.
	return false, nil
}

// Register creates the account and signs it in. There is no pre-check for an
// existing email: the store's unique index is the guard, and its conflict is
// surfaced to the user.
func (s *Store) Register(name, email, password string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newUser := domain.User{
		ID:        "user-" + uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  password,
		Role:      domain.RoleUser,
		Avatar:    fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random&color=fff", url.QueryEscape(name)),
		Addresses: []domain.Address{},
		Wishlist:  []string{},
	}

	if err := s.userRepo.Put(newUser); err != nil {
		if isConflict(err) {
			s.pushNotification(domain.NotifyError, fmt.Sprintf("An account with %s already exists", email))
		} else {
			s.pushNotification(domain.NotifyError, "Failed to create account")
		}
		return domain.User{}, err
	}

	s.users = append(s.users, newUser)
	current := newUser
	s.user = &current
	if err := s.cache.Put(cacheKeySession, newUser.ID); err != nil {
		log.Printf("[state] session marker write failed: %v", err)
	}
	s.pushNotification(domain.NotifySuccess, "Account created successfully!")
	return newUser, nil
}

func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logout()
}

// logout requires s.mu held.
func (s *Store) logout() {
	s.user = nil
	if err := s.cache.Delete(cacheKeySession); err != nil {
		log.Printf("[state] session marker clear failed: %v", err)
	}
	s.cartOpen = false
	s.pushNotification(domain.NotifyInfo, "You have been logged out")
}
