package state

import (
	"strconv"
	"time"

	"lumina/internal/domain"
)

// AddNotification queues a transient user-facing message. Each entry removes
// itself after the configured TTL; the timer is fixed at creation and not
// reset by later calls.
func (s *Store) AddNotification(t domain.NotificationType, message string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pushNotification(t, message)
}

// pushNotification requires s.mu held.
func (s *Store) pushNotification(t domain.NotificationType, message string) string {
	id := strconv.FormatInt(time.Now().UnixNano(), 10)
	s.notifications = append(s.notifications, domain.Notification{ID: id, Type: t, Message: message})
	time.AfterFunc(s.notifyTTL, func() { s.RemoveNotification(id) })
	return id
}

// RemoveNotification dismisses by id. Unknown ids are a no-op, so a manual
// dismissal racing the auto-expiry timer is harmless.
func (s *Store) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

func (s *Store) Notifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Notification(nil), s.notifications...)
}
