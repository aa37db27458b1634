package store

import (
	"time"

	"github.com/google/uuid"

	"blogspace-client/domain/blog"
)

// Notifications are local-only. Nothing here touches the network.

// AddNotification prepends a new unread notification.
func (s *Store) AddNotification(title, message string) {
	n := blog.Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	s.mutate(func(st *State) {
		st.Notifications = append([]blog.Notification{n}, st.Notifications...)
	})
}

// MarkNotificationRead flags one notification as read. Unknown IDs are
// ignored.
func (s *Store) MarkNotificationRead(id string) {
	s.mutate(func(st *State) {
		for i := range st.Notifications {
			if st.Notifications[i].ID == id {
				st.Notifications[i].Read = true
				break
			}
		}
	})
}

// ClearNotifications drops every notification.
func (s *Store) ClearNotifications() {
	s.mutate(func(st *State) {
		st.Notifications = nil
	})
}
