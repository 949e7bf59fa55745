// Package application exposes the notification center operations and the
// outbound webhook forwarder for finance-critical events.
package application

import (
	"context"
	"errors"
	"log"

	"lngtrade-cloud/internal/notify"
	"lngtrade-cloud/internal/state"
)

// ErrNotificationNotFound is returned when no notification matches.
var ErrNotificationNotFound = errors.New("notify: notification not found")

// Service drives the notification center.
type Service struct {
	store   *state.Store
	channel notify.Channel
	logger  *log.Logger
}

// NewService constructs a notification service. channel may be nil when no
// outbound forwarding is configured.
func NewService(store *state.Store, channel notify.Channel, logger *log.Logger) (*Service, error) {
	if store == nil {
		return nil, errors.New("notify service: nil store")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{store: store, channel: channel, logger: logger}, nil
}

// MarkRead flips a notification's read flag.
func (s *Service) MarkRead(notificationID string) error {
	return s.store.Update(func(st *state.State) error {
		for i := range st.Notifications {
			if st.Notifications[i].ID == notificationID {
				st.Notifications[i].Read = true
				return nil
			}
		}
		return ErrNotificationNotFound
	})
}

// Unread returns the notifications not yet marked read, newest first.
func (s *Service) Unread() []notify.Item {
	snap := s.store.Snapshot()
	var unread []notify.Item
	for _, item := range snap.Notifications {
		if !item.Read {
			unread = append(unread, item)
		}
	}
	return unread
}

// Forward pushes a notification's content to the outbound channel.
// Delivery failures are logged, not propagated; the in-store record is the
// source of truth.
func (s *Service) Forward(ctx context.Context, item notify.Item) {
	if s.channel == nil {
		return
	}
	if err := s.channel.Send(ctx, item.Title+"\n"+item.Content); err != nil {
		s.logger.Printf("notify: forward %s failed: %v", item.ID, err)
	}
}
