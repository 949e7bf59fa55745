package apihttp

import (
	"errors"
	"net/http"
	"strings"

	notifyapp "lngtrade-cloud/internal/notify/application"
	"lngtrade-cloud/internal/state"
)

// NotificationsHandler handles notification center APIs.
type NotificationsHandler struct {
	service *notifyapp.Service
	store   *state.Store
}

// NewNotificationsHandler constructs a handler.
func NewNotificationsHandler(service *notifyapp.Service, store *state.Store) (*NotificationsHandler, error) {
	if service == nil {
		return nil, errors.New("notifications handler: nil service")
	}
	if store == nil {
		return nil, errors.New("notifications handler: nil store")
	}
	return &NotificationsHandler{service: service, store: store}, nil
}

func (h *NotificationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/api/v1/notifications" && r.Method == http.MethodGet:
		if r.URL.Query().Get("unread") == "true" {
			writeJSON(w, http.StatusOK, h.service.Unread())
			return
		}
		writeJSON(w, http.StatusOK, h.store.Snapshot().Notifications)
	case strings.HasSuffix(path, "/read") && strings.HasPrefix(path, "/api/v1/notifications/") && r.Method == http.MethodPost:
		notificationID := strings.TrimSuffix(strings.TrimPrefix(path, "/api/v1/notifications/"), "/read")
		if err := h.service.MarkRead(notificationID); err != nil {
			if errors.Is(err, notifyapp.ErrNotificationNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
