package application

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lngtrade-cloud/internal/notify"
	"lngtrade-cloud/internal/state"
)

func TestMarkRead(t *testing.T) {
	store := state.NewStore(state.Seed())
	svc, err := NewService(store, nil, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if got := len(svc.Unread()); got != 1 {
		t.Fatalf("unread = %d", got)
	}

	if err := svc.MarkRead("msg-init-1"); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if got := len(svc.Unread()); got != 0 {
		t.Fatalf("unread after mark = %d", got)
	}
	if !store.Snapshot().Notifications[0].Read {
		t.Fatal("read flag not set")
	}

	if err := svc.MarkRead("msg-nope"); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestForward(t *testing.T) {
	received := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		received <- string(buf)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	channel, err := notify.NewWebhookChannel(server.URL)
	if err != nil {
		t.Fatalf("NewWebhookChannel: %v", err)
	}
	svc, err := NewService(state.NewStore(state.Seed()), channel, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	svc.Forward(context.Background(), notify.New("msg-x", notify.CategoryFinance, "余额预警", "可用余额偏低", state.SystemClock{}.Now()))

	select {
	case body := <-received:
		if body == "" {
			t.Fatal("empty webhook body")
		}
	default:
		t.Fatal("webhook not called")
	}
}
