// Package notify holds the in-store notification center records and the
// outbound delivery channels used for system notifications.
package notify

import (
	"context"
	"time"
)

// Notification categories.
const (
	CategoryApproval    = "approval"
	CategoryFulfillment = "fulfillment"
	CategoryFinance     = "finance"
	CategorySystem      = "system"
)

// Item is an informational record created as a side effect of mutating
// operations. Append-only; only the read flag ever changes.
type Item struct {
	ID        string
	Category  string
	Title     string
	Content   string
	CreatedAt time.Time
	Read      bool
}

// New builds a notification item.
func New(id, category, title, content string, at time.Time) Item {
	return Item{
		ID:        id,
		Category:  category,
		Title:     title,
		Content:   content,
		CreatedAt: at,
	}
}

// Outbound receives notifications that must leave the process after the
// owning operation commits.
type Outbound interface {
	Forward(ctx context.Context, item Item)
}

// ForwardAll pushes system and finance notifications to out. Informational
// categories stay in-store only. Nil-safe on out.
func ForwardAll(out Outbound, items []Item) {
	if out == nil {
		return
	}
	for _, item := range items {
		switch item.Category {
		case CategorySystem, CategoryFinance:
			out.Forward(context.Background(), item)
		}
	}
}
