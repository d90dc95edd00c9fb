// Package notify publishes payment change events to an operator channel.
package notify

import (
	"context"
	"fmt"

	"payments-gateway/internal/models"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

type Event struct {
	Action  Action
	Payment models.Payment
}

// Text renders the event as a single chat line.
func (e Event) Text() string {
	return fmt.Sprintf("Payment %s %s: %s -> %s, amount %d",
		e.Payment.ID, e.Action, e.Payment.From, e.Payment.To, e.Payment.Amount)
}

type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Notify(context.Context, Event) error { return nil }
