package notify

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Async delivers events on background goroutines so a slow channel never
// holds up the caller. Delivery failures are logged.
type Async struct {
	next Notifier
	wg   sync.WaitGroup
}

func NewAsync(next Notifier) *Async {
	return &Async{next: next}
}

func (a *Async) Notify(ctx context.Context, e Event) error {
	ctx = context.WithoutCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.next.Notify(ctx, e); err != nil {
			log.Warn().Err(err).Str("id", e.Payment.ID).Str("action", string(e.Action)).Msg("Failed to send payment notification")
		}
	}()
	return nil
}

// Wait blocks until every event handed to Notify has been delivered or has failed.
func (a *Async) Wait() {
	a.wg.Wait()
}
