package push

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// EventNotification is the event name clients listen on.
const EventNotification = "notification"

// Publisher delivers a payload to every live session of a user. Delivery is
// fire-and-forget: a user with no session is not an error.
type Publisher interface {
	Publish(ctx context.Context, userID, event string, payload any) error
}

// Message is the envelope written to socket clients.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Fanout publishes to every publisher and joins their errors.
type Fanout struct {
	Publishers []Publisher
	Logger     *zap.Logger
}

func NewFanout(logger *zap.Logger, publishers ...Publisher) *Fanout {
	return &Fanout{Publishers: publishers, Logger: logger}
}

func (f *Fanout) Publish(ctx context.Context, userID, event string, payload any) error {
	var errs []error
	for _, p := range f.Publishers {
		if err := p.Publish(ctx, userID, event, payload); err != nil {
			if f.Logger != nil {
				f.Logger.Warn("push publisher failed",
					zap.String("userId", userID),
					zap.String("event", event),
					zap.Error(err),
				)
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
