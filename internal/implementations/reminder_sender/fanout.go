package remindersender

import (
	"context"
	c "medremind/internal/core/domain/common"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/notification"
)

// FanOutSender delivers every reminder through all of its senders. A
// failing sender does not stop delivery through the others; the first
// error is returned once all senders have been attempted.
type FanOutSender struct {
	senders []notification.Sender
}

func NewFanOut(senders ...notification.Sender) *FanOutSender {
	if len(senders) == 0 {
		panic(e.NewNilArgumentError("senders"))
	}
	for _, sender := range senders {
		if sender == nil {
			panic(e.NewNilArgumentError("sender"))
		}
	}
	return &FanOutSender{senders: senders}
}

func (s *FanOutSender) Send(ctx context.Context, address c.Email, subject string, body string) error {
	var firstErr error
	for _, sender := range s.senders {
		if err := sender.Send(ctx, address, subject, body); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
