package notification

import (
	"context"
	"errors"
	c "medremind/internal/core/domain/common"
	"sync"
)

var errSendFailed = errors.New("send failed")

type SentMessage struct {
	Address c.Email
	Subject string
	Body    string
}

// FakeSender records sent messages. SendError fails every send;
// SendErrorFor fails sends to one address only. Block, when set, is
// received from before every send returns.
type FakeSender struct {
	SendError    error
	SendErrorFor c.Email
	Block        chan struct{}

	Sent []SentMessage
	lock sync.Mutex
}

func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

func (s *FakeSender) Send(ctx context.Context, address c.Email, subject string, body string) error {
	if s.Block != nil {
		select {
		case <-s.Block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if s.SendError != nil {
		return s.SendError
	}
	if s.SendErrorFor != "" && s.SendErrorFor == address {
		return errSendFailed
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, SentMessage{Address: address, Subject: subject, Body: body})
	return nil
}

func (s *FakeSender) SentTo() []c.Email {
	s.lock.Lock()
	defer s.lock.Unlock()
	addresses := make([]c.Email, 0, len(s.Sent))
	for _, m := range s.Sent {
		addresses = append(addresses, m.Address)
	}
	return addresses
}
