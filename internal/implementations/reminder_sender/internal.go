package remindersender

import (
	"context"
	"encoding/json"
	c "medremind/internal/core/domain/common"
	e "medremind/internal/core/domain/errors"

	"github.com/r3labs/sse/v2"
)

// InternalSender publishes reminders to server-sent-event streams, one
// stream per contact address. Used instead of real email in test mode and
// behind the in-app events endpoint.
type InternalSender struct {
	sseServer *sse.Server
}

func NewInternal(sseServer *sse.Server) *InternalSender {
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	return &InternalSender{
		sseServer: sseServer,
	}
}

func (s *InternalSender) Send(ctx context.Context, address c.Email, subject string, body string) error {
	data, err := json.Marshal(reminderEvent{Subject: subject, Body: body})
	if err != nil {
		return err
	}
	streamID := string(address)
	if !s.sseServer.StreamExists(streamID) {
		s.sseServer.CreateStream(streamID)
	}
	s.sseServer.Publish(streamID, &sse.Event{Data: data})
	return nil
}

type reminderEvent struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
