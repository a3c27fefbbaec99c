package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Event names broadcast to connected observers.
const (
	EventTicketsUpdate = "tickets_update"
	EventMessageNew    = "message_new"
)

// Event is a broadcast notification. On the wire the payload fields
// are flattened next to the event name:
//
//	{"event": "message_new", "ticketId": "...", "message": {...}}
type Event struct {
	Name    string
	Payload map[string]interface{}
}

func (e Event) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(e.Payload)+1)
	for k, v := range e.Payload {
		out[k] = v
	}
	out["event"] = e.Name
	return json.Marshal(out)
}

// NewTicketsUpdateEvent signals that the queue changed in some way.
// It carries no payload; observers re-fetch whatever view they hold.
func NewTicketsUpdateEvent() Event {
	return Event{Name: EventTicketsUpdate}
}

// NewMessageEvent carries a freshly appended message.
func NewMessageEvent(ticketID uuid.UUID, msg *Message) Event {
	return Event{
		Name: EventMessageNew,
		Payload: map[string]interface{}{
			"ticketId": ticketID,
			"message":  msg,
		},
	}
}
