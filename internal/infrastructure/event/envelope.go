package event

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Envelope is the wire format for domain events on the billing events topic.
// Field names are part of the downstream consumer contract and must stay
// camelCase.
type Envelope struct {
	EventID      string `json:"eventId"`
	EventType    string `json:"eventType"`
	Timestamp    string `json:"timestamp"`
	Source       string `json:"source"`
	ResourceType string `json:"resourceType"`
	Data         any    `json:"data"`
}

const base36Chars = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewEventID generates an event identifier in the form
// evt-{epoch-millis}-{9-char base36 suffix}
func NewEventID() string {
	var suffix strings.Builder
	suffix.Grow(9)
	for i := 0; i < 9; i++ {
		suffix.WriteByte(base36Chars[rand.Intn(len(base36Chars))])
	}
	return "evt-" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + suffix.String()
}

// NewEnvelope builds an event envelope stamped with a fresh event ID and the
// current UTC time
func NewEnvelope(source, eventType, resourceType string, data any) Envelope {
	return Envelope{
		EventID:      NewEventID(),
		EventType:    eventType,
		Timestamp:    time.Now().UTC().Format("2006-01-02T15:04:05.000000") + "Z",
		Source:       source,
		ResourceType: resourceType,
		Data:         data,
	}
}
