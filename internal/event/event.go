package event

import (
	"encoding/json"
	"fmt"
	"time"
)

// Publisher delivers a marshalled event to an outbound subject. The transport
// layer subscribes to these subjects and relays events to clients; analytics
// consumers do the same.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Envelope wraps every published event with its type and emit time.
type Envelope struct {
	Type string          `json:"type"`
	At   time.Time       `json:"at"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Emit marshals data into an Envelope and publishes it. A nil publisher is a
// no-op so engines can run without a sink in tests.
func Emit(pub Publisher, subject, eventType string, data any) error {
	if pub == nil {
		return nil
	}

	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshalling %s event: %w", eventType, err)
		}
		raw = b
	}

	b, err := json.Marshal(Envelope{Type: eventType, At: time.Now(), Data: raw})
	if err != nil {
		return fmt.Errorf("marshalling %s envelope: %w", eventType, err)
	}

	return pub.Publish(subject, b)
}

// RegionSubject is the subject carrying world-cycle events for a region.
func RegionSubject(region string) string {
	return fmt.Sprintf("region-%s", region)
}

// SessionSubject is the subject carrying minigame events for a session.
func SessionSubject(id string) string {
	return fmt.Sprintf("session-%s", id)
}
