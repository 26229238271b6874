package events

import (
	"encoding/json"
	"time"

	"fintrack/internal/store"
)

// ChangeMessage is the wire form of a store.Change. It carries only the
// table, operation and row id; consumers re-read whatever they need from
// the store on the next access.
type ChangeMessage struct {
	Table     string    `json:"table"`
	Op        string    `json:"op"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeMessage(c store.Change) *ChangeMessage {
	return &ChangeMessage{
		Table:     string(c.Table),
		Op:        string(c.Op),
		ID:        c.ID,
		Timestamp: time.Now(),
	}
}

// Change converts the message back to the domain event.
func (m *ChangeMessage) Change() store.Change {
	return store.Change{
		Table: store.Table(m.Table),
		Op:    store.Op(m.Op),
		ID:    m.ID,
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
