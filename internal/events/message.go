package events

import (
	"encoding/json"
	"time"

	"github.com/MrJamesThe3rd/pocket/internal/watch"
)

// Message announces a change to the ledger. It carries ids only; consumers
// read the records back through the API.
type Message struct {
	Source    string    `json:"source"`
	Table     string    `json:"table"`
	Op        string    `json:"op"`
	IDs       []string  `json:"ids"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMessage(source string, c watch.Change) *Message {
	ids := make([]string, len(c.IDs))
	for i, id := range c.IDs {
		ids[i] = id.String()
	}

	return &Message{
		Source:    source,
		Table:     string(c.Table),
		Op:        string(c.Op),
		IDs:       ids,
		Timestamp: c.At,
	}
}

func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MessageFromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}

	return &msg, nil
}
