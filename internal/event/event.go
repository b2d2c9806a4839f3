package event

import (
	"encoding/json"
	"strings"
)

func Factory(bs []byte) (*Message, error) {
	var m *Message

	if err := json.Unmarshal(bs, &m); err != nil {
		return nil, err
	}

	if m == nil || len(strings.TrimSpace(m.Site)) == 0 {
		return nil, ErrMissingSite
	}

	if len(strings.TrimSpace(m.Event)) == 0 {
		return nil, ErrMissingEvent
	}

	return m, nil
}
