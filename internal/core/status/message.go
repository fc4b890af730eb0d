// Package status models the transient status messages reported by the
// platform and keeps a dismissal-aware copy of them in sync with the server.
package status

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Level represents the severity of a status message.
type Level string

const (
	LevelDebug    Level = "DEBUG"
	LevelInfo     Level = "INFO"
	LevelWarn     Level = "WARN"
	LevelError    Level = "ERROR"
	LevelCritical Level = "CRITICAL"
)

// ParseLevel normalizes a level string. Unknown values map to LevelInfo.
func ParseLevel(s string) Level {
	switch l := Level(strings.ToUpper(strings.TrimSpace(s))); l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError, LevelCritical:
		return l
	case "WARNING":
		return LevelWarn
	default:
		return LevelInfo
	}
}

// Message is a single status message as reported by the backend. Messages
// are immutable once fetched.
type Message struct {
	ID         string    `json:"id"`
	Level      Level     `json:"level"`
	Date       Timestamp `json:"date"`
	Text       string    `json:"text"`
	ModuleName string    `json:"moduleName,omitempty"`
}

// UnmarshalJSON accepts both "id" and the document-store style "_id".
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         json.RawMessage `json:"id"`
		DocID      json.RawMessage `json:"_id"`
		Level      string          `json:"level"`
		Date       Timestamp       `json:"date"`
		Text       string          `json:"text"`
		ModuleName string          `json:"moduleName"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	idRaw := raw.ID
	if len(idRaw) == 0 || bytes.Equal(idRaw, []byte("null")) {
		idRaw = raw.DocID
	}

	id, err := decodeID(idRaw)
	if err != nil {
		return fmt.Errorf("decode status message id: %w", err)
	}

	*m = Message{
		ID:         id,
		Level:      ParseLevel(raw.Level),
		Date:       raw.Date,
		Text:       raw.Text,
		ModuleName: raw.ModuleName,
	}
	return nil
}

// decodeID reads an opaque identifier that may be serialized as a string
// or a number.
func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

// ToDate returns the time the message originated.
func ToDate(m Message) time.Time {
	return m.Date.Time
}

// IsError reports whether the message should be presented as an error.
func IsError(m Message) bool {
	return m.Level == LevelError || m.Level == LevelCritical
}

// IDs returns the identifiers of msgs in order.
func IDs(msgs []Message) []string {
	ids := make([]string, len(msgs))
	for i, m := range msgs {
		ids[i] = m.ID
	}
	return ids
}

// Timestamp is a time that decodes from RFC 3339 strings or epoch
// milliseconds.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	if data[0] != '"' {
		ms, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("parse epoch millis %q: %w", data, err)
		}
		t.Time = time.UnixMilli(ms).UTC()
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("parse timestamp %q: unsupported format", s)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}
