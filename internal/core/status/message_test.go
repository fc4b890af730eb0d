package status

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b []Message
		want bool
	}{
		{"both empty", nil, []Message{}, true},
		{"same ids same order", msgs("1", "2"), msgs("1", "2"), true},
		{"different length", msgs("1"), msgs("1", "3"), false},
		{"same ids different order", msgs("1", "2"), msgs("2", "1"), false},
		{"different id at same position", msgs("1", "2"), msgs("1", "3"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a))
		})
	}
}

func TestEqual_ignores_content(t *testing.T) {
	a := []Message{{ID: "1", Level: LevelInfo, Text: "disk ok"}}
	b := []Message{{ID: "1", Level: LevelError, Text: "disk full"}}

	assert.True(t, Equal(a, b))
}

func TestFilter(t *testing.T) {
	in := msgs("1", "2", "3")
	out := Filter(in, map[string]struct{}{"2": {}})

	assert.Equal(t, []string{"1", "3"}, IDs(out))
	assert.Len(t, in, 3, "input must not be modified")
}

func TestMessage_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Message
	}{
		{
			name:  "id and rfc3339 date",
			input: `{"id":"abc","level":"ERROR","date":"2024-03-01T10:00:00Z","text":"failed"}`,
			want: Message{
				ID:    "abc",
				Level: LevelError,
				Date:  Timestamp{time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
				Text:  "failed",
			},
		},
		{
			name:  "document id and epoch millis",
			input: `{"_id":"doc-1","level":"info","date":1709287200000,"text":"ok","moduleName":"scheduler"}`,
			want: Message{
				ID:         "doc-1",
				Level:      LevelInfo,
				Date:       Timestamp{time.UnixMilli(1709287200000).UTC()},
				Text:       "ok",
				ModuleName: "scheduler",
			},
		},
		{
			name:  "numeric id and unknown level",
			input: `{"id":42,"level":"chatter","text":"hi"}`,
			want:  Message{ID: "42", Level: LevelInfo, Text: "hi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Message
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want.ID, got.ID)
			assert.Equal(t, tt.want.Level, got.Level)
			assert.True(t, tt.want.Date.Equal(got.Date.Time), "date %v != %v", tt.want.Date, got.Date)
			assert.Equal(t, tt.want.Text, got.Text)
			assert.Equal(t, tt.want.ModuleName, got.ModuleName)
		})
	}
}

func TestTimestamp_invalid(t *testing.T) {
	var ts Timestamp
	err := json.Unmarshal([]byte(`"yesterday"`), &ts)
	assert.Error(t, err)
}

func TestToDate(t *testing.T) {
	when := time.Date(2023, 12, 24, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, when, ToDate(Message{Date: Timestamp{when}}))
}

func TestIsError(t *testing.T) {
	assert.True(t, IsError(Message{Level: LevelError}))
	assert.True(t, IsError(Message{Level: LevelCritical}))
	assert.False(t, IsError(Message{Level: LevelWarn}))
	assert.False(t, IsError(Message{Level: LevelInfo}))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelDebug, ParseLevel(" debug "))
	assert.Equal(t, LevelInfo, ParseLevel(""))
}
