package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvent_ChatWireShape(t *testing.T) {
	event := NewChatEvent(ChatPayload{
		ID:         "01HZX",
		Message:    "hello",
		AuthorName: "Ann",
		CreatedAt:  "2026-01-02T15:04:05Z",
	}, "conn-9")

	require.Equal(t, KindChat, event.Kind())
	require.Equal(t, "conn-9", event.OriginConnectionID())

	data, err := event.encode()
	require.NoError(t, err)

	var decoded struct {
		Type string      `json:"type"`
		Data ChatPayload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "chat", decoded.Type)
	require.Equal(t, "hello", decoded.Data.Message)
	require.Equal(t, "Ann", decoded.Data.AuthorName)
}

func TestEvent_NoticeWireShape(t *testing.T) {
	event := NewNoticeEvent(NoticePayload{
		ID:         "01HZY",
		Title:      "Exams",
		Content:    "Timetable is out",
		Category:   "academics",
		Priority:   "high",
		IsPinned:   true,
		AuthorName: "Bob",
		CreatedAt:  "2026-01-02T15:04:05Z",
		ExpiresAt:  "2026-01-09T15:04:05Z",
	})

	require.Equal(t, KindNotice, event.Kind())
	require.Empty(t, event.OriginConnectionID())

	data, err := event.encode()
	require.NoError(t, err)

	var decoded struct {
		Type string        `json:"type"`
		Data NoticePayload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "notice", decoded.Type)
	require.True(t, decoded.Data.IsPinned)
	require.Equal(t, "high", decoded.Data.Priority)
}

func TestEvent_PresenceWireShape(t *testing.T) {
	data, err := NewPresenceEvent(7).encode()
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"presence","data":7}`, string(data))
}
