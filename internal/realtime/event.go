package realtime

import "encoding/json"

// EventKind tags the wire frame so clients can route it.
type EventKind string

const (
	KindChat     EventKind = "chat"
	KindNotice   EventKind = "notice"
	KindPresence EventKind = "presence"
)

// ChatPayload is the wire form of a persisted chat message. The author name
// is resolved by the caller before the event is built; the hub never touches
// the store.
type ChatPayload struct {
	ID         string `json:"id"`
	Message    string `json:"message"`
	AuthorName string `json:"authorName"`
	CreatedAt  string `json:"createdAt"`
}

// NoticePayload is the wire form of a persisted notice.
type NoticePayload struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Category   string `json:"category"`
	Priority   string `json:"priority"`
	IsPinned   bool   `json:"isPinned"`
	AuthorName string `json:"authorName"`
	CreatedAt  string `json:"createdAt"`
	ExpiresAt  string `json:"expiresAt"`
}

// Event is one fully formed broadcast. It is immutable after construction;
// use the New*Event constructors.
type Event struct {
	kind     EventKind
	origin   string // connection id to skip; chat only
	chat     *ChatPayload
	notice   *NoticePayload
	presence int
}

// NewChatEvent builds a chat broadcast. originConnID, when non-empty, names
// the sender's own connection so its optimistic local copy is not duplicated.
func NewChatEvent(payload ChatPayload, originConnID string) Event {
	return Event{kind: KindChat, origin: originConnID, chat: &payload}
}

// NewNoticeEvent builds a notice broadcast. Notices go to every connection,
// including the creator's own sessions, so there is no origin.
func NewNoticeEvent(payload NoticePayload) Event {
	return Event{kind: KindNotice, notice: &payload}
}

// NewPresenceEvent builds a presence broadcast carrying the distinct-user count.
func NewPresenceEvent(count int) Event {
	return Event{kind: KindPresence, presence: count}
}

// Kind returns the event's tag.
func (e Event) Kind() EventKind {
	return e.kind
}

// OriginConnectionID returns the connection excluded from delivery, or "".
func (e Event) OriginConnectionID() string {
	return e.origin
}

// frame is the envelope every client receives: {"type": ..., "data": ...}.
type frame struct {
	Type EventKind `json:"type"`
	Data any       `json:"data"`
}

func (e Event) encode() ([]byte, error) {
	f := frame{Type: e.kind}
	switch e.kind {
	case KindChat:
		f.Data = e.chat
	case KindNotice:
		f.Data = e.notice
	case KindPresence:
		f.Data = e.presence
	}
	return json.Marshal(f)
}
