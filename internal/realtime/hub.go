package realtime

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	// Send writes one frame; false means the transport is dead.
	Send(message []byte) bool
	Close()
}

// ErrDuplicateConnection is returned by Admit when the handle is already
// registered. The second handshake is rejected; registry state is unchanged.
var ErrDuplicateConnection = errors.New("realtime: connection already registered")

// Entry is the registry's record of one live connection. The display name is
// cached at admission so broadcasts never go back to the store.
type Entry struct {
	ConnID      string
	UserID      string
	DisplayName string

	client Client
}

// Hub owns the connection registry, the presence count derived from it, and
// the recent-history buffer. One hub per process; construct it in main and
// hand it to whatever accepts connections and whatever publishes events.
type Hub struct {
	mu       sync.RWMutex
	entries  map[string]*Entry // connection id -> entry
	byClient map[Client]string // admission idempotency guard

	// sendMu serializes fan-out loops: publishes happen one at a time, so
	// two concurrent Publish calls never interleave their writes to a
	// given connection.
	sendMu sync.Mutex

	history *History
}

// NewHub creates an empty hub whose history buffer holds historySize frames
// (DefaultHistorySize when non-positive).
func NewHub(historySize int) *Hub {
	return &Hub{
		entries:  make(map[string]*Entry),
		byClient: make(map[Client]string),
		history:  NewHistory(historySize),
	}
}

// Admit registers a connection under a user identity and returns its new
// connection id. Identity is resolved by the caller; the hub only trusts it.
// Every successful admission broadcasts the recomputed presence count to all
// connections before returning.
func (h *Hub) Admit(client Client, userID, displayName string) (string, error) {
	h.mu.Lock()
	if existing, ok := h.byClient[client]; ok {
		h.mu.Unlock()
		return existing, ErrDuplicateConnection
	}
	id := uuid.NewString()
	entry := &Entry{ConnID: id, UserID: userID, DisplayName: displayName, client: client}
	h.entries[id] = entry
	h.byClient[client] = id
	count := h.distinctUsersLocked()
	snapshot := h.snapshotLocked()
	h.mu.Unlock()

	slog.Info("client connected", "connId", id, "userId", userID, "connections", len(snapshot))
	h.deliver(NewPresenceEvent(count), snapshot)
	return id, nil
}

// Evict removes a connection if present and broadcasts the recomputed
// presence count. Evicting an unknown id is a no-op: disconnect
// notifications race and double-fire, and a no-op eviction must not spend a
// presence broadcast.
func (h *Hub) Evict(connID string) {
	h.mu.Lock()
	entry, ok := h.entries[connID]
	if !ok {
		h.mu.Unlock()
		return
	}
	delete(h.entries, connID)
	delete(h.byClient, entry.client)
	count := h.distinctUsersLocked()
	snapshot := h.snapshotLocked()
	h.mu.Unlock()

	slog.Info("client disconnected", "connId", connID, "userId", entry.UserID, "connections", len(snapshot))
	h.deliver(NewPresenceEvent(count), snapshot)
}

// Snapshot returns a point-in-time copy of the live entries. Concurrent
// admits and evicts never mutate a returned snapshot.
func (h *Hub) Snapshot() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshotLocked()
}

// CountDistinctUsers returns the number of users holding at least one live
// connection. A user with several tabs counts once.
func (h *Hub) CountDistinctUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.distinctUsersLocked()
}

// History returns the hub's recent-history buffer.
func (h *Hub) History() *History {
	return h.history
}

func (h *Hub) snapshotLocked() []Entry {
	out := make([]Entry, 0, len(h.entries))
	for _, e := range h.entries {
		out = append(out, *e)
	}
	return out
}

func (h *Hub) distinctUsersLocked() int {
	users := make(map[string]struct{}, len(h.entries))
	for _, e := range h.entries {
		users[e.UserID] = struct{}{}
	}
	return len(users)
}
