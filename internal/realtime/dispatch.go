package realtime

import "log/slog"

// Publish serializes the event, records chat and notice frames in the
// history buffer, and fans the frame out to the current registry snapshot.
// Failures are local: an event that cannot be serialized is dropped before
// it reaches the buffer, and a failed send evicts only that connection.
// Publish never returns an error to the caller; the broadcast path is
// fire-and-forget by design.
func (h *Hub) Publish(event Event) {
	data, err := event.encode()
	if err != nil {
		slog.Error("dropping broadcast: encode failed", "kind", event.kind, "error", err)
		return
	}
	if event.kind == KindChat || event.kind == KindNotice {
		h.history.Append(data)
	}
	h.fanOut(data, event.origin, h.Snapshot())
}

// deliver is the internal path for presence broadcasts, which reuse a
// snapshot taken under the same lock as the admit/evict that triggered them.
func (h *Hub) deliver(event Event, snapshot []Entry) {
	data, err := event.encode()
	if err != nil {
		slog.Error("dropping broadcast: encode failed", "kind", event.kind, "error", err)
		return
	}
	h.fanOut(data, event.origin, snapshot)
}

func (h *Hub) fanOut(data []byte, origin string, snapshot []Entry) {
	h.sendMu.Lock()
	var dead []string
	for _, e := range snapshot {
		if origin != "" && e.ConnID == origin {
			continue
		}
		if !e.client.Send(data) {
			slog.Warn("write failed, evicting client", "connId", e.ConnID, "userId", e.UserID)
			dead = append(dead, e.ConnID)
		}
	}
	// Released before the evictions below: each eviction publishes a fresh
	// presence broadcast that takes sendMu again.
	h.sendMu.Unlock()

	// Corrective eviction happens after the loop so one dead connection
	// never interrupts delivery to the rest. Evict tolerates ids the
	// reader loop already removed.
	for _, id := range dead {
		h.Evict(id)
	}
}
