package models

import (
	"github.com/oklog/ulid/v2"
)

// NewID returns a lexically time-ordered identifier for notices and chat
// messages, so created_at DESC listings match primary-key order.
func NewID() string {
	return ulid.Make().String()
}
