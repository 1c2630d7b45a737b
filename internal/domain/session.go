package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionRef is the opaque handle a client holds for an uploaded save.
type SessionRef string

// NewSessionRef returns a random (UUIDv4) reference.
func NewSessionRef() (SessionRef, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate session ref: %w", err)
	}

	return SessionRef(id.String()), nil
}

// ParseSessionRef normalizes a client supplied reference. Anything that is not
// a well-formed reference cannot name a session and reports ErrSessionNotFound.
func ParseSessionRef(raw string) (SessionRef, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrSessionNotFound, raw)
	}

	return SessionRef(id.String()), nil
}

func (r SessionRef) String() string {
	return string(r)
}

// Session ties a reference to the container it names.
type Session struct {
	Ref        SessionRef
	Container  *Container
	CreatedAt  time.Time
	LastAccess time.Time
}

// Expired reports whether the session has been idle for longer than ttl.
// A non-positive ttl never expires.
func (s Session) Expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(s.LastAccess) > ttl
}
