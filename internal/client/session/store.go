package session

import (
	"context"
	"encoding/json"
)

// Storage keys. The same keys the web client kept in browser-local storage,
// so a reader of either side finds the same vocabulary.
const (
	keyToken     = "token"
	keyUser      = "user"
	keyReturnURL = "returnUrl"
)

// Store is the single source of truth for the session: the bearer token and
// the user record, plus the transient return URL captured before a forced
// login redirect.
//
// Every operation is non-throwing by contract: a nil or failing backend
// degrades to "absent" on reads and to a no-op on writes. Guards and the
// gateway may therefore call the Store unconditionally, before any backend
// is ready, and never observe an error.
type Store struct {
	backend Backend
}

// NewStore wraps the given backend. A nil backend is valid and yields a
// store that reports every key as absent.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

func (s *Store) get(ctx context.Context, key string) ([]byte, bool) {
	if s.backend == nil {
		return nil, false
	}
	v, err := s.backend.Get(ctx, key)
	if err != nil || v == nil {
		return nil, false
	}
	return v, true
}

func (s *Store) set(ctx context.Context, key string, value []byte) {
	if s.backend == nil {
		return
	}
	_ = s.backend.Set(ctx, key, value)
}

func (s *Store) delete(ctx context.Context, keys ...string) {
	if s.backend == nil {
		return
	}
	_ = s.backend.Delete(ctx, keys...)
}

// GetToken returns the persisted bearer token, if any.
func (s *Store) GetToken(ctx context.Context) (string, bool) {
	v, ok := s.get(ctx, keyToken)
	if !ok || len(v) == 0 {
		return "", false
	}
	return string(v), true
}

func (s *Store) SetToken(ctx context.Context, token string) {
	s.set(ctx, keyToken, []byte(token))
}

func (s *Store) RemoveToken(ctx context.Context) {
	s.delete(ctx, keyToken)
}

// GetUser returns the persisted user record, if any. A record that fails to
// decode reads as absent.
func (s *Store) GetUser(ctx context.Context) (*UserRecord, bool) {
	v, ok := s.get(ctx, keyUser)
	if !ok {
		return nil, false
	}
	var u UserRecord
	if err := json.Unmarshal(v, &u); err != nil {
		return nil, false
	}
	return &u, true
}

func (s *Store) SetUser(ctx context.Context, u *UserRecord) {
	if u == nil {
		return
	}
	v, err := json.Marshal(u)
	if err != nil {
		return
	}
	s.set(ctx, keyUser, v)
}

func (s *Store) RemoveUser(ctx context.Context) {
	s.delete(ctx, keyUser)
}

// IsAuthenticated reports whether both the token and the user record are
// present. A token without a user record (or the reverse) counts as
// unauthenticated.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	if _, ok := s.GetToken(ctx); !ok {
		return false
	}
	_, ok := s.GetUser(ctx)
	return ok
}

// Clear removes the token and the user record in one backend statement, so
// no concurrent reader sees only one of them gone. The return URL is left
// alone: it belongs to the navigation flow, not to the session proper.
func (s *Store) Clear(ctx context.Context) {
	s.delete(ctx, keyToken, keyUser)
}

// SetReturnURL records the path to restore after the next successful login.
func (s *Store) SetReturnURL(ctx context.Context, path string) {
	s.set(ctx, keyReturnURL, []byte(path))
}

// ConsumeReturnURL returns the recorded return path and removes it, so it is
// honored at most once.
func (s *Store) ConsumeReturnURL(ctx context.Context) (string, bool) {
	v, ok := s.get(ctx, keyReturnURL)
	if !ok || len(v) == 0 {
		return "", false
	}
	s.delete(ctx, keyReturnURL)
	return string(v), true
}
