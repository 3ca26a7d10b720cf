package cart

import (
	"encoding/gob"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "loja-session"
	sessionKey  = "cart"
)

func init() {
	gob.Register(Cart{})
}

// Store loads and saves a visitor's cart. Callers never see how the cart is
// backed; swapping the cookie session for a server-side store only touches
// this package.
type Store interface {
	Load(r *http.Request) Cart
	Save(r *http.Request, w http.ResponseWriter, c Cart) error
}

// SessionStore keeps the cart inside a gorilla cookie session.
type SessionStore struct {
	Sessions *sessions.CookieStore
}

func NewSessionStore(s *sessions.CookieStore) *SessionStore {
	return &SessionStore{Sessions: s}
}

// Load returns the visitor's cart, or an empty one when the session is
// missing or undecodable (a tampered cookie just means an empty cart).
func (s *SessionStore) Load(r *http.Request) Cart {
	session, err := s.Sessions.Get(r, sessionName)
	if err != nil {
		slog.Debug("Cart session unreadable, starting fresh", "error", err)
		return New()
	}
	if c, ok := session.Values[sessionKey].(Cart); ok && c != nil {
		return c
	}
	return New()
}

func (s *SessionStore) Save(r *http.Request, w http.ResponseWriter, c Cart) error {
	session, _ := s.Sessions.Get(r, sessionName)
	session.Values[sessionKey] = c
	return session.Save(r, w)
}
