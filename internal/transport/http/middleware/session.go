package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionName   = "chirp_session"
	sessionUserID = "user_id"
	sessionMaxAge = 24 * 60 * 60
)

// Sessions keeps the logged-in user in a signed cookie.
type Sessions struct {
	store *sessions.CookieStore
}

func NewSessions(secret string, secure bool) *Sessions {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: store}
}

func (s *Sessions) Login(w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	// a tampered cookie yields an error and a fresh session, which is fine here
	session, _ := s.store.Get(r, sessionName)
	session.Values[sessionUserID] = userID.String()
	return session.Save(r, w)
}

func (s *Sessions) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, sessionName)
	delete(session.Values, sessionUserID)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

func (s *Sessions) UserID(r *http.Request) (uuid.UUID, bool) {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return uuid.Nil, false
	}
	raw, ok := session.Values[sessionUserID].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
