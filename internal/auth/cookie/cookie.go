// Package cookie signs and reads the two cookies the auth flow relies on:
// sid, which carries the session id, and oauth_state, which carries the CSRF
// state and PKCE verifier between the login redirect and the callback.
package cookie

import (
	"crypto/sha256"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"

	id "conductor/pkg/domain"
)

const (
	SessionName = "sid"
	StateName   = "oauth_state"

	stateMaxAge = 10 * time.Minute
)

// ErrMissing is returned when the cookie is absent or fails verification.
var ErrMissing = errors.New("cookie missing or invalid")

// State is the payload of the oauth_state cookie.
type State struct {
	State        string `json:"state"`
	PKCEVerifier string `json:"pkce_verifier"`
}

// Codec writes HTTP-only, SameSite=Lax cookies signed with an HMAC key derived
// from the configured secret.
type Codec struct {
	sc         *securecookie.SecureCookie
	state      *securecookie.SecureCookie
	secure     bool
	sessionTTL time.Duration
}

// New builds a codec. secure sets the Secure attribute, which production
// deployments behind HTTPS need.
func New(secret string, secure bool, sessionTTL time.Duration) *Codec {
	hashKey := sha256.Sum256([]byte(secret))
	sc := securecookie.New(hashKey[:], nil)
	sc.MaxAge(int(sessionTTL / time.Second))
	state := securecookie.New(hashKey[:], nil)
	state.MaxAge(int(stateMaxAge / time.Second))
	return &Codec{sc: sc, state: state, secure: secure, sessionTTL: sessionTTL}
}

func (c *Codec) set(w http.ResponseWriter, name, value string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *Codec) clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetSession writes the sid cookie with max-age equal to the session TTL.
func (c *Codec) SetSession(w http.ResponseWriter, sessionID id.SessionID) error {
	encoded, err := c.sc.Encode(SessionName, sessionID.String())
	if err != nil {
		return err
	}
	c.set(w, SessionName, encoded, c.sessionTTL)
	return nil
}

// ReadSession returns the session id carried by the request.
func (c *Codec) ReadSession(r *http.Request) (id.SessionID, error) {
	raw, err := r.Cookie(SessionName)
	if err != nil {
		return "", ErrMissing
	}
	var value string
	if err := c.sc.Decode(SessionName, raw.Value, &value); err != nil || value == "" {
		return "", ErrMissing
	}
	return id.SessionID(value), nil
}

func (c *Codec) ClearSession(w http.ResponseWriter) {
	c.clear(w, SessionName)
}

func (c *Codec) SetState(w http.ResponseWriter, st State) error {
	encoded, err := c.state.Encode(StateName, st)
	if err != nil {
		return err
	}
	c.set(w, StateName, encoded, stateMaxAge)
	return nil
}

func (c *Codec) ReadState(r *http.Request) (State, error) {
	raw, err := r.Cookie(StateName)
	if err != nil {
		return State{}, ErrMissing
	}
	var st State
	if err := c.state.Decode(StateName, raw.Value, &st); err != nil || st.State == "" {
		return State{}, ErrMissing
	}
	return st, nil
}

func (c *Codec) ClearState(w http.ResponseWriter) {
	c.clear(w, StateName)
}
