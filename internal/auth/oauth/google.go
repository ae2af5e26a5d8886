// Package oauth runs the Google OpenID Connect authorization-code exchange.
// One *Google is built at startup and shared by every request.
package oauth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"conductor/internal/auth/cookie"
	"conductor/internal/auth/models"
	dErrors "conductor/pkg/domain-errors"
)

// DefaultIssuer is Google's OIDC issuer.
const DefaultIssuer = "https://accounts.google.com"

// Config holds the OAuth client registration.
type Config struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// StateStore persists the CSRF state between the redirect and the callback.
type StateStore interface {
	SetState(w http.ResponseWriter, st cookie.State) error
	ReadState(r *http.Request) (cookie.State, error)
	ClearState(w http.ResponseWriter)
}

// Google exchanges authorization codes for verified identities.
type Google struct {
	config   oauth2.Config
	verifier *oidc.IDTokenVerifier
	states   StateStore
}

// NewGoogle discovers the provider configuration and builds the client. It
// performs network I/O and is meant to run once during startup.
func NewGoogle(ctx context.Context, cfg Config, states StateStore) (*Google, error) {
	issuer := cfg.IssuerURL
	if issuer == "" {
		issuer = DefaultIssuer
	}
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("discover oidc provider %s: %w", issuer, err)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})
	return newGoogle(cfg, provider.Endpoint(), verifier, states), nil
}

func newGoogle(cfg Config, endpoint oauth2.Endpoint, verifier *oidc.IDTokenVerifier, states StateStore) *Google {
	return &Google{
		config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
		verifier: verifier,
		states:   states,
	}
}

// AuthCodeURL writes a fresh state cookie and returns the consent URL.
func (g *Google) AuthCodeURL(w http.ResponseWriter) (string, error) {
	st := cookie.State{
		State:        uuid.NewString(),
		PKCEVerifier: oauth2.GenerateVerifier(),
	}
	if err := g.states.SetState(w, st); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to write oauth state")
	}
	return g.config.AuthCodeURL(st.State,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.S256ChallengeOption(st.PKCEVerifier),
	), nil
}

// Exchange checks state against the cookie, redeems code and verifies the
// returned ID token. The state check runs before any network call.
func (g *Google) Exchange(ctx context.Context, r *http.Request, code, state string) (*models.Identity, error) {
	stored, err := g.states.ReadState(r)
	if err != nil || state == "" ||
		subtle.ConstantTimeCompare([]byte(stored.State), []byte(state)) != 1 {
		return nil, dErrors.New(dErrors.CodeInvalidState, "invalid OAuth state (possible CSRF)")
	}
	if code == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "missing authorization code")
	}

	token, err := g.config.Exchange(ctx, code, oauth2.VerifierOption(stored.PKCEVerifier))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTokenExchangeFailed, "failed to exchange authorization code")
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, dErrors.New(dErrors.CodeTokenExchangeFailed, "no id_token in token response")
	}

	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTokenExchangeFailed, "failed to verify ID token")
	}
	var identity models.Identity
	if err := idToken.Claims(&identity); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTokenExchangeFailed, "failed to parse ID token claims")
	}
	identity.Subject = idToken.Subject
	return &identity, nil
}

// ClearState expires the state cookie once the callback has been handled.
func (g *Google) ClearState(w http.ResponseWriter) {
	g.states.ClearState(w)
}
