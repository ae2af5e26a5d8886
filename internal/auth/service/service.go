// Package service holds the login, session and profile rules. Stores report
// storage facts through sentinel errors; this package turns them into
// domain errors the handlers can render.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks UserStore,SessionStore,AuditPublisher

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"conductor/internal/audit"
	"conductor/internal/auth/models"
	"conductor/internal/platform/metrics"
	id "conductor/pkg/domain"
)

const (
	DefaultSessionTTL = 7 * 24 * time.Hour
	sessionIDBytes    = 32
)

// DefaultAllowedEmailSuffixes is the self-registration allowlist used when
// none is configured.
var DefaultAllowedEmailSuffixes = []string{"@ucsd.edu"}

type UserStore interface {
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Upsert(ctx context.Context, in models.UpsertUser) (*models.User, bool, error)
	UpdateProfile(ctx context.Context, userID id.UserID, upd models.ProfileUpdate, now time.Time) (*models.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error)
	Delete(ctx context.Context, sessionID id.SessionID) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Config carries the policy knobs of the service.
type Config struct {
	SessionTTL           time.Duration
	AllowedEmailSuffixes []string
}

type Service struct {
	users    UserStore
	sessions SessionStore
	cfg      Config
	logger   *slog.Logger
	auditor  AuditPublisher
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = p
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(users UserStore, sessions SessionStore, cfg Config, opts ...Option) *Service {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	suffixes := make([]string, 0, len(cfg.AllowedEmailSuffixes))
	for _, suffix := range cfg.AllowedEmailSuffixes {
		if suffix = strings.ToLower(strings.TrimSpace(suffix)); suffix != "" {
			suffixes = append(suffixes, suffix)
		}
	}
	if len(suffixes) == 0 {
		suffixes = DefaultAllowedEmailSuffixes
	}
	cfg.AllowedEmailSuffixes = suffixes

	s := &Service{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SessionTTL is the lifetime given to new sessions.
func (s *Service) SessionTTL() time.Duration {
	return s.cfg.SessionTTL
}

func (s *Service) emailAllowed(email string) bool {
	for _, suffix := range s.cfg.AllowedEmailSuffixes {
		if strings.HasSuffix(email, suffix) {
			return true
		}
	}
	return false
}
