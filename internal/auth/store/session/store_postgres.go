package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"

	"conductor/internal/auth/models"
	id "conductor/pkg/domain"
	"conductor/pkg/platform/sentinel"
)

const tracerName = "conductor/internal/auth/store/session"

// PostgresStore persists sessions in the sessions table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed session store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, session *models.Session) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.Create")
	defer span.End()

	query := `
		INSERT INTO sessions (id, user_id, device_name, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		session.ID.String(), session.UserID.String(), session.DeviceName, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create session: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.FindByID")
	defer span.End()

	query := `
		SELECT id, user_id, device_name, created_at, expires_at
		FROM sessions
		WHERE id = $1
	`
	var (
		session   models.Session
		rawID     string
		rawUserID string
	)
	err := s.db.QueryRowContext(ctx, query, sessionID.String()).Scan(
		&rawID, &rawUserID, &session.DeviceName, &session.CreatedAt, &session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	userID, err := id.ParseUserID(rawUserID)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	session.ID = id.SessionID(rawID)
	session.UserID = userID
	return &session, nil
}

func (s *PostgresStore) Delete(ctx context.Context, sessionID id.SessionID) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.Delete")
	defer span.End()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID.String()); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
