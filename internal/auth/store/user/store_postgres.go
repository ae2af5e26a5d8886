package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"

	"conductor/internal/auth/models"
	id "conductor/pkg/domain"
	"conductor/pkg/platform/sentinel"
)

const tracerName = "conductor/internal/auth/store/user"

const uniqueViolation = "23505"

const userColumns = `id, email, first_name, last_name, pronouns, global_role,
	is_profile_complete, last_login, created_at, updated_at, deleted_at`

// PostgresStore persists users in the users table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, user *models.User) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.Create")
	defer span.End()

	if user.ID.IsNil() {
		user.ID = id.NewUserID()
	}
	if user.GlobalRole == id.RoleNone {
		user.GlobalRole = id.RoleStudent
	}
	user.Email = models.NormalizeEmail(user.Email)
	user.IsProfileComplete = models.ProfileComplete(user.FirstName, user.LastName)

	query := `
		INSERT INTO users (id, email, first_name, last_name, pronouns, global_role, is_profile_complete)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query,
		user.ID.String(), user.Email, user.FirstName, user.LastName, user.Pronouns,
		user.GlobalRole, user.IsProfileComplete,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("create user %s: %w", user.Email, sentinel.ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.FindByID")
	defer span.End()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND deleted_at IS NULL`, userID.String())
	return scanUser(row, "find user by id")
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.FindByEmail")
	defer span.End()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND deleted_at IS NULL`, models.NormalizeEmail(email))
	return scanUser(row, "find user by email")
}

// FindByIDs returns the live users among userIDs in one round trip. Unknown
// and soft-deleted ids are skipped.
func (s *PostgresStore) FindByIDs(ctx context.Context, userIDs []id.UserID) ([]*models.User, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.FindByIDs")
	defer span.End()

	if len(userIDs) == 0 {
		return nil, nil
	}
	raw := make([]string, len(userIDs))
	for i, userID := range userIDs {
		raw[i] = userID.String()
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ANY($1::uuid[]) AND deleted_at IS NULL ORDER BY email`,
		pq.Array(raw))
	if err != nil {
		return nil, fmt.Errorf("find users by ids: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows, "find users by ids")
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find users by ids: %w", err)
	}
	return users, nil
}

// Upsert is a single INSERT ... ON CONFLICT statement so concurrent first
// logins for one email converge on one row. xmax = 0 only for freshly
// inserted tuples, which tells us whether the row was created.
func (s *PostgresStore) Upsert(ctx context.Context, in models.UpsertUser) (*models.User, bool, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.Upsert")
	defer span.End()

	query := `
		INSERT INTO users (id, email, first_name, last_name, last_login, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5, $5)
		ON CONFLICT (email) DO UPDATE SET
			first_name = COALESCE(NULLIF(EXCLUDED.first_name, ''), users.first_name),
			last_name  = COALESCE(NULLIF(EXCLUDED.last_name, ''), users.last_name),
			last_login = EXCLUDED.last_login,
			updated_at = EXCLUDED.last_login
		WHERE users.deleted_at IS NULL
		RETURNING ` + userColumns + `, (xmax = 0) AS inserted
	`
	row := s.db.QueryRowContext(ctx, query,
		id.NewUserID().String(), models.NormalizeEmail(in.Email), in.FirstName, in.LastName, in.LastLogin)

	var inserted bool
	u, err := scanUser(row, "upsert user", &inserted)
	if err != nil {
		// ON CONFLICT ... WHERE filtered the row out: the email belongs to a
		// soft-deleted user.
		return nil, false, err
	}
	return u, inserted, nil
}

func (s *PostgresStore) UpdateProfile(ctx context.Context, userID id.UserID, upd models.ProfileUpdate, now time.Time) (*models.User, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.UpdateProfile")
	defer span.End()

	query := `
		UPDATE users SET
			first_name = COALESCE($2, first_name),
			last_name  = COALESCE($3, last_name),
			pronouns   = COALESCE($4, pronouns),
			is_profile_complete = (
				btrim(COALESCE($2, first_name)) <> '' AND btrim(COALESCE($3, last_name)) <> ''
			),
			updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + userColumns
	row := s.db.QueryRowContext(ctx, query,
		userID.String(), nullString(upd.FirstName), nullString(upd.LastName), nullString(upd.Pronouns), now)
	return scanUser(row, "update user profile")
}

func (s *PostgresStore) SoftDelete(ctx context.Context, userID id.UserID, now time.Time) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.SoftDelete")
	defer span.End()

	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		userID.String(), now)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete user rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, op string, extra ...any) (*models.User, error) {
	var (
		u         models.User
		rawID     string
		pronouns  sql.NullString
		firstName sql.NullString
		lastName  sql.NullString
		lastLogin sql.NullTime
		deletedAt sql.NullTime
	)
	dest := []any{
		&rawID, &u.Email, &firstName, &lastName, &pronouns, &u.GlobalRole,
		&u.IsProfileComplete, &lastLogin, &u.CreatedAt, &u.UpdatedAt, &deletedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	parsed, err := id.ParseUserID(rawID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.ID = parsed
	u.FirstName = firstName.String
	u.LastName = lastName.String
	u.Pronouns = pronouns.String
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		u.DeletedAt = &t
	}
	return &u, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
