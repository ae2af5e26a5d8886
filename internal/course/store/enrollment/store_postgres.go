package enrollment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"

	"conductor/internal/course/models"
	id "conductor/pkg/domain"
	"conductor/pkg/platform/tx"
)

const tracerName = "conductor/internal/course/store/enrollment"

const enrollmentColumns = `user_id, course_id, role, team_id, created_at, updated_at, deleted_at`

// PostgresStore persists enrollments. Calls join the transaction carried by
// ctx when there is one.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Enroll is one INSERT ... ON CONFLICT statement that only touches
// soft-deleted rows; when it returns nothing the pair is already active.
func (s *PostgresStore) Enroll(ctx context.Context, e *models.Enrollment) (*models.Enrollment, bool, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.Enroll")
	defer span.End()

	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	query := `
		INSERT INTO enrollments (user_id, course_id, role, team_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (user_id, course_id) DO UPDATE SET
			role       = EXCLUDED.role,
			team_id    = EXCLUDED.team_id,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at,
			deleted_at = NULL
		WHERE enrollments.deleted_at IS NOT NULL
		RETURNING ` + enrollmentColumns
	exec := tx.Exec(ctx, s.db)
	row := exec.QueryRowContext(ctx, query,
		e.UserID.String(), int64(e.CourseID), e.Role, nullTeam(e.TeamID), createdAt)
	created, err := scanEnrollment(row)
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("enroll: %w", err)
	}

	row = exec.QueryRowContext(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE user_id = $1 AND course_id = $2`,
		e.UserID.String(), int64(e.CourseID))
	existing, err := scanEnrollment(row)
	if err != nil {
		return nil, false, fmt.Errorf("enroll: load existing: %w", err)
	}
	return existing, false, nil
}

func (s *PostgresStore) Role(ctx context.Context, userID id.UserID, courseID id.CourseID) (id.Role, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.Role")
	defer span.End()

	var role id.Role
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT role FROM enrollments WHERE user_id = $1 AND course_id = $2 AND deleted_at IS NULL`,
		userID.String(), int64(courseID)).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return id.RoleNone, nil
	}
	if err != nil {
		return id.RoleNone, fmt.Errorf("enrollment role: %w", err)
	}
	return role, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]*models.Enrollment, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.ListByUser")
	defer span.End()

	return s.list(ctx, "list enrollments by user",
		`SELECT `+enrollmentColumns+` FROM enrollments
		 WHERE user_id = $1 AND deleted_at IS NULL ORDER BY course_id`, userID.String())
}

func (s *PostgresStore) ListByCourse(ctx context.Context, courseID id.CourseID) ([]*models.Enrollment, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.ListByCourse")
	defer span.End()

	return s.list(ctx, "list enrollments by course",
		`SELECT `+enrollmentColumns+` FROM enrollments
		 WHERE course_id = $1 AND deleted_at IS NULL ORDER BY created_at`, int64(courseID))
}

func (s *PostgresStore) Remove(ctx context.Context, userID id.UserID, courseID id.CourseID, now time.Time) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.Remove")
	defer span.End()

	_, err := tx.Exec(ctx, s.db).ExecContext(ctx,
		`UPDATE enrollments SET deleted_at = $3, updated_at = $3
		 WHERE user_id = $1 AND course_id = $2 AND deleted_at IS NULL`,
		userID.String(), int64(courseID), now)
	if err != nil {
		return fmt.Errorf("remove enrollment: %w", err)
	}
	return nil
}

func (s *PostgresStore) list(ctx context.Context, op, query string, args ...any) ([]*models.Enrollment, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []*models.Enrollment
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEnrollment passes sql.ErrNoRows through unwrapped so Enroll can tell
// "already active" from a failure.
func scanEnrollment(row rowScanner) (*models.Enrollment, error) {
	var (
		e         models.Enrollment
		rawUserID string
		teamID    sql.NullInt64
		deletedAt sql.NullTime
	)
	if err := row.Scan(&rawUserID, &e.CourseID, &e.Role, &teamID, &e.CreatedAt, &e.UpdatedAt, &deletedAt); err != nil {
		return nil, err
	}
	userID, err := id.ParseUserID(rawUserID)
	if err != nil {
		return nil, err
	}
	e.UserID = userID
	if teamID.Valid {
		t := id.TeamID(teamID.Int64)
		e.TeamID = &t
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		e.DeletedAt = &t
	}
	return &e, nil
}

func nullTeam(t *id.TeamID) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*t), Valid: true}
}
