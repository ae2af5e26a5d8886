package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"

	"conductor/internal/course/models"
	id "conductor/pkg/domain"
	"conductor/pkg/platform/sentinel"
	"conductor/pkg/platform/tx"
)

const tracerName = "conductor/internal/course/store/course"

const uniqueViolation = "23505"

const courseColumns = `id, course_code, course_name, term, section, join_code,
	start_date, end_date, created_at, updated_at, deleted_at`

// PostgresStore persists courses in the courses table. Calls join the
// transaction carried by ctx when there is one.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, course *models.Course) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.Create")
	defer span.End()

	course.JoinCode = models.NormalizeJoinCode(course.JoinCode)
	if course.Section == "" {
		course.Section = models.DefaultSection
	}
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO courses (course_code, course_name, term, section, join_code, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id, updated_at
	`
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx, query,
		course.Code, course.Name, course.Term, course.Section, course.JoinCode,
		course.StartDate, course.EndDate, course.CreatedAt,
	).Scan(&course.ID, &course.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create course: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, courseID id.CourseID) (*models.Course, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.FindByID")
	defer span.End()

	row := tx.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1 AND deleted_at IS NULL`, int64(courseID))
	return scanCourse(row, "find course by id")
}

// FindByIDs loads every live course among courseIDs in one query.
func (s *PostgresStore) FindByIDs(ctx context.Context, courseIDs []id.CourseID) ([]*models.Course, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.FindByIDs")
	defer span.End()

	if len(courseIDs) == 0 {
		return nil, nil
	}
	raw := make([]int64, len(courseIDs))
	for i, courseID := range courseIDs {
		raw[i] = int64(courseID)
	}
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = ANY($1) AND deleted_at IS NULL ORDER BY id`,
		pq.Array(raw))
	if err != nil {
		return nil, fmt.Errorf("find courses by ids: %w", err)
	}
	defer rows.Close()

	var out []*models.Course
	for rows.Next() {
		c, err := scanCourse(rows, "find courses by ids")
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find courses by ids: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindByJoinCode(ctx context.Context, joinCode string) (*models.Course, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.FindByJoinCode")
	defer span.End()

	row := tx.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE join_code = $1 AND deleted_at IS NULL`,
		models.NormalizeJoinCode(joinCode))
	return scanCourse(row, "find course by join code")
}

func (s *PostgresStore) Update(ctx context.Context, courseID id.CourseID, upd models.CourseUpdate, now time.Time) (*models.Course, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.Update")
	defer span.End()

	var joinCode sql.NullString
	if upd.JoinCode != nil {
		joinCode = sql.NullString{String: models.NormalizeJoinCode(*upd.JoinCode), Valid: true}
	}
	query := `
		UPDATE courses SET
			course_code = COALESCE($2, course_code),
			course_name = COALESCE($3, course_name),
			term        = COALESCE($4, term),
			section     = COALESCE($5, section),
			join_code   = COALESCE($6, join_code),
			start_date  = COALESCE($7, start_date),
			end_date    = COALESCE($8, end_date),
			updated_at  = $9
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + courseColumns
	row := tx.Exec(ctx, s.db).QueryRowContext(ctx, query, int64(courseID),
		nullString(upd.Code), nullString(upd.Name), nullString(upd.Term), nullString(upd.Section),
		joinCode, nullTime(upd.StartDate), nullTime(upd.EndDate), now)
	c, err := scanCourse(row, "update course")
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("update course: %w", sentinel.ErrConflict)
		}
		return nil, err
	}
	return c, nil
}

func (s *PostgresStore) SoftDelete(ctx context.Context, courseID id.CourseID, now time.Time) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.SoftDelete")
	defer span.End()

	res, err := tx.Exec(ctx, s.db).ExecContext(ctx,
		`UPDATE courses SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		int64(courseID), now)
	if err != nil {
		return fmt.Errorf("soft delete course: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete course rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner, op string) (*models.Course, error) {
	var (
		c         models.Course
		deletedAt sql.NullTime
	)
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Term, &c.Section, &c.JoinCode,
		&c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		c.DeletedAt = &t
	}
	return &c, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
