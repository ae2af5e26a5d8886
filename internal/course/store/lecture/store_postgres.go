package lecture

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"

	"conductor/internal/course/models"
	id "conductor/pkg/domain"
	"conductor/pkg/platform/sentinel"
	"conductor/pkg/platform/tx"
)

const tracerName = "conductor/internal/course/store/lecture"

const lectureColumns = `id, course_id, lecture_date, code, created_at, updated_at, deleted_at`

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, lecture *models.Lecture) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.Create")
	defer span.End()

	if lecture.CreatedAt.IsZero() {
		lecture.CreatedAt = time.Now()
	}
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO lectures (course_id, lecture_date, code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, updated_at`,
		int64(lecture.CourseID), lecture.LectureDate, nullString(lecture.Code), lecture.CreatedAt,
	).Scan(&lecture.ID, &lecture.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create lecture: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, courseID id.CourseID, lectureID id.LectureID) (*models.Lecture, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.FindByID")
	defer span.End()

	row := tx.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+lectureColumns+` FROM lectures WHERE id = $1 AND course_id = $2 AND deleted_at IS NULL`,
		int64(lectureID), int64(courseID))
	return scanLecture(row, "find lecture")
}

func (s *PostgresStore) ListByCourse(ctx context.Context, courseID id.CourseID) ([]*models.Lecture, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.ListByCourse")
	defer span.End()

	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT `+lectureColumns+` FROM lectures
		 WHERE course_id = $1 AND deleted_at IS NULL ORDER BY lecture_date, id`, int64(courseID))
	if err != nil {
		return nil, fmt.Errorf("list lectures: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Lecture, 0)
	for rows.Next() {
		l, err := scanLecture(rows, "list lectures")
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list lectures: %w", err)
	}
	return out, nil
}

// Update sets lecture_date and code from the merged record so a cleared code
// is written as NULL.
func (s *PostgresStore) Update(ctx context.Context, courseID id.CourseID, lectureID id.LectureID, upd models.LectureUpdate, now time.Time) (*models.Lecture, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.Update")
	defer span.End()

	var updated *models.Lecture
	err := tx.NewPostgresRunner(s.db).RunInTx(ctx, func(ctx context.Context) error {
		exec := tx.Exec(ctx, s.db)
		current, err := scanLecture(exec.QueryRowContext(ctx,
			`SELECT `+lectureColumns+` FROM lectures
			 WHERE id = $1 AND course_id = $2 AND deleted_at IS NULL FOR UPDATE`,
			int64(lectureID), int64(courseID)), "load lecture for update")
		if err != nil {
			return err
		}
		upd.Apply(current)
		updated, err = scanLecture(exec.QueryRowContext(ctx, `
			UPDATE lectures SET lecture_date = $2, code = $3, updated_at = $4
			WHERE id = $1
			RETURNING `+lectureColumns,
			int64(lectureID), current.LectureDate, nullString(current.Code), now), "update lecture")
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *PostgresStore) SoftDelete(ctx context.Context, courseID id.CourseID, lectureID id.LectureID, now time.Time) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PostgresStore.SoftDelete")
	defer span.End()

	res, err := tx.Exec(ctx, s.db).ExecContext(ctx,
		`UPDATE lectures SET deleted_at = $3, updated_at = $3
		 WHERE id = $1 AND course_id = $2 AND deleted_at IS NULL`,
		int64(lectureID), int64(courseID), now)
	if err != nil {
		return fmt.Errorf("soft delete lecture: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete lecture rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLecture(row rowScanner, op string) (*models.Lecture, error) {
	var (
		l         models.Lecture
		code      sql.NullString
		deletedAt sql.NullTime
	)
	err := row.Scan(&l.ID, &l.CourseID, &l.LectureDate, &code, &l.CreatedAt, &l.UpdatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if code.Valid {
		c := code.String
		l.Code = &c
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		l.DeletedAt = &t
	}
	return &l, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
