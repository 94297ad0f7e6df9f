package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"go.uber.org/zap"

	"github.com/abhisek/stacks/internal/course"
	"github.com/abhisek/stacks/internal/source"
)

// ErrCourseNotFound is returned when a course id has never been imported.
var ErrCourseNotFound = errors.New("course not found")

// CourseInfo summarises an imported course.
type CourseInfo struct {
	ID         string
	Name       string
	Modules    int
	ImportedAt time.Time
}

var _ source.Fetcher = (*Store)(nil)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// ImportCourse replaces the stored modules of courseID with records. Records
// keep their input order so position ties resolve the same way after a
// round trip.
func (s *Store) ImportCourse(ctx context.Context, courseID, name string, records []course.ProgressRecord) (err error) {
	if courseID == "" {
		return fmt.Errorf("import course: %w: course id", course.ErrMissingField)
	}

	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	q, args := builder().Delete("modules").Where(entsql.EQ("course_id", courseID)).Query()
	if err = tx.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("clear modules: %w", err)
	}

	q, args = builder().Insert("courses").
		Columns("id", "name", "imported_at").
		Values(courseID, name, time.Now().UTC().Format(time.RFC3339)).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err = tx.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("upsert course: %w", err)
	}

	for i, rec := range records {
		payload, encErr := course.Encode(rec)
		if encErr != nil {
			err = fmt.Errorf("encode module %q: %w", rec.ID, encErr)
			return err
		}
		q, args = builder().Insert("modules").
			Columns("course_id", "seq", "module_id", "position", "payload").
			Values(courseID, i, rec.ID, rec.Position, string(payload)).
			Query()
		if err = tx.Exec(ctx, q, args, nil); err != nil {
			return fmt.Errorf("insert module %q: %w", rec.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	s.log.Info("course imported",
		zap.String("course_id", courseID),
		zap.Int("modules", len(records)),
	)
	return nil
}

// FetchRecords returns the stored modules of courseID in import order.
// Rows whose payload no longer validates are skipped with a warning.
func (s *Store) FetchRecords(ctx context.Context, courseID string) ([]course.ProgressRecord, error) {
	ok, err := s.courseExists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, courseID)
	}

	q, args := builder().Select("seq", "payload").
		From(entsql.Table("modules")).
		Where(entsql.EQ("course_id", courseID)).
		OrderBy(entsql.Asc("seq")).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query modules: %w", err)
	}
	defer rows.Close()

	var records []course.ProgressRecord
	for rows.Next() {
		var (
			seq     int
			payload string
		)
		if err := rows.Scan(&seq, &payload); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		rec, err := course.DecodeNode(seq, []byte(payload))
		if err != nil {
			s.log.Warn("skipping malformed record",
				zap.String("course_id", courseID),
				zap.Int("index", seq),
				zap.Error(err),
			)
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate modules: %w", err)
	}
	return records, nil
}

// FetchRecord returns the first stored module of courseID with the given id.
func (s *Store) FetchRecord(ctx context.Context, courseID, id string) (course.ProgressRecord, error) {
	records, err := s.FetchRecords(ctx, courseID)
	if err != nil {
		return course.ProgressRecord{}, err
	}
	return source.Find(records, id)
}

// Courses lists every imported course with its module count.
func (s *Store) Courses(ctx context.Context) ([]CourseInfo, error) {
	const q = `SELECT c.id, c.name, c.imported_at, COUNT(m.seq)
		FROM courses c LEFT JOIN modules m ON m.course_id = c.id
		GROUP BY c.id, c.name, c.imported_at
		ORDER BY c.id`

	var rows entsql.Rows
	if err := s.drv.Query(ctx, q, []any{}, &rows); err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	var out []CourseInfo
	for rows.Next() {
		var (
			info     CourseInfo
			imported string
		)
		if err := rows.Scan(&info.ID, &info.Name, &imported, &info.Modules); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, imported); err == nil {
			info.ImportedAt = t
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}
	return out, nil
}

func (s *Store) courseExists(ctx context.Context, courseID string) (bool, error) {
	q, args := builder().Select("id").
		From(entsql.Table("courses")).
		Where(entsql.EQ("id", courseID)).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, q, args, &rows); err != nil {
		return false, fmt.Errorf("query course: %w", err)
	}
	defer rows.Close()
	found := rows.Next()
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("query course: %w", err)
	}
	return found, nil
}
