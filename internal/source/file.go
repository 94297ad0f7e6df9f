package source

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/abhisek/stacks/internal/course"
)

// File reads a course export from disk. The whole file is one course, so
// the course id is only used for logging.
type File struct {
	Path string
	Log  *zap.Logger
}

var _ Fetcher = (*File)(nil)

// NewFile returns a File fetcher for path.
func NewFile(path string, log *zap.Logger) *File {
	if log == nil {
		log = zap.NewNop()
	}
	return &File{Path: path, Log: log}
}

func (f *File) FetchRecords(ctx context.Context, courseID string) ([]course.ProgressRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read course export: %w", err)
	}

	records, skipped, err := course.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.Path, err)
	}
	for _, e := range skipped {
		f.Log.Warn("skipping malformed record",
			zap.String("course", courseID),
			zap.String("path", f.Path),
			zap.Error(e),
		)
	}
	return records, nil
}

func (f *File) FetchRecord(ctx context.Context, courseID, id string) (course.ProgressRecord, error) {
	records, err := f.FetchRecords(ctx, courseID)
	if err != nil {
		return course.ProgressRecord{}, err
	}
	return Find(records, id)
}
