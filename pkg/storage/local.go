package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalFS reads attachments from the local file system.
type LocalFS struct {
	// MaxSize caps the file size in bytes. Zero means DefaultMaxSize.
	MaxSize int64
}

// Open reads the file at location. A "file://" prefix is accepted.
func (l LocalFS) Open(ctx context.Context, location string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := strings.TrimPrefix(location, "file://")
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidLocation)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, wrapFSError(err, path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, wrapFSError(err, path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	limit := l.MaxSize
	if limit <= 0 {
		limit = DefaultMaxSize
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrFileTooLarge, path, limit)
	}

	data, err := readLimited(f, limit, path)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	return &File{
		Name:        name,
		ContentType: DetectMIME(name, data),
		Content:     data,
	}, nil
}
