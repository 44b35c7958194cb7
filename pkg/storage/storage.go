package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// DefaultMaxSize is the default attachment size limit (25MB, the common SMTP relay cap).
const DefaultMaxSize = 25 << 20

// Source resolves a location into file content.
type Source interface {
	// Open reads the whole file at location.
	Open(ctx context.Context, location string) (*File, error)
}

// File is an attachment loaded into memory.
type File struct {
	// Name is the display filename (base name, no directories).
	Name string

	// ContentType is the detected MIME type.
	ContentType string

	// Content is the raw file content.
	Content []byte
}

// Size returns the content length in bytes.
func (f *File) Size() int64 {
	return int64(len(f.Content))
}

// Config holds S3-compatible storage configuration.
type Config struct {
	// Bucket is used for locations given as a bare key (optional).
	Bucket string `env:"S3_BUCKET"`

	// AccessKey is the access key ID (required).
	AccessKey string `env:"S3_ACCESS_KEY"`

	// SecretKey is the secret access key (required).
	SecretKey string `env:"S3_SECRET_KEY"`

	// Endpoint is a custom endpoint URL for MinIO or other S3-compatible services.
	Endpoint string `env:"S3_ENDPOINT"`

	// Region defaults to us-east-1.
	Region string `env:"S3_REGION" envDefault:"us-east-1"`

	// PathStyle enables path-style URLs (required for MinIO).
	PathStyle bool `env:"S3_PATH_STYLE"`

	// MaxSize caps the object size in bytes. Defaults to DefaultMaxSize.
	MaxSize int64 `env:"S3_MAX_SIZE"`
}

// DefaultRegion is used when Config.Region is empty.
const DefaultRegion = "us-east-1"

// Enabled reports whether credentials are configured.
func (c Config) Enabled() bool {
	return c.AccessKey != "" && c.SecretKey != ""
}

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.MaxSize <= 0 {
		c.MaxSize = DefaultMaxSize
	}
}

func (c *Config) validate() error {
	if c.AccessKey == "" {
		return fmt.Errorf("%w: access key is required", ErrInvalidConfig)
	}
	if c.SecretKey == "" {
		return fmt.Errorf("%w: secret key is required", ErrInvalidConfig)
	}
	return nil
}

// readLimited reads r fully, failing with ErrFileTooLarge past limit bytes.
func readLimited(r io.Reader, limit int64, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, name, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrFileTooLarge, name, limit)
	}
	return data, nil
}

// splitScheme returns the scheme of location ("" for plain paths) and the remainder.
func splitScheme(location string) (string, string) {
	scheme, rest, ok := strings.Cut(location, "://")
	if !ok || scheme == "" || strings.ContainsAny(scheme, `/\`) {
		return "", location
	}
	return strings.ToLower(scheme), rest
}
