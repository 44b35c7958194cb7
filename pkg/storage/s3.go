package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectGetter is the subset of *s3.Client used by S3Storage.
type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Storage reads attachments from S3-compatible object storage.
type S3Storage struct {
	client objectGetter
	cfg    Config
}

// New creates a new S3Storage with the given configuration.
func New(cfg Config) (*S3Storage, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &S3Storage{
		client: s3.New(s3.Options{}, opts...),
		cfg:    cfg,
	}, nil
}

// Open downloads the object at location ("s3://bucket/key", or a bare key
// resolved against Config.Bucket).
func (s *S3Storage) Open(ctx context.Context, location string) (*File, error) {
	bucket, key, err := s.resolve(location)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrUnreadable)
	}
	defer out.Body.Close()

	if out.ContentLength != nil && *out.ContentLength > s.cfg.MaxSize {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrFileTooLarge, location, s.cfg.MaxSize)
	}

	data, err := readLimited(out.Body, s.cfg.MaxSize, location)
	if err != nil {
		return nil, err
	}

	name := path.Base(key)
	contentType := aws.ToString(out.ContentType)
	if contentType == "" || isGeneric(contentType) {
		contentType = DetectMIME(name, data)
	}

	return &File{
		Name:        name,
		ContentType: contentType,
		Content:     data,
	}, nil
}

// Healthcheck returns a readiness check that verifies the default bucket is reachable.
// Without a default bucket the check only validates configuration.
func (s *S3Storage) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		if s.cfg.Bucket == "" {
			return nil
		}
		_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.cfg.Bucket)})
		if err != nil {
			return wrapS3Error(err, ErrUnreadable)
		}
		return nil
	}
}

// resolve splits location into bucket and key.
func (s *S3Storage) resolve(location string) (string, string, error) {
	scheme, rest := splitScheme(location)
	switch scheme {
	case "s3":
		bucket, key, ok := strings.Cut(rest, "/")
		if !ok || bucket == "" || key == "" {
			return "", "", fmt.Errorf("%w: %q, want s3://bucket/key", ErrInvalidLocation, location)
		}
		return bucket, key, nil
	case "":
		key := strings.TrimPrefix(rest, "/")
		if s.cfg.Bucket == "" || key == "" {
			return "", "", fmt.Errorf("%w: %q has no bucket", ErrInvalidLocation, location)
		}
		return s.cfg.Bucket, key, nil
	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}
}
