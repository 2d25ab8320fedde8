// Package storage stages generated files in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Rana718/winegen/internal/types"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

type Config struct {
	Bucket       string
	Region       string
	Endpoint     string
	Prefix       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// objectAPI is the part of the S3 client the stager calls.
type objectAPI interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, opts ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Stager struct {
	client objectAPI
	bucket string
	prefix string
	logger *zap.Logger
}

type Option func(*Stager)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Stager) {
		s.logger = logger
	}
}

// New builds a stager from cfg. Static keys are used when both are set,
// otherwise the default AWS credential chain applies.
func New(ctx context.Context, cfg Config, opts ...Option) (*Stager, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: storage bucket is required", types.ErrInvalidConfig)
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return newStager(client, cfg, opts...), nil
}

func newStager(client objectAPI, cfg Config, opts ...Option) *Stager {
	s := &Stager{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureBucket creates the bucket if it does not exist.
func (s *Stager) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}

	var notFound *s3types.NotFound
	var noSuchBucket *s3types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("%w: failed to check bucket %s: %v", types.ErrResource, s.bucket, err)
	}

	s.logger.Info("creating bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var alreadyOwned *s3types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("%w: failed to create bucket %s: %v", types.ErrResource, s.bucket, err)
	}
	return nil
}

// ObjectKey places name under prefix/runID. Empty parts are skipped.
func ObjectKey(prefix, runID, name string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{strings.Trim(prefix, "/"), runID, strings.TrimPrefix(name, "/")} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return path.Join(parts...)
}

func contentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".csv":
		return "text/csv"
	case ".jsonl":
		return "application/x-ndjson"
	case ".parquet":
		return "application/vnd.apache.parquet"
	case ".db":
		return "application/vnd.sqlite3"
	default:
		return "application/octet-stream"
	}
}

// RelName is file relative to base with forward slashes, or its base name
// when file is outside base.
func RelName(base, file string) string {
	if base != "" {
		if rel, err := filepath.Rel(base, file); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.Base(file)
}

// Upload puts one local file under name and returns its key.
func (s *Stager) Upload(ctx context.Context, runID, file, name string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s not found", types.ErrMissingInput, file)
		}
		return "", fmt.Errorf("%w: failed to open %s: %v", types.ErrResource, file, err)
	}
	defer f.Close()

	key := ObjectKey(s.prefix, runID, name)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType(file)),
		Metadata:    map[string]string{"run-id": runID},
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to upload %s: %v", types.ErrResource, file, err)
	}
	s.logger.Info("staged file", zap.String("file", file), zap.String("bucket", s.bucket), zap.String("key", key))
	return key, nil
}

// Stage uploads files in order, keyed by their path relative to base, and
// stops at the first failure.
func (s *Stager) Stage(ctx context.Context, runID, base string, files []string) ([]string, error) {
	keys := make([]string, 0, len(files))
	for _, file := range files {
		key, err := s.Upload(ctx, runID, file, RelName(base, file))
		if err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
