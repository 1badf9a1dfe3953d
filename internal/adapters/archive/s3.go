package archive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config describes an S3 or S3-compatible (MinIO, Spaces, R2) bucket.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // empty for AWS itself
	AccessKeyID     string // empty to use the default credential chain
	SecretAccessKey string
}

// objectPutter is the slice of the S3 client the store uses.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes snapshots as objects in a bucket.
type S3Store struct {
	client objectPutter
	bucket string
}

// NewS3Store builds an S3 client from cfg.
// PRE: cfg.Bucket and cfg.Region are set
// POST: Returns a store using path-style addressing so custom endpoints work
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("archive: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	slog.Info("archive_event", "event", "s3_store_ready", "bucket", cfg.Bucket, "endpoint", cfg.Endpoint)
	return &S3Store{client: client, bucket: cfg.Bucket}, nil
}

// Put uploads body as object key and returns its s3:// URI.
// PRE: key passes CleanKey
// POST: Object exists with exactly body; an existing object is replaced
func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	clean, err := CleanKey(key)
	if err != nil {
		return "", err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(clean),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		slog.Error("archive_event", "event", "s3_put_failed", "bucket", s.bucket, "key", clean, "error", err)
		return "", fmt.Errorf("archive: put s3://%s/%s: %w", s.bucket, clean, err)
	}

	location := fmt.Sprintf("s3://%s/%s", s.bucket, clean)
	slog.Info("archive_event", "event", "report_written", "backend", "s3", "path", location, "bytes", len(body))
	return location, nil
}
