package registry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/config"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/ml"
)

// s3API is the slice of the S3 client the registry uses.
type s3API interface {
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store keeps the production bundle under a fixed bucket and key. Uploads
// go through a single PutObject request, so readers see either the old or
// the new bundle, never a partial write.
type S3Store struct {
	api    s3API
	bucket string
	key    string
	logger *slog.Logger
}

func NewS3Store(ctx context.Context, cfg config.S3Config, logger *slog.Logger) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{api: client, bucket: cfg.Bucket, key: cfg.ModelKey, logger: logger}, nil
}

func (s *S3Store) Exists(ctx context.Context) (bool, error) {
	_, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check production model: %w", err)
	}
	return true, nil
}

func (s *S3Store) Load(ctx context.Context) (*ml.Estimator, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch production model: %w", err)
	}
	defer out.Body.Close()

	est := &ml.Estimator{}
	if err := est.Load(out.Body); err != nil {
		return nil, fmt.Errorf("failed to decode production model: %w", err)
	}

	s.logger.Info("loaded production model", "bucket", s.bucket, "key", s.key)
	return est, nil
}

func (s *S3Store) Save(ctx context.Context, est *ml.Estimator) error {
	var buf bytes.Buffer
	if err := est.Save(&buf); err != nil {
		return fmt.Errorf("failed to encode estimator: %w", err)
	}

	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/gzip"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload estimator: %w", err)
	}

	s.logger.Info("uploaded production model", "bucket", s.bucket, "key", s.key, "bytes", buf.Len())
	return nil
}
