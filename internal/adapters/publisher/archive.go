package publisher

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tarwn/consuming-logs/internal/application/common"
)

// ObjectPutter is the slice of the S3 client the archiver needs
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ArchiveConfig holds S3 archiver construction parameters
type ArchiveConfig struct {
	Bucket            string
	Prefix            string
	Region            string
	Endpoint          string // optional; set for S3-compatible stores such as MinIO
	UsePathStyle      bool
	DeleteAfterUpload bool
}

// Archiver uploads closed journal segments to a bucket
type Archiver struct {
	client            ObjectPutter
	bucket            string
	prefix            string
	deleteAfterUpload bool
	logger            common.Logger
}

// NewArchiver creates an archiver over an existing client
func NewArchiver(client ObjectPutter, cfg ArchiveConfig, logger common.Logger) (*Archiver, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	if logger == nil {
		logger = common.LoggerFromContext(context.Background())
	}
	return &Archiver{
		client:            client,
		bucket:            cfg.Bucket,
		prefix:            cfg.Prefix,
		deleteAfterUpload: cfg.DeleteAfterUpload,
		logger:            logger,
	}, nil
}

// NewS3Archiver loads AWS credentials from the default chain and creates an archiver
func NewS3Archiver(ctx context.Context, cfg ArchiveConfig, logger common.Logger) (*Archiver, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewArchiver(client, cfg, logger)
}

// Key returns the object key a segment is stored under
func (a *Archiver) Key(segmentPath string) string {
	return path.Join(a.prefix, filepath.Base(segmentPath))
}

// Upload stores one segment file
func (a *Archiver) Upload(ctx context.Context, segmentPath string) error {
	f, err := os.Open(segmentPath)
	if err != nil {
		return fmt.Errorf("failed to open segment: %w", err)
	}
	defer f.Close()

	key := a.Key(segmentPath)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:          aws.String(a.bucket),
		Key:             aws.String(key),
		Body:            f,
		ContentType:     aws.String("application/x-ndjson"),
		ContentEncoding: aws.String("zstd"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to s3://%s/%s: %w", segmentPath, a.bucket, key, err)
	}

	if a.deleteAfterUpload {
		if err := os.Remove(segmentPath); err != nil {
			return fmt.Errorf("failed to remove uploaded segment: %w", err)
		}
	}
	return nil
}

// RotateHook adapts Upload for WithRotateHook. Failures are logged; the
// segment stays on disk.
func (a *Archiver) RotateHook(ctx context.Context) func(path string) {
	return func(segmentPath string) {
		if err := a.Upload(ctx, segmentPath); err != nil {
			a.logger.Log("ERROR", fmt.Sprintf("[Archive] %v", err), map[string]interface{}{
				"segment": segmentPath,
				"bucket":  a.bucket,
			})
			return
		}
		a.logger.Log("INFO", "[Archive] Uploaded journal segment", map[string]interface{}{
			"segment": segmentPath,
			"key":     a.Key(segmentPath),
		})
	}
}
