package imageio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/joho/godotenv"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// ErrS3NotConfigured is returned when the bucket or credentials are missing
var ErrS3NotConfigured = errors.New("s3 upload is not configured")

// S3Config holds the object storage settings, usually loaded from the environment
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string // empty for AWS, set for S3-compatible stores
	Region    string
	Bucket    string
	Prefix    string // key prefix, e.g. "renders/"
}

// LoadS3ConfigFromEnv reads S3_* variables, loading envFile first when it exists.
// Variables already set in the process environment take precedence.
func LoadS3ConfigFromEnv(envFile string) (S3Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return S3Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    os.Getenv("S3_REGION"),
		Bucket:    os.Getenv("S3_BUCKET"),
		Prefix:    os.Getenv("S3_PREFIX"),
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	return cfg, cfg.Validate()
}

// Validate reports missing required settings
func (c S3Config) Validate() error {
	switch {
	case c.Bucket == "":
		return fmt.Errorf("%w: S3_BUCKET is empty", ErrS3NotConfigured)
	case c.AccessKey == "" || c.SecretKey == "":
		return fmt.Errorf("%w: S3_ACCESS_KEY and S3_SECRET_KEY are required", ErrS3NotConfigured)
	}
	return nil
}

// ObjectPutter is the subset of the S3 client used for uploads
type ObjectPutter interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// NewS3Client creates a path-style S3 client from static credentials
func NewS3Client(cfg S3Config) (*s3.S3, error) {
	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return s3.New(sess), nil
}

// S3Sink encodes the image and uploads it as a single object
type S3Sink struct {
	client ObjectPutter
	bucket string
	key    string
	format Format
	logger core.Logger
}

// NewS3Sink creates a sink that uploads to prefix+name in the configured bucket.
// The object format follows the extension of name.
func NewS3Sink(client ObjectPutter, cfg S3Config, name string, logger core.Logger) (*S3Sink, error) {
	format, err := FormatFromFilename(name)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &S3Sink{
		client: client,
		bucket: cfg.Bucket,
		key:    path.Join(cfg.Prefix, name),
		format: format,
		logger: logger,
	}, nil
}

// Key returns the object key the sink uploads to
func (s *S3Sink) Key() string {
	return s.key
}

// WriteImage encodes the image in memory and uploads it
func (s *S3Sink) WriteImage(ctx context.Context, pixels []byte, width, height int) error {
	var buf bytes.Buffer
	if err := EncodePixels(&buf, pixels, width, height, s.format); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(buf.Len())
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(s.format.ContentType()),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", s.key, err)
	}

	s.logger.Printf("Uploaded s3://%s/%s (%d bytes)\n", s.bucket, s.key, size)
	return nil
}
