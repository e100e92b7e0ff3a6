package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const s3Scheme = "s3://"

// S3Config points the S3 client at a region and, for S3 compatible stores,
// a custom endpoint.
type S3Config struct {
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
}

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Source opens dataset files from the local filesystem or, for s3:// paths,
// from an object store.
type Source struct {
	objects objectGetter
}

// NewSource returns a Source. client may be nil when no s3:// paths are used.
func NewSource(client *s3.Client) *Source {
	s := &Source{}
	if client != nil {
		s.objects = client
	}
	return s
}

// NewS3Client builds an S3 client from the default credential chain.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error
	if region := strings.TrimSpace(cfg.Region); region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// IsRemote reports whether path refers to an object store.
func IsRemote(path string) bool {
	return strings.HasPrefix(strings.TrimSpace(path), s3Scheme)
}

// Open returns a reader for path. Missing files and objects are reported
// with an error matching fs.ErrNotExist.
func (s *Source) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	path = strings.TrimSpace(path)
	if !IsRemote(path) {
		return os.Open(path)
	}

	bucket, key, err := splitObjectPath(path)
	if err != nil {
		return nil, err
	}
	if s == nil || s.objects == nil {
		return nil, fmt.Errorf("%s: s3 client is not configured", path)
	}

	out, err := s.objects.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("%s: %w", path, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("get object %s: %w", path, err)
	}
	return out.Body, nil
}

func splitObjectPath(path string) (string, string, error) {
	bucket, key, ok := strings.Cut(strings.TrimPrefix(path, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid object path %q, expected s3://bucket/key", path)
	}
	return bucket, key, nil
}
