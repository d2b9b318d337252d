package document

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultS3Region is used when no region is configured.
const DefaultS3Region = "us-east-1"

// S3Config holds the S3 client settings. Empty credentials fall back to the
// default AWS credential chain.
type S3Config struct {
	Region          string
	Endpoint        string // optional, e.g. a MinIO URL
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	PathStyle       bool
}

// Environment variables read by S3ConfigFromEnv:
//
//	SKYMODEL_S3_REGION=<region> (default us-east-1)
//	SKYMODEL_S3_ENDPOINT=<url> (optional)
//	SKYMODEL_S3_PATH_STYLE=true|false (default false)
//	AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY / AWS_SESSION_TOKEN (optional)

// S3ConfigFromEnv builds an S3Config from the process environment.
func S3ConfigFromEnv() S3Config {
	return S3Config{
		Region:    os.Getenv("SKYMODEL_S3_REGION"),
		Endpoint:  os.Getenv("SKYMODEL_S3_ENDPOINT"),
		PathStyle: strings.EqualFold(os.Getenv("SKYMODEL_S3_PATH_STYLE"), "true"),
	}
}

// S3Fetcher reads documents addressed as s3://bucket/key.
type S3Fetcher struct {
	client *s3.Client
}

// NewS3Fetcher creates a fetcher from cfg.
func NewS3Fetcher(ctx context.Context, cfg S3Config) (*S3Fetcher, error) {
	region := cfg.Region
	if region == "" {
		region = DefaultS3Region
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewS3FetcherFromClient(client), nil
}

// NewS3FetcherFromClient wraps an existing client.
func NewS3FetcherFromClient(client *s3.Client) *S3Fetcher {
	return &S3Fetcher{client: client}
}

// Fetch implements Fetcher.
func (f *S3Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	bucket, key, err := ParseS3Location(location)
	if err != nil {
		return nil, err
	}
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &bucket, Key: &key})
	if err != nil {
		return nil, fmt.Errorf("%w: fetching '%s': %w", ErrFileIO, location, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading '%s': %w", ErrFileIO, location, err)
	}
	return data, nil
}

// ParseS3Location splits s3://bucket/key into its bucket and key.
func ParseS3Location(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid S3 location '%s': %w", ErrFileIO, location, err)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%w: invalid S3 location '%s', want s3://bucket/key", ErrFileIO, location)
	}
	return u.Host, key, nil
}
