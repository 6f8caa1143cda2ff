package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// SpacesStore uploads objects to a DigitalOcean Spaces bucket through the
// S3-compatible API.
type SpacesStore struct {
	client   *s3.Client
	bucket   string
	endpoint string
}

type SpacesOptions struct {
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	Endpoint  string
}

func NewSpacesStore(ctx context.Context, opts SpacesOptions) (*SpacesStore, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("spaces: bucket is required")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("spaces: load config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.Endpoint)
	})
	return &SpacesStore{client: client, bucket: opts.Bucket, endpoint: opts.Endpoint}, nil
}

// Put uploads the object with a public-read ACL and returns its public URL.
func (s *SpacesStore) Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("spaces: put %s: %w", key, err)
	}
	return s.publicURL(key), nil
}

func (s *SpacesStore) publicURL(key string) string {
	u, err := url.Parse(s.endpoint)
	if err != nil || u.Host == "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.endpoint, "/"), s.bucket, key)
	}
	return fmt.Sprintf("%s://%s.%s/%s", u.Scheme, s.bucket, u.Host, key)
}
