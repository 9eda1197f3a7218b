package s3client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appConfig "podbatch/config"
	"podbatch/internal/remote"
)

const scheme = "s3://"

// API is the subset of the S3 client used for listing, downloading and deleting.
type API interface {
	s3.ListObjectsV2APIClient
	manager.DownloadAPIClient
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Client struct {
	s3Client API
	config   *appConfig.S3Config
	logger   *slog.Logger
}

func New(cfg *appConfig.S3Config) (*Client, error) {
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     cfg.AccessKey,
				SecretAccessKey: cfg.SecretKey,
			},
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Client *s3.Client
	if cfg.ApiURL != "" {
		s3Client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.ApiURL)
			o.UsePathStyle = true
		})
	} else {
		s3Client = s3.NewFromConfig(awsConfig)
	}

	return NewWithAPI(s3Client, cfg), nil
}

// NewWithAPI wraps an existing S3 API implementation.
func NewWithAPI(api API, cfg *appConfig.S3Config) *Client {
	return &Client{
		s3Client: api,
		config:   cfg,
		logger:   slog.Default(),
	}
}

// List returns every object under the location prefix. Keys ending in "/"
// are folder markers and are reported as directories.
func (c *Client) List(ctx context.Context, location string) ([]remote.Entry, error) {
	bucketName, prefix := c.parseLocation(location)
	if bucketName == "" {
		return nil, &remote.OpError{Op: "list", Path: location, Err: errors.New("no bucket configured")}
	}

	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var entries []remote.Entry
	paginator := s3.NewListObjectsV2Paginator(c.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucketName),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &remote.OpError{Op: "list", Path: location, Err: fmt.Errorf("failed to list objects: %w", err)}
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			rel := strings.TrimPrefix(key, prefix)
			if rel == "" {
				continue
			}
			entries = append(entries, remote.Entry{
				Path:  strings.TrimSuffix(rel, "/"),
				Name:  path.Base(rel),
				Size:  aws.ToInt64(obj.Size),
				IsDir: strings.HasSuffix(key, "/"),
			})
		}
	}

	c.logger.Debug("listed bucket", "bucket", bucketName, "prefix", prefix, "objects", len(entries))
	return entries, nil
}

func (c *Client) Copy(ctx context.Context, remotePath, localPath string) error {
	bucketName, key := c.parseLocation(remotePath)

	file, err := os.Create(localPath)
	if err != nil {
		return &remote.OpError{Op: "copy", Path: remotePath, Err: fmt.Errorf("failed to create local file: %w", err)}
	}

	downloader := manager.NewDownloader(c.s3Client)
	n, err := downloader.Download(ctx, file, &s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
	})
	closeErr := file.Close()
	if err != nil {
		return &remote.OpError{Op: "copy", Path: remotePath, Err: classify(err)}
	}
	if closeErr != nil {
		return &remote.OpError{Op: "copy", Path: remotePath, Err: closeErr}
	}

	c.logger.Debug("downloaded object", "bucket", bucketName, "key", key, "bytes", n)
	return nil
}

func (c *Client) Delete(ctx context.Context, remotePath string) error {
	bucketName, key := c.parseLocation(remotePath)

	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return &remote.OpError{Op: "delete", Path: remotePath, Err: classify(err)}
	}
	return nil
}

// parseLocation accepts either "s3://bucket/key" or a bare key resolved
// against the configured bucket.
func (c *Client) parseLocation(location string) (bucket, key string) {
	if strings.HasPrefix(location, scheme) {
		rest := strings.TrimPrefix(location, scheme)
		bucket, key, _ = strings.Cut(rest, "/")
		return bucket, strings.TrimPrefix(key, "/")
	}
	return c.config.BucketName, strings.TrimPrefix(location, "/")
}

func classify(err error) error {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return fmt.Errorf("%w: %v", remote.ErrNotFound, err)
	}
	return err
}
