package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/leobarberi/Projeto-organizador-react-version2/internal/config"
	"github.com/leobarberi/Projeto-organizador-react-version2/internal/core"
)

// deleteBatchSize is the DeleteObjects limit per request.
const deleteBatchSize = 1000

// S3Store keeps each file as one object in an S3-compatible bucket.
//
// Object keys are "<prefix><id>/<escaped name>", so listing the prefix
// yields every file's id, name, size and upload time without a separate
// index.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
	logger *slog.Logger
}

// S3StoreOption configures an S3Store.
type S3StoreOption func(*S3Store)

// WithLogger sets the logger used for bucket management messages.
func WithLogger(logger *slog.Logger) S3StoreOption {
	return func(s *S3Store) {
		s.logger = logger
	}
}

// NewS3Store creates a store for cfg.Bucket. It does not contact the
// service; call EnsureBucket for that.
func NewS3Store(cfg config.S3Config, opts ...S3StoreOption) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	if cfg.AccessKeyID == "" {
		return nil, errors.New("s3 access key is required")
	}
	if cfg.SecretAccessKey == "" {
		return nil, errors.New("s3 secret key is required")
	}

	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	if endpoint != "" {
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid s3 endpoint: %w", err)
		}
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	store := &S3Store{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// EnsureBucket creates the bucket if it does not exist.
func (s *S3Store) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("check bucket %q: %w", s.bucket, err)
	}

	s.logger.Info("creating storage bucket", "bucket", s.bucket)
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("create bucket %q: %w", s.bucket, err)
	}
	return nil
}

// Bucket returns the bucket name.
func (s *S3Store) Bucket() string {
	return s.bucket
}

func (s *S3Store) objectKey(id, name string) string {
	return s.prefix + id + "/" + url.PathEscape(name)
}

// parseKey splits an object key back into a file id and name.
func (s *S3Store) parseKey(key string) (id, name string, ok bool) {
	rest, found := strings.CutPrefix(key, s.prefix)
	if !found {
		return "", "", false
	}
	id, escaped, found := strings.Cut(rest, "/")
	if !found {
		return "", "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", "", false
	}
	name, err := url.PathUnescape(escaped)
	if err != nil {
		return "", "", false
	}
	return id, name, true
}

func (s *S3Store) Save(ctx context.Context, name string, data []byte) (core.FileInfo, error) {
	info, err := newFileInfo(name, len(data))
	if err != nil {
		return core.FileInfo{}, err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.objectKey(info.ID, name)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/octet-stream"),
	})
	if err != nil {
		return core.FileInfo{}, fmt.Errorf("upload object: %w", err)
	}
	// The object's LastModified has second precision; keep the listing and
	// the returned info consistent.
	info.UploadedAt = info.UploadedAt.Truncate(time.Second)
	return info, nil
}

func (s *S3Store) List(ctx context.Context) ([]core.FileInfo, error) {
	files := []core.FileInfo{}
	err := s.eachObject(ctx, s.prefix, func(obj types.Object) {
		id, name, ok := s.parseKey(aws.ToString(obj.Key))
		if !ok {
			return
		}
		files = append(files, core.FileInfo{
			ID:         id,
			Name:       name,
			UploadedAt: aws.ToTime(obj.LastModified).UTC(),
			Size:       aws.ToInt64(obj.Size),
		})
	})
	if err != nil {
		return nil, err
	}
	sortNewestFirst(files)
	return files, nil
}

// findKey returns the object key of a file id.
func (s *S3Store) findKey(ctx context.Context, id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", core.ErrFileNotFound
	}
	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(s.prefix + id + "/"),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return "", fmt.Errorf("find object: %w", err)
	}
	if len(out.Contents) == 0 {
		return "", core.ErrFileNotFound
	}
	return aws.ToString(out.Contents[0].Key), nil
}

func (s *S3Store) Get(ctx context.Context, id string) ([]byte, error) {
	key, err := s.findKey(ctx, id)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, core.ErrFileNotFound
		}
		return nil, fmt.Errorf("download object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}
	return data, nil
}

func (s *S3Store) Delete(ctx context.Context, id string) error {
	key, err := s.findKey(ctx, id)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// Clear deletes every object under the prefix in batches.
func (s *S3Store) Clear(ctx context.Context) (int, error) {
	var keys []types.ObjectIdentifier
	err := s.eachObject(ctx, s.prefix, func(obj types.Object) {
		if _, _, ok := s.parseKey(aws.ToString(obj.Key)); ok {
			keys = append(keys, types.ObjectIdentifier{Key: obj.Key})
		}
	})
	if err != nil {
		return 0, err
	}

	deleted := 0
	for start := 0; start < len(keys); start += deleteBatchSize {
		end := min(start+deleteBatchSize, len(keys))
		out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{Objects: keys[start:end]},
		})
		if err != nil {
			return deleted, fmt.Errorf("delete objects: %w", err)
		}
		deleted += len(out.Deleted)
		if len(out.Errors) > 0 {
			e := out.Errors[0]
			return deleted, fmt.Errorf("delete object %s: %s", aws.ToString(e.Key), aws.ToString(e.Message))
		}
	}
	return deleted, nil
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (s *S3Store) Close() error { return nil }

func (s *S3Store) eachObject(ctx context.Context, prefix string, fn func(types.Object)) error {
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			fn(obj)
		}
	}
	return nil
}
