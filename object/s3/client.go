package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
)

// Client is the part of an S3 client a Backing uses. Implementations report
// a missing key with an error for which IsNoSuchKey returns true, and a
// failed If-Match condition with an error for which IsPreconditionFailed
// returns true.
type Client interface {
	// Put stores data under key. If matchETag is not empty the write only
	// succeeds if the stored object still has that ETag.
	Put(ctx context.Context, bucket, key string, data []byte, matchETag string) (etag string, err error)
	// Get returns the content stored under key.
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	// Stat returns the ETag of the object stored under key.
	Stat(ctx context.Context, bucket, key string) (etag string, err error)
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, bucket, key string) error
}

var (
	// ErrNoSuchKey is the error Client implementations may return for a
	// missing key.
	ErrNoSuchKey = errors.New("s3: no such key")
	// ErrPreconditionFailed is the error Client implementations may return
	// when the If-Match condition of a Put does not hold.
	ErrPreconditionFailed = errors.New("s3: precondition failed")
)

// IsNoSuchKey reports whether err means the requested key does not exist.
func IsNoSuchKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNoSuchKey) {
		return true
	}
	var resp minio.ErrorResponse
	return errors.As(err, &resp) && resp.Code == minio.NoSuchKey
}

// IsPreconditionFailed reports whether err means a conditional write was
// rejected.
func IsPreconditionFailed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrPreconditionFailed) {
		return true
	}
	var resp minio.ErrorResponse
	return errors.As(err, &resp) && (resp.Code == minio.PreconditionFailed || resp.StatusCode == http.StatusPreconditionFailed)
}

// minioClient adapts a *minio.Client to Client.
type minioClient struct {
	c *minio.Client
}

// NewMinioClient returns a Client backed by the given minio client.
func NewMinioClient(c *minio.Client) Client {
	return minioClient{c: c}
}

func (m minioClient) Put(ctx context.Context, bucket, key string, data []byte, matchETag string) (string, error) {
	var opts minio.PutObjectOptions
	if matchETag != "" {
		opts.SetMatchETag(matchETag)
	}
	info, err := m.c.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		return "", err
	}
	return info.ETag, nil
}

func (m minioClient) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := m.c.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject is lazy; Stat issues the request and surfaces NoSuchKey.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}

func (m minioClient) Stat(ctx context.Context, bucket, key string) (string, error) {
	info, err := m.c.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return "", err
	}
	return info.ETag, nil
}

func (m minioClient) Remove(ctx context.Context, bucket, key string) error {
	return m.c.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
}
