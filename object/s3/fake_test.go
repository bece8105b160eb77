package s3

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"sync"
)

// memClient is an in-memory Client.
type memClient struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
	removes int

	// Hooks run before the corresponding call, under no lock.
	beforePut  func(key string)
	failPut    error
	failGet    error
	failStat   error
	failRemove error
}

func newMemClient() *memClient {
	return &memClient{objects: make(map[string][]byte)}
}

func etagOf(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

func (c *memClient) path(bucket, key string) string {
	return bucket + "/" + key
}

func (c *memClient) Put(_ context.Context, bucket, key string, data []byte, matchETag string) (string, error) {
	if c.beforePut != nil {
		c.beforePut(key)
	}
	if c.failPut != nil {
		return "", c.failPut
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	p := c.path(bucket, key)
	if matchETag != "" {
		cur, ok := c.objects[p]
		if !ok {
			return "", ErrNoSuchKey
		}
		if etagOf(cur) != matchETag {
			return "", ErrPreconditionFailed
		}
	}
	c.objects[p] = bytes.Clone(data)
	return etagOf(data), nil
}

func (c *memClient) Get(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	if c.failGet != nil {
		return nil, c.failGet
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.objects[c.path(bucket, key)]
	if !ok {
		return nil, ErrNoSuchKey
	}
	return io.NopCloser(bytes.NewReader(bytes.Clone(data))), nil
}

func (c *memClient) Stat(_ context.Context, bucket, key string) (string, error) {
	if c.failStat != nil {
		return "", c.failStat
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.objects[c.path(bucket, key)]
	if !ok {
		return "", ErrNoSuchKey
	}
	return etagOf(data), nil
}

func (c *memClient) Remove(_ context.Context, bucket, key string) error {
	if c.failRemove != nil {
		return c.failRemove
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removes++
	delete(c.objects, c.path(bucket, key))
	return nil
}

func (c *memClient) set(bucket, key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects[c.path(bucket, key)] = data
}

func (c *memClient) drop(bucket, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.objects, c.path(bucket, key))
}

func (c *memClient) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.objects)
}
