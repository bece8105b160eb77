// Package s3 stores object.Object entities in a single S3 bucket.
//
// Keys are random 256-bit identifiers, URL-safe base64 encoded, drawn from
// crypto/rand when an object is created. Collisions are not checked for.
//
//	cfg, err := s3.ConfigFromEnv()
//	...
//	storage, err := s3.Open(cfg)
//	...
//	id, err := s3.ObjectCRUD{}.Create(ctx, storage, object.New([]byte("Hello, World!")))
package s3

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	noodle "github.com/glowcouch/storage-noodle"
)

// idSize is the number of random bytes of an object key.
const idSize = 32

// Backing is an S3 bucket used as backing storage for objects. It is safe
// for concurrent use.
type Backing struct {
	client      Client
	bucket      string
	conditional bool
	logger      *slog.Logger
}

// Option configures a Backing.
type Option func(*Backing)

// WithConditionalWrites sets whether updates are conditional writes
// (If-Match on the ETag read by the existence probe). Enabled by default;
// disable it for stores that do not support conditional PUT.
func WithConditionalWrites(enabled bool) Option {
	return func(b *Backing) {
		b.conditional = enabled
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backing) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New returns a Backing storing objects in bucket through client.
func New(client Client, bucket string, opts ...Option) *Backing {
	b := &Backing{
		client:      client,
		bucket:      bucket,
		conditional: true,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("backing", b.Name())
	return b
}

// Config holds the connection settings of a bucket.
type Config struct {
	Endpoint        string `env:"S3_ENDPOINT,required,notEmpty" yaml:"endpoint"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID" yaml:"access_key_id"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY" yaml:"secret_access_key"`
	SessionToken    string `env:"S3_SESSION_TOKEN" yaml:"session_token"`
	Region          string `env:"S3_REGION" envDefault:"us-east-1" yaml:"region"`
	Bucket          string `env:"S3_BUCKET,required,notEmpty" yaml:"bucket"`
	Secure          bool   `env:"S3_SECURE" envDefault:"true" yaml:"secure"`
	// PathStyle forces path-style bucket addressing, as used by minio.
	PathStyle bool `env:"S3_PATH_STYLE" yaml:"path_style"`
}

// ConfigFromEnv reads a Config from the S3_* environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("s3: parse environment: %w", err)
	}
	return cfg, nil
}

// Open connects to the bucket described by cfg with a minio client.
func Open(cfg Config, opts ...Option) (*Backing, error) {
	mopts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		Secure: cfg.Secure,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		mopts.BucketLookup = minio.BucketLookupPath
	}
	client, err := minio.New(cfg.Endpoint, mopts)
	if err != nil {
		return nil, fmt.Errorf("s3: connect %s: %w", cfg.Endpoint, err)
	}
	return New(NewMinioClient(client), cfg.Bucket, opts...), nil
}

// Name implements noodle.BackingStorage.
func (b *Backing) Name() string {
	return "s3:" + b.bucket
}

// Bucket returns the bucket name.
func (b *Backing) Bucket() string {
	return b.bucket
}

// ParseRawID implements noodle.BackingStorage. It accepts keys in the
// format produced by NewID.
func (b *Backing) ParseRawID(s string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return "", noodle.NewRawIDError(s, "string", err)
	}
	if len(raw) != idSize {
		return "", noodle.NewRawIDError(s, "string", fmt.Errorf("got %d bytes, want %d", len(raw), idSize))
	}
	return s, nil
}

// NewID returns a new random object key.
func NewID() (string, error) {
	var raw [idSize]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", fmt.Errorf("s3: generate id: %w", err)
	}
	return base64.URLEncoding.EncodeToString(raw[:]), nil
}

var _ noodle.BackingStorage[string] = (*Backing)(nil)
