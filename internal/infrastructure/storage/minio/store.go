// Package minio provides the object-storage-backed resource store for
// clustered deployments, where the bulk lookup tables are published to a
// shared bucket by the ingestion pipeline instead of being baked into every
// container image.
package minio

import (
	"context"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/biotext/bioground/internal/config"
	apperrors "github.com/biotext/bioground/pkg/errors"
)

// NewClient connects to the object store per cfg.
func NewClient(cfg config.MinIOConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeExternalService, "failed to create object storage client")
	}
	return client, nil
}

// Store reads resource tables from a bucket.  It satisfies
// resources.ResourceStore; object keys are prefix + "/" + name.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore constructs a Store over client.
func NewStore(client *minio.Client, bucket, prefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: prefix}
}

// Open fetches the named object.  A missing key maps to a CodeNotFound
// AppError, mirroring the filesystem store, so optional tables stay optional.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := path.Join(s.prefix, name)
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeExternalService,
			"failed to fetch resource object").WithDetail(key)
	}
	// GetObject is lazy; a stat forces the first round trip so missing keys
	// surface here instead of mid-parse.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, apperrors.NotFound("resource object not found").WithDetail(key)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeExternalService,
			"failed to stat resource object").WithDetail(key)
	}
	return obj, nil
}

//Personal.AI order the ending
