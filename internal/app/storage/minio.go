package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Archiver keeps accepted uploads in object storage for later replay or
// audit. Archiving is optional and best-effort; failures never block a
// request.
type Archiver struct {
	client *minio.Client
	bucket string
	log    *zap.Logger
}

// Options are the MinIO connection parameters.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// New connects an archiver and ensures the bucket exists.
func New(ctx context.Context, opts Options, log *zap.Logger) (*Archiver, error) {
	if log == nil {
		log = zap.NewNop()
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("creating bucket %s: %w", opts.Bucket, err)
		}
	}

	return &Archiver{client: client, bucket: opts.Bucket, log: log}, nil
}

// Archive uploads the local file under a date-partitioned key and
// returns the object key. A nil archiver is a no-op.
func (a *Archiver) Archive(ctx context.Context, localPath, originalName string) (string, error) {
	if a == nil {
		return "", nil
	}
	key := fmt.Sprintf("uploads/%s/%s%s",
		time.Now().UTC().Format("2006/01/02"),
		uuid.New().String(),
		filepath.Ext(originalName))

	if _, err := a.client.FPutObject(ctx, a.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	}); err != nil {
		return "", fmt.Errorf("archiving %s: %w", originalName, err)
	}
	a.log.Debug("upload archived", zap.String("key", key))
	return key, nil
}
