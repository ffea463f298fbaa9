package docsource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/hotelpref"
)

// maxDocumentBytes bounds how much of an object is read into memory.
const maxDocumentBytes = 4 << 20

// ObjectConfig locates the preference document in an S3-compatible bucket
// such as Cloudflare R2 or MinIO.
type ObjectConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Key       string
}

// ObjectSource reads the preference document from object storage.
type ObjectSource struct {
	client *minio.Client
	bucket string
	key    string
	logger *slog.Logger
}

// NewObjectSource constructs the source.
func NewObjectSource(cfg ObjectConfig, logger *slog.Logger) (*ObjectSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(cfg.Bucket) == "" || strings.TrimSpace(cfg.Key) == "" {
		return nil, fmt.Errorf("object source requires bucket and key")
	}
	useSSL := !strings.HasPrefix(strings.ToLower(strings.TrimSpace(cfg.Endpoint)), "http://")
	client, err := minio.New(sanitizeEndpoint(cfg.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       useSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object storage client: %w", err)
	}
	return &ObjectSource{
		client: client,
		bucket: cfg.Bucket,
		key:    cfg.Key,
		logger: logger.With("component", "docsource.object"),
	}, nil
}

// Load implements hotelpref.DocumentSource.
func (s *ObjectSource) Load(ctx context.Context) (string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("get object %s/%s: %w", s.bucket, s.key, err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		return "", fmt.Errorf("stat object %s/%s: %w", s.bucket, s.key, err)
	}
	data, err := io.ReadAll(io.LimitReader(obj, maxDocumentBytes))
	if err != nil {
		return "", fmt.Errorf("read object %s/%s: %w", s.bucket, s.key, err)
	}
	s.logger.Info("preference document loaded", "bucket", s.bucket, "key", s.key, "size", info.Size, "etag", info.ETag)
	return string(data), nil
}

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if idx := strings.Index(raw, "/"); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}

var _ hotelpref.DocumentSource = (*ObjectSource)(nil)
