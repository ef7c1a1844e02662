package staging

import (
	"bytes"
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/najamsyed/ESPA/internal/logger"
)

// GCSStager stages the working set against a Google Cloud Storage bucket:
// the order's stats live under <orderPrefix>/stats/ and artifacts are pushed
// back under <orderPrefix>/<work-dir-name>/. Transfer verification compares
// the object MD5 reported by GCS with a locally computed digest.
type GCSStager struct {
	client      *storage.Client
	bucket      string
	orderPrefix string
	log         *logger.Logger
}

// NewGCSStager creates a GCS-backed stager.
func NewGCSStager(ctx context.Context, bucket, orderPrefix string, log *logger.Logger) (*GCSStager, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSStager{
		client:      client,
		bucket:      bucket,
		orderPrefix: strings.Trim(orderPrefix, "/"),
		log:         log.WithComponent("gcs-stager"),
	}, nil
}

// Fetch downloads every object under the order's stats prefix into localDir,
// replacing any previous working copy.
func (g *GCSStager) Fetch(ctx context.Context, localDir string) error {
	if err := os.RemoveAll(localDir); err != nil {
		return fmt.Errorf("failed to clear work directory %s: %w", localDir, err)
	}
	if err := os.MkdirAll(localDir, 0755); err != nil {
		return fmt.Errorf("failed to create work directory %s: %w", localDir, err)
	}

	prefix := g.orderPrefix + "/stats/"
	g.log.Info("Fetching statistics from bucket", logger.Fields{
		"bucket": g.bucket,
		"prefix": prefix,
	})

	bucket := g.client.Bucket(g.bucket)
	it := bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	count := 0
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to list gs://%s/%s: %w", g.bucket, prefix, err)
		}
		if strings.HasSuffix(attrs.Name, "/") {
			continue
		}

		data, err := g.read(ctx, attrs.Name)
		if err != nil {
			return err
		}

		localPath := filepath.Join(localDir, path.Base(attrs.Name))
		if err := os.WriteFile(localPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", localPath, err)
		}
		count++
	}

	g.log.Info("Fetch complete", logger.Fields{"files": count})
	return nil
}

// Push uploads every file in localDir under the order prefix and verifies
// each object's MD5 against the local file.
func (g *GCSStager) Push(ctx context.Context, localDir string) error {
	remotePrefix := g.orderPrefix + "/" + filepath.Base(localDir)

	entries, err := os.ReadDir(localDir)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", localDir, err)
	}

	g.log.Info("Publishing artifacts to bucket", logger.Fields{
		"bucket": g.bucket,
		"prefix": remotePrefix,
		"files":  len(entries),
	})

	bucket := g.client.Bucket(g.bucket)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		localPath := filepath.Join(localDir, entry.Name())
		data, err := os.ReadFile(localPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", localPath, err)
		}

		objectName := remotePrefix + "/" + entry.Name()
		w := bucket.Object(objectName).NewWriter(ctx)
		w.ContentType = contentType(entry.Name())
		if _, err := w.Write(data); err != nil {
			w.Close()
			return fmt.Errorf("failed to upload gs://%s/%s: %w", g.bucket, objectName, err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("failed to finalize gs://%s/%s: %w", g.bucket, objectName, err)
		}

		attrs, err := bucket.Object(objectName).Attrs(ctx)
		if err != nil {
			return fmt.Errorf("failed to stat gs://%s/%s: %w", g.bucket, objectName, err)
		}
		local := md5.Sum(data)
		if !bytes.Equal(local[:], attrs.MD5) {
			return fmt.Errorf("checksum mismatch between %s and gs://%s/%s",
				localPath, g.bucket, objectName)
		}
	}
	return nil
}

// Close closes the GCS client.
func (g *GCSStager) Close() error {
	return g.client.Close()
}

func (g *GCSStager) read(ctx context.Context, objectName string) ([]byte, error) {
	r, err := g.client.Bucket(g.bucket).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open gs://%s/%s: %w", g.bucket, objectName, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read gs://%s/%s: %w", g.bucket, objectName, err)
	}
	return data, nil
}

func contentType(filename string) string {
	switch filepath.Ext(filename) {
	case ".csv":
		return "text/csv"
	case ".png":
		return "image/png"
	case ".html":
		return "text/html"
	default:
		return "application/octet-stream"
	}
}
