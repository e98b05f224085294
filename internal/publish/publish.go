// Package publish uploads the build output to S3.
package publish

import (
	"context"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/wayfind-dev/wayfind/internal/errors"
)

// ObjectPutter is the subset of the S3 client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader copies a local directory tree into an S3 bucket.
type Uploader struct {
	client ObjectPutter
	bucket string
	prefix string
	log    *slog.Logger
}

// NewUploader creates an uploader targeting bucket with the given key
// prefix. A non-empty prefix gains a trailing slash.
func NewUploader(client ObjectPutter, bucket, prefix string, logger *slog.Logger) *Uploader {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Uploader{
		client: client,
		bucket: bucket,
		prefix: prefix,
		log:    logger.With("component", "publish"),
	}
}

// Upload walks dir and puts every regular file under the configured
// prefix, keyed by its slash-separated relative path. Files are uploaded
// in sorted order so repeated runs behave identically. It returns the
// number of files uploaded.
func (u *Uploader) Upload(ctx context.Context, dir string) (int, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return 0, errors.New("E082").WithDetail("Output directory not found: " + dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	sort.Strings(files)

	for _, path := range files {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return 0, err
		}
		key := u.prefix + filepath.ToSlash(rel)

		if err := u.putFile(ctx, path, key); err != nil {
			return 0, errors.New("E080").
				WithDetail("Uploading " + key + " to " + u.bucket).
				Wrap(err)
		}
		u.log.Info("uploaded", "key", key)
	}

	return len(files), nil
}

func (u *Uploader) putFile(ctx context.Context, path, key string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType(path)),
	})
	return err
}

// contentType maps a file extension to a MIME type, defaulting to
// application/octet-stream.
func contentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
