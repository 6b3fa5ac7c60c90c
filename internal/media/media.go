// Package media uploads product and category images to the configured
// bucket and maps object keys to public URLs.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fekuna/boutique-catalog-service/internal/media/bucket"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

const (
	publicPathPrefix = "/storage/v1/object/public/"
	cacheControl     = "max-age=3600"
)

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrObjectExists    = bucket.ErrObjectExists
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// File is one image to upload.
type File struct {
	Name        string
	Size        int64 // -1 when unknown
	ContentType string
	Body        io.Reader
}

// ProgressFunc receives (fileIndex, percent, totalFiles).
type ProgressFunc func(index, percent, total int)

type Uploader struct {
	bucket     bucket.Bucket
	baseURL    string
	bucketName string
	logger     logger.ZapLogger
	now        func() time.Time
}

// NewUploader serves objects of bucketName under
// <publicBaseURL>/storage/v1/object/public/<bucketName>/.
func NewUploader(b bucket.Bucket, publicBaseURL, bucketName string, log logger.ZapLogger) *Uploader {
	return &Uploader{
		bucket:     b,
		baseURL:    strings.TrimRight(publicBaseURL, "/"),
		bucketName: bucketName,
		logger:     log,
		now:        time.Now,
	}
}

// PublicPath is the URL path under which objects are served.
func PublicPath(bucketName string) string {
	return publicPathPrefix + bucketName
}

func (u *Uploader) PublicURL(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return u.baseURL + PublicPath(u.bucketName) + "/" + strings.Join(segments, "/")
}

// ValidateName reports whether name carries an accepted image extension.
func ValidateName(name string) error {
	if !allowedExtensions[strings.ToLower(filepath.Ext(name))] {
		return fmt.Errorf("%q: %w", name, ErrUnsupportedType)
	}
	return nil
}

// UploadImage stores file at key and returns its public URL. Existing
// objects are never overwritten.
func (u *Uploader) UploadImage(ctx context.Context, file File, key string) (string, error) {
	if err := ValidateName(file.Name); err != nil {
		return "", err
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(file.Name)))
	}
	size := file.Size
	if size == 0 {
		size = -1
	}

	err := u.bucket.Put(ctx, bucket.Object{
		Key:          key,
		Body:         file.Body,
		Size:         size,
		ContentType:  contentType,
		CacheControl: cacheControl,
	})
	if err != nil {
		u.logger.Error("Error uploading image", zap.String("key", key), zap.Error(err))
		return "", err
	}
	return u.PublicURL(key), nil
}

// KeyFromURL extracts the object key from a public URL of this bucket.
func (u *Uploader) KeyFromURL(raw string) (string, bool) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	marker := PublicPath(u.bucketName) + "/"
	_, escaped, found := strings.Cut(parsed.EscapedPath(), marker)
	if !found || escaped == "" {
		return "", false
	}
	key, err := url.PathUnescape(escaped)
	if err != nil {
		return "", false
	}
	return key, true
}

// DeleteImage removes the object behind rawURL. URLs outside the bucket's
// public prefix are ignored.
func (u *Uploader) DeleteImage(ctx context.Context, rawURL string) error {
	key, ok := u.KeyFromURL(rawURL)
	if !ok {
		return nil
	}
	if err := u.bucket.Remove(ctx, key); err != nil {
		u.logger.Error("Error deleting image", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// UploadMultipleImagesWithProgress uploads files one at a time under
// <folder>/<unixMillis>_<index>_<name>, reporting 0 then 100 for each file.
// It stops at the first failure and returns the URLs stored so far.
func (u *Uploader) UploadMultipleImagesWithProgress(ctx context.Context, files []File, folder string, onProgress ProgressFunc) ([]string, error) {
	if onProgress == nil {
		onProgress = func(int, int, int) {}
	}

	urls := make([]string, 0, len(files))
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return urls, err
		}
		onProgress(i, 0, len(files))

		key := path.Join(folder, fmt.Sprintf("%d_%d_%s", u.now().UnixMilli(), i, path.Base(f.Name)))
		link, err := u.UploadImage(ctx, f, key)
		if err != nil {
			return urls, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		urls = append(urls, link)
		onProgress(i, 100, len(files))
	}
	return urls, nil
}
