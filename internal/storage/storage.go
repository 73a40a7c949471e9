// Package storage keeps uploaded media either on local disk or in DigitalOcean Spaces.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/rs/zerolog/log"
)

// Storage saves one uploaded file and returns the URL it is served from.
type Storage interface {
	Save(ctx context.Context, filename, contentType string, src io.Reader) (string, error)
}

type LocalStorage struct {
	dir       string
	publicURL string
	now       func() time.Time
}

// NewLocalStorage writes into dir; files are expected to be served under publicURL + "/uploads".
func NewLocalStorage(dir, publicURL string) *LocalStorage {
	return &LocalStorage{dir: dir, publicURL: strings.TrimSuffix(publicURL, "/"), now: time.Now}
}

func (ls *LocalStorage) Dir() string { return ls.dir }

type SpacesStorage struct {
	uploader *s3manager.Uploader
	bucket   string
	cdnURL   string
	now      func() time.Time
}

func NewSpacesStorage(endpoint, region, bucket, cdnURL, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SpacesStorage{
		uploader: s3manager.NewUploader(sess),
		bucket:   bucket,
		cdnURL:   strings.TrimSuffix(cdnURL, "/"),
		now:      time.Now,
	}, nil
}

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	safeExt     = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)
)

// normalizeFilename makes a unique name without spaces or path separators: basename_timestamp.ext
func normalizeFilename(original string, now time.Time) string {
	original = filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	ext := strings.ToLower(filepath.Ext(original))
	if !safeExt.MatchString(ext) {
		ext = ""
	}
	base := strings.TrimSuffix(original, filepath.Ext(original))
	base = strings.ReplaceAll(base, " ", "_")
	base = unsafeChars.ReplaceAllString(base, "")
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s_%s%s", base, now.Format("20060102_150405.000000"), ext)
}

func (ls *LocalStorage) Save(_ context.Context, filename, _ string, src io.Reader) (string, error) {
	name := normalizeFilename(filename, ls.now())
	log.Debug().Str("original", filename).Str("normalized", name).Msg("file upload normalized")

	if err := os.MkdirAll(ls.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(filepath.Join(ls.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return ls.publicURL + path.Join("/uploads", name), nil
}

func (ss *SpacesStorage) Save(ctx context.Context, filename, contentType string, src io.Reader) (string, error) {
	name := normalizeFilename(filename, ss.now())
	key := "uploads/" + name
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = ContentTypeFor(name)
	}

	_, err := ss.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upload file to Spaces")
		return "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}
	return fmt.Sprintf("%s/%s", ss.cdnURL, key), nil
}

// ContentTypeFor guesses a media type from the file extension.
func ContentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".avi":
		return "video/x-msvideo"
	case ".mov":
		return "video/quicktime"
	default:
		return "application/octet-stream"
	}
}
