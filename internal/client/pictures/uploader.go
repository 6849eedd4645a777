// Package pictures stores profile pictures and hands back a reference that
// is saved on the profile record.
package pictures

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/qrcontacts/internal/client/config"
)

var ErrNotImage = errors.New("not a supported image file")

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Uploader stores the picture at path for userID and returns its reference.
type Uploader interface {
	Upload(ctx context.Context, userID, path string) (string, error)
}

// New returns an S3Uploader when a bucket is configured and a LocalUploader
// rooted at localDir otherwise.
func New(cfg config.S3, localDir string) Uploader {
	if cfg.Bucket == "" {
		return LocalUploader{Dir: localDir}
	}
	return NewS3Uploader(cfg)
}

func contentType(path string) (string, error) {
	ct, ok := imageTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", ErrNotImage
	}
	return ct, nil
}
