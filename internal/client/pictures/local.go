package pictures

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/qrcontacts/internal/filex"
)

// DefaultLocalDir is where LocalUploader keeps pictures when no Dir is set.
const DefaultLocalDir = "pictures"

// LocalUploader copies the picture under Dir and references the copy by a
// file:// URI, so moving the original does not break the profile.
type LocalUploader struct {
	Dir string
}

func (u LocalUploader) Upload(_ context.Context, userID, path string) (string, error) {
	if _, err := contentType(path); err != nil {
		return "", err
	}

	st, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("picture: %w", err)
	}
	if st.IsDir() {
		return "", fmt.Errorf("picture: %s is a directory", path)
	}

	base := u.Dir
	if base == "" {
		base = DefaultLocalDir
	}
	if userID == "" {
		userID = "local"
	}
	dir, err := filex.EnsureSubdDir(filepath.Join(base, userID))
	if err != nil {
		return "", err
	}

	dst := filepath.Join(dir, uuid.NewString()+strings.ToLower(filepath.Ext(path)))
	if err := filex.CopyFile(path, dst); err != nil {
		return "", fmt.Errorf("picture: %w", err)
	}

	ref := url.URL{Scheme: "file", Path: filepath.ToSlash(dst)}
	return ref.String(), nil
}
