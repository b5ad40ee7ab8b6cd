package pdf

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var ErrAssetNotFound = errors.New("asset not found")

// AssetResolver maps public media/static URLs onto files on disk.
type AssetResolver struct {
	MediaURL   string
	MediaRoot  string
	StaticURL  string
	StaticRoot string
}

// Path resolves uri to a file under MediaRoot or StaticRoot. It fails with
// ErrAssetNotFound when the uri matches neither prefix, escapes its root or
// points at a missing file.
func (r AssetResolver) Path(uri string) (string, error) {
	root, rel, ok := r.split(uri)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a media or static url", ErrAssetNotFound, uri)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetNotFound, err)
	}
	p := filepath.Join(absRoot, filepath.FromSlash(rel))
	if p != absRoot && !strings.HasPrefix(p, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q escapes asset root", ErrAssetNotFound, uri)
	}
	st, err := os.Stat(p)
	if err != nil || st.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrAssetNotFound, p)
	}
	return p, nil
}

// DataURI inlines the resolved asset so the printed page does not depend on file:// access.
func (r AssetResolver) DataURI(uri string) (string, error) {
	p, err := r.Path(uri)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetNotFound, err)
	}
	mt := mimetype.Detect(b)
	return "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}

func (r AssetResolver) split(uri string) (root, rel string, ok bool) {
	try := func(prefix, dir string) bool {
		if prefix == "" || dir == "" {
			return false
		}
		idx := strings.Index(uri, prefix)
		if idx < 0 {
			return false
		}
		root, rel = dir, uri[idx+len(prefix):]
		return true
	}
	if try(r.MediaURL, r.MediaRoot) || try(r.StaticURL, r.StaticRoot) {
		return root, rel, true
	}
	return "", "", false
}
