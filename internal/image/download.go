package imagepkg

import (
	"bytes"
	"context"
	"errors"
	"image"
	"net/http"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/youruser/botdb/internal/util"
)

var ErrNoImage = errors.New("card has no image")

// Fetcher resolves card image references. Absolute URLs are fetched as-is;
// relative references are joined to BaseURL when set, otherwise read from Dir.
type Fetcher struct {
	BaseURL string
	Dir     string
	Client  *http.Client
}

// Load decodes the image behind ref.
func (f Fetcher) Load(ctx context.Context, ref string) (image.Image, error) {
	if ref == "" {
		return nil, ErrNoImage
	}
	if util.IsURL(ref) {
		return f.download(ctx, ref)
	}
	if f.BaseURL != "" {
		return f.download(ctx, util.JoinURL(f.BaseURL, ref))
	}
	return imaging.Open(filepath.Join(f.Dir, filepath.FromSlash(ref)))
}

func (f Fetcher) download(ctx context.Context, url string) (image.Image, error) {
	body, err := util.GetBytes(ctx, f.Client, url)
	if err != nil {
		return nil, err
	}
	return imaging.Decode(bytes.NewReader(body))
}
