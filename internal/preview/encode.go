package preview

import (
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
)

// LoadBackdrop decodes a PNG, JPEG or TGA image to draw behind the curves.
// The decoder is picked by extension.
func LoadBackdrop(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "preview: open backdrop %s", path)
	}
	defer f.Close()

	var img image.Image
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".tga":
		img, err = tga.Decode(f)
	case ".png":
		img, err = png.Decode(f)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(f)
	default:
		return nil, errors.Errorf("preview: backdrop %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "preview: decode backdrop %s", path)
	}
	return img, nil
}

// WriteWebP encodes img losslessly to path, creating parent directories.
func WriteWebP(path string, img *image.NRGBA) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "preview")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "preview")
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return errors.Wrapf(err, "preview: WebP encode %s", path)
	}
	return f.Close()
}
