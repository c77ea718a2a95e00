// Package media turns raw photo and clip payloads into stored blobs.
package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/bbrks/go-blurhash"
	_ "golang.org/x/image/webp"

	"github.com/swappi-app/swappi-backend/internal/domain"
)

const (
	DefaultJPEGQuality = 80
	// DefaultMaxPixels bounds width*height of an accepted photo.
	DefaultMaxPixels = 40_000_000

	blurHashSize = 64
	blurHashX    = 4
	blurHashY    = 3
)

type Encoder struct {
	quality   int
	maxPixels int64
}

// NewEncoder falls back to the defaults for an out of range quality or a
// non-positive pixel limit.
func NewEncoder(quality int, maxPixels int64) *Encoder {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &Encoder{quality: quality, maxPixels: maxPixels}
}

// EncodedPhotos holds JPEG payloads in input order and the hero placeholder.
type EncodedPhotos struct {
	JPEGs        [][]byte
	HeroBlurHash string
}

// Encode decodes jpeg, png, gif or webp data and re-encodes it as JPEG.
func (e *Encoder) Encode(data []byte) ([]byte, image.Image, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: empty payload", domain.ErrEncoding)
	}
	// header only, the pixel buffer is sized from these dimensions
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > e.maxPixels {
		return nil, nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", domain.ErrEncoding, cfg.Width, cfg.Height, e.maxPixels)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.quality}); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}
	return buf.Bytes(), img, nil
}

// EncodeAll encodes every photo or none: the first failure aborts with its index.
func (e *Encoder) EncodeAll(photos [][]byte) (*EncodedPhotos, error) {
	out := &EncodedPhotos{JPEGs: make([][]byte, 0, len(photos))}
	for i, data := range photos {
		encoded, img, err := e.Encode(data)
		if err != nil {
			return nil, fmt.Errorf("photo %d: %w", i+1, err)
		}
		if i == 0 {
			// placeholder is best effort, a missing hash never fails the save
			out.HeroBlurHash, _ = BlurHash(img)
		}
		out.JPEGs = append(out.JPEGs, encoded)
	}
	return out, nil
}

// BlurHash computes a 4x3 component placeholder from a small thumbnail of img.
func BlurHash(img image.Image) (string, error) {
	hash, err := blurhash.Encode(blurHashX, blurHashY, thumbnail(img))
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}
	return hash, nil
}

// thumbnail scales img down to fit blurHashSize with nearest-neighbour sampling.
func thumbnail(img image.Image) image.Image {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= blurHashSize && srcH <= blurHashSize {
		return img
	}

	dstW, dstH := blurHashSize, blurHashSize
	if srcW > srcH {
		dstH = max(1, srcH*blurHashSize/srcW)
	} else {
		dstW = max(1, srcW*blurHashSize/srcH)
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			srcX := x * srcW / dstW
			srcY := y * srcH / dstH
			dst.Set(x, y, img.At(bounds.Min.X+srcX, bounds.Min.Y+srcY))
		}
	}
	return dst
}
