package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Image is a decoded image handle. Data must be treated as read-only.
type Image struct {
	Location string
	Format   string
	Data     image.Image
}

// Size returns the pixel dimensions of the image.
func (i Image) Size() (int, int) {
	if i.Data == nil {
		return 0, 0
	}
	b := i.Data.Bounds()
	return b.Dx(), b.Dy()
}

// ImageDecoder materialises a location into a decoded image.
type ImageDecoder interface {
	DecodeImage(ctx context.Context, location string) (*Image, error)
}

// Codec decodes png, jpeg, gif, bmp and webp images fetched by a Fetcher.
type Codec struct {
	fetcher Fetcher
}

// NewCodec creates an image decoder reading through f.
func NewCodec(f Fetcher) *Codec {
	return &Codec{fetcher: f}
}

func (c *Codec) DecodeImage(ctx context.Context, location string) (*Image, error) {
	data, err := c.fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("decode %s: %w", location, ErrUnsupportedFormat)
		}
		return nil, fmt.Errorf("decode %s: %w", location, err)
	}
	return &Image{Location: location, Format: format, Data: img}, nil
}
