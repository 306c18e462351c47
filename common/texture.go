// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// Validate reports whether the pixel buffer matches the declared dimensions.
//
// Returns:
//   - error: nil when Pixels holds exactly Width*Height*4 bytes
func (t TextureStagingData) Validate() error {
	if t.Width == 0 || t.Height == 0 {
		return fmt.Errorf("texture has zero dimension %dx%d", t.Width, t.Height)
	}
	if want := int(t.Width) * int(t.Height) * 4; len(t.Pixels) != want {
		return fmt.Errorf("texture %dx%d needs %d bytes, got %d", t.Width, t.Height, want, len(t.Pixels))
	}
	return nil
}

// TextureDecodeOptions tunes how source images are turned into staging data.
type TextureDecodeOptions struct {
	// FlipVertical mirrors rows so that the first row is the bottom of the image.
	FlipVertical bool
	// MaxDimension downscales images whose width or height exceeds it. Zero disables the limit.
	MaxDimension int
}

// sniffLen is the number of header bytes filetype needs to recognise every image format it supports.
const sniffLen = 262

// DecodeTexture decodes an encoded image (PNG, JPEG, BMP, TIFF or WebP) into RGBA staging data.
// The header is sniffed first so that non-image input fails with a clear error instead of a decoder one.
//
// Parameters:
//   - r: reader over the encoded image
//   - opts: decode options
//
// Returns:
//   - TextureStagingData: tightly packed RGBA pixels
//   - error: error if the input is not an image or fails to decode
func DecodeTexture(r io.Reader, opts TextureDecodeOptions) (TextureStagingData, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("failed to read image: %w", err)
	}
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if !filetype.IsImage(head) {
		return TextureStagingData{}, fmt.Errorf("data is not a recognised image")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if opts.MaxDimension > 0 && (bounds.Dx() > opts.MaxDimension || bounds.Dy() > opts.MaxDimension) {
		w, h := fitWithin(bounds.Dx(), bounds.Dy(), opts.MaxDimension)
		img = transform.Resize(img, w, h, transform.Linear)
	}
	if opts.FlipVertical {
		img = transform.FlipV(img)
	}

	bounds = img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}

// LoadTexture opens and decodes an image file into RGBA staging data.
// Reference: https://pkg.go.dev/image
//
// Parameters:
//   - path: file path of the image
//   - opts: decode options
//
// Returns:
//   - TextureStagingData: tightly packed RGBA pixels
//   - error: error if the file is missing or cannot be decoded
func LoadTexture(path string, opts TextureDecodeOptions) (TextureStagingData, error) {
	file, err := os.Open(path)
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("failed to open texture file %s: %w", path, err)
	}
	defer file.Close()

	tex, err := DecodeTexture(file, opts)
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("texture file %s: %w", path, err)
	}
	return tex, nil
}

// SolidTexture builds a width x height texture filled with one RGBA color.
//
// Parameters:
//   - width, height: texture dimensions in pixels
//   - rgba: the fill color
//
// Returns:
//   - TextureStagingData: the filled texture
func SolidTexture(width, height uint32, rgba [4]byte) TextureStagingData {
	pix := make([]byte, int(width)*int(height)*4)
	for i := 0; i < len(pix); i += 4 {
		copy(pix[i:i+4], rgba[:])
	}
	return TextureStagingData{Pixels: pix, Width: width, Height: height}
}

func fitWithin(w, h, limit int) (int, int) {
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}
