// Package preview turns the base64 PNG payloads returned by the host into
// terminal previews and local files.
package preview

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/csheth/cutout/internal/bridge"
)

var (
	// ErrEmptyPayload is returned for blank payloads.
	ErrEmptyPayload = errors.New("empty image payload")
	// ErrNotPNG is returned when the payload does not decode as PNG.
	ErrNotPNG = errors.New("payload is not a PNG image")
)

// Decode parses a base64 PNG, with or without a data URL header.
func Decode(payload string) (image.Image, error) {
	raw, err := decodeBytes(payload)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPNG, err)
	}
	return img, nil
}

func decodeBytes(payload string) ([]byte, error) {
	b64 := strings.TrimSpace(bridge.SplitDataURL(strings.TrimSpace(payload)))
	if b64 == "" {
		return nil, ErrEmptyPayload
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode base64 payload: %w", err)
	}
	return raw, nil
}

// Fit scales img to fit widthCells x heightCells terminal cells, where each
// cell shows two vertical pixels.
func Fit(img image.Image, widthCells, heightCells int) *image.NRGBA {
	if widthCells < 1 {
		widthCells = 1
	}
	if heightCells < 1 {
		heightCells = 1
	}
	return imaging.Fit(img, widthCells, heightCells*2, imaging.Lanczos)
}

// Halfblocks renders img with upper half blocks in 24-bit color: the top
// pixel is the foreground, the bottom pixel the background. Transparent
// pixels are drawn over a checkerboard so cut-outs stay visible.
func Halfblocks(img *image.NRGBA) string {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(w * (h/2 + 1) * 40)
	for y := 0; y < h; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			top := flatten(img.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y), x, y)
			bottom := top
			if y+1 < h {
				bottom = flatten(img.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y+1), x, y+1)
			}
			fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
		}
		b.WriteString("\x1b[0m")
	}
	return b.String()
}

func flatten(c color.NRGBA, x, y int) color.NRGBA {
	if c.A == 255 {
		return c
	}
	var bg uint8 = 0x99
	if (x/4+y/4)%2 == 0 {
		bg = 0x66
	}
	a := uint32(c.A)
	blend := func(fg uint8) uint8 {
		return uint8((uint32(fg)*a + uint32(bg)*(255-a)) / 255)
	}
	return color.NRGBA{R: blend(c.R), G: blend(c.G), B: blend(c.B), A: 255}
}
