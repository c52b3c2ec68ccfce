// Package qrcode renders stored PIX codes as scannable images.
package qrcode

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/chai2010/webp"
	qr "github.com/skip2/go-qrcode"
)

type Format string

const (
	PNG  Format = "png"
	WebP Format = "webp"

	DefaultSize = 320
	minSize     = 128
	maxSize     = 1024
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case PNG, "":
		return PNG, nil
	case WebP:
		return WebP, nil
	}
	return "", fmt.Errorf("unsupported image format %q", s)
}

func (f Format) ContentType() string {
	if f == WebP {
		return "image/webp"
	}
	return "image/png"
}

// Render draws content at size pixels square. Sizes outside [128, 1024] are
// clamped.
func Render(content string, format Format, size int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("empty qr content")
	}
	size = clamp(size)

	code, err := qr.New(content, qr.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}

	if format != WebP {
		return code.PNG(size)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, code.Image(size), &webp.Options{Lossless: true}); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}
	return buf.Bytes(), nil
}

func clamp(size int) int {
	switch {
	case size <= 0:
		return DefaultSize
	case size < minSize:
		return minSize
	case size > maxSize:
		return maxSize
	}
	return size
}
