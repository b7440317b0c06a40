package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

/* =======================================================================
   WebP re-encode for image uploads (client photos, receipt scans)
======================================================================= */

type WebPOptions struct {
	MaxW    int // resize bound, keep-aspect
	MaxH    int
	Quality float32
}

func defaultWebPOptions() WebPOptions {
	return WebPOptions{MaxW: 1600, MaxH: 1600, Quality: 80}
}

func isImageContentType(ct string) bool {
	switch {
	case strings.Contains(ct, "jpeg"),
		strings.Contains(ct, "png"),
		strings.Contains(ct, "webp"):
		return true
	}
	return false
}

func decodeImage(all []byte) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	ct := detectType(all)

	switch {
	case strings.Contains(ct, "jpeg"):
		return jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		return png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(all))
	}
	return nil, fmt.Errorf("unsupported image type %s", ct)
}

// EncodeWebP decodes, bounds to MaxW×MaxH and re-encodes lossy webp.
func EncodeWebP(data []byte, opt WebPOptions) ([]byte, error) {
	img, err := decodeImage(data)
	if err != nil {
		return nil, err
	}

	img = boundImage(img, opt.MaxW, opt.MaxH)

	var out bytes.Buffer
	if err := webp.Encode(&out, img, &webp.Options{Quality: opt.Quality}); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}
	return out.Bytes(), nil
}

// Thumbnail renders a small square webp preview (document lists in the UI).
func Thumbnail(data []byte, size int) ([]byte, error) {
	img, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	thumb := imaging.Thumbnail(img, size, size, imaging.Lanczos)

	var out bytes.Buffer
	if err := webp.Encode(&out, thumb, &webp.Options{Quality: 70}); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}
	return out.Bytes(), nil
}

func boundImage(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return img
	}

	ratioW := float64(maxW) / float64(w)
	ratioH := float64(maxH) / float64(h)
	ratio := ratioW
	if ratioH < ratio {
		ratio = ratioH
	}
	nw := int(float64(w) * ratio)
	nh := int(float64(h) * ratio)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func detectType(b []byte) string {
	// tiny local sniffer: magic bytes for jpeg/png/webp
	switch {
	case len(b) >= 3 && b[0] == 0xFF && b[1] == 0xD8:
		return "image/jpeg"
	case len(b) >= 8 && string(b[0:4]) == "\x89PNG":
		return "image/png"
	case len(b) >= 12 && string(b[0:4]) == "RIFF" && string(b[8:12]) == "WEBP":
		return "image/webp"
	}
	return "application/octet-stream"
}

func replaceExt(name, newExt string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + newExt
}
