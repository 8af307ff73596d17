package raster

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"image"
	"net/url"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/dmitrymomot/sigkit/pkg/cache"
	"github.com/dmitrymomot/sigkit/pkg/render"
)

// decoded holds recently decoded sources. Decoded images are never drawn
// into, so entries can be shared between rasterizations.
var decoded = cache.NewLRU[[sha256.Size]byte, image.Image](16)

// decodeSource reads an img source into an image. Only data URIs are
// readable; any other reference would taint the bitmap.
func decodeSource(src string) (image.Image, error) {
	key := sha256.Sum256([]byte(src))
	if img, ok := decoded.Get(key); ok {
		return img, nil
	}
	img, err := decodeDataURI(src)
	if err != nil {
		return nil, err
	}
	decoded.Put(key, img)
	return img, nil
}

func decodeDataURI(src string) (image.Image, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(src), "data:")
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaintedImage, shorten(src))
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: malformed data URI", ErrUndecodableImage)
	}

	var raw []byte
	if strings.HasSuffix(meta, ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			b, err = base64.RawStdEncoding.DecodeString(payload)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
		}
		raw = b
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
		}
		raw = []byte(s)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
	}
	return img, nil
}

// CheckImages returns the first error an image source in the tree would
// cause during rasterization.
func CheckImages(root *render.Node) error {
	for _, n := range root.Find(func(n *render.Node) bool { return n.Tag == "img" }) {
		src, _ := n.Get("src")
		if _, err := decodeSource(src); err != nil {
			return err
		}
	}
	return nil
}

func shorten(s string) string {
	if len(s) > 64 {
		return s[:64] + "..."
	}
	return s
}
