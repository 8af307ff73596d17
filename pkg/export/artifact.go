package export

import (
	"github.com/dmitrymomot/sigkit/pkg/preview"
	"github.com/dmitrymomot/sigkit/pkg/slug"
)

// Mode is the preview output mode the primary action follows.
type Mode = preview.Mode

// Output modes.
const (
	Rendered = preview.Rendered
	HTML     = preview.HTML
)

// Kind identifies an artifact format.
type Kind string

const (
	// PNG is the rasterized signature at twice its on-screen size.
	PNG Kind = "png"
	// Document is the standalone HTML document with inlined styles.
	Document Kind = "html"
	// RichText is the class-stripped fragment for rich-text editors.
	RichText Kind = "richtext"
	// Source is the normalized document as plain text.
	Source Kind = "text"
)

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case PNG, Document, RichText, Source:
		return k, nil
	}
	return "", ErrUnsupportedKind
}

// ContentType is the MIME type an artifact of this kind is delivered as.
func (k Kind) ContentType() string {
	switch k {
	case PNG:
		return "image/png"
	case Document:
		return "text/html; charset=utf-8"
	case RichText:
		return "text/html"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Ext is the file extension, including the dot.
func (k Kind) Ext() string {
	switch k {
	case PNG:
		return ".png"
	case Document, RichText:
		return ".html"
	default:
		return ".txt"
	}
}

// Downloadable reports whether the kind can be saved as a file.
func (k Kind) Downloadable() bool {
	return k == PNG || k == Document
}

// FallbackName is used when the signature has no owner name.
const FallbackName = "signature"

// Filename derives the download name from the owner's name.
func Filename(name string, k Kind) string {
	base := slug.Make(name, slug.MaxLength(64))
	if base == "" {
		base = FallbackName
	}
	return base + k.Ext()
}

// Artifact is one produced export.
type Artifact struct {
	Kind        Kind
	Name        string
	ContentType string
	Body        []byte
}

// Empty reports whether nothing was produced.
func (a Artifact) Empty() bool {
	return len(a.Body) == 0
}

// Size is the body length in bytes.
func (a Artifact) Size() int {
	return len(a.Body)
}
