package file

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Logo import limits.
const (
	DefaultLogoMaxBytes = 5 << 20
	DefaultLogoMaxSide  = 400
	logoJPEGQuality     = 80
)

// LogoTypes are the accepted logo formats.
var LogoTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// ImportLogo reads an uploaded logo and returns it as a data URI ready to be
// embedded in a signature.
func ImportLogo(fh *multipart.FileHeader, maxBytes int64, maxSide int) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultLogoMaxBytes
	}
	data, err := ReadUpload(fh, maxBytes)
	if err != nil {
		return "", err
	}
	return LogoDataURI(data, maxSide)
}

// LogoDataURI downscales an image to fit a maxSide square and re-encodes it.
// PNG and GIF sources become PNG so transparency survives; everything else
// becomes JPEG.
func LogoDataURI(data []byte, maxSide int) (string, error) {
	if err := ValidateMIMEType(data, LogoTypes...); err != nil {
		return "", err
	}
	if maxSide <= 0 {
		maxSide = DefaultLogoMaxSide
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	img = imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)

	format, mt := imaging.JPEG, "image/jpeg"
	switch DetectMIMEType(data) {
	case "image/png", "image/gif":
		format, mt = imaging.PNG, "image/png"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(logoJPEGQuality)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToEncodeImage, err)
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
