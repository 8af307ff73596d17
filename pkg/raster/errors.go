package raster

import "errors"

var (
	ErrNotReady         = errors.New("raster: nothing staged to rasterize")
	ErrTaintedImage     = errors.New("raster: image source cannot be read into the bitmap")
	ErrUndecodableImage = errors.New("raster: image data could not be decoded")
	ErrEmptyBox         = errors.New("raster: signature box has no area")
	ErrBoxTooLarge      = errors.New("raster: signature box exceeds the bitmap limit")
	ErrBrowserFailed    = errors.New("raster: browser capture failed")
)
