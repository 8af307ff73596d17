// Package raster turns a preview snapshot into a PNG bitmap.
//
// Canvas lays the render tree out with an in-process box model (block,
// inline, flex, grid and absolutely positioned boxes) and paints it with
// fogleman/gg using the Go font family. Browser screenshots the normalized
// document in headless Chrome through go-rod for pixel-exact output when a
// Chrome binary is available.
//
// Both backends produce a fully opaque image at a fixed pixel ratio (2 by
// default) of the on-screen box, ignore interactive transforms and refuse to
// produce a bitmap when an image source cannot be read:
//
//	c := raster.NewCanvas()
//	img, err := c.Rasterize(ctx, surface.Snapshot())
//	if errors.Is(err, raster.ErrTaintedImage) {
//		// remote logo, nothing was produced
//	}
package raster
