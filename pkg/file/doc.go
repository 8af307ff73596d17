// Package file stores exported signature artifacts and imports logos.
//
// The Storage interface has two implementations:
//   - LocalStorage keeps artifacts under a base directory and writes them
//     atomically through a temporary file.
//   - S3Storage uploads them to Amazon S3 or an S3-compatible service.
//
// Keys are slash separated and confined to the storage root; any key that
// would escape it fails with ErrInvalidPath.
//
// # Usage
//
//	store, err := file.NewLocalStorage("./exports", "/exports/")
//	if err != nil {
//		return err
//	}
//	obj, err := store.Put(ctx, "jane-lee.png", "image/png", png)
//	if err != nil {
//		return err
//	}
//	link := store.URL(obj.Key)
//
// # Logos
//
// ImportLogo accepts JPEG, PNG, GIF and WebP uploads up to DefaultLogoMaxBytes,
// sniffing the content rather than trusting the file name. The image is
// downscaled to fit DefaultLogoMaxSide pixels and returned as a data URI, the
// only image source the in-process rasterizer can paint.
//
// # Errors
//
// S3 failures are classified into package errors (ErrFileNotFound,
// ErrAccessDenied, ErrBucketNotFound and so on) so callers can use errors.Is
// regardless of backend.
package file
