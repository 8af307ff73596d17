// Package binder turns HTTP requests into typed request structs for the
// handler package.
//
// Each constructor returns a Func that fills only the fields it owns:
// JSON decodes the whole body, Query, Form and Path read `query`, `form`
// and `path` tags, File attaches multipart file headers from `file` tags
// and Signals reads datastar signals. A binder that does not apply to a
// request returns ErrNotApplicable and the handler moves on to the next.
//
//	type exportRequest struct {
//		Workspace string      `path:"workspace"`
//		Kind      export.Kind `path:"kind"`
//		Mode      string      `query:"mode"`
//	}
//
// All failures wrap one of the package sentinels so callers can map them
// to status codes with errors.Is.
package binder
