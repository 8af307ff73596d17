// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a request struct filled by the
// binders given to Wrap, and returns a Response. Responses know how to
// answer both plain browser requests and datastar requests: Templ patches
// a component into the page over server-sent events when datastar asks
// and renders HTML otherwise, Redirect and Signals do the same for
// navigation and frontend state, JSON and JSONError write API envelopes
// and Attachment serves exported files.
//
//	type exportRequest struct {
//		Workspace string `path:"workspace"`
//		Kind      string `path:"kind"`
//	}
//
//	download := func(ctx handler.Context, req exportRequest) handler.Response {
//		a, err := build(ctx, req)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.Attachment(a.Name, a.ContentType, a.Body)
//	}
//
//	r.Get("/w/{workspace}/download/{kind}", handler.Wrap(download,
//		handler.WithBinders[handler.Context, exportRequest](binder.Path(chi.URLParam)),
//	))
//
// Errors are HTTPError values with a status code and key, or
// ValidationError for per-field messages. Classify maps them, and the
// binder sentinels, to status codes; NewErrorHandler logs them and picks
// a toast, JSON or page presentation.
package handler
