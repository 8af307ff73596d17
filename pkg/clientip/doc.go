// Package clientip resolves the address of the client behind a request.
//
// Proxy headers are consulted first (CF-Connecting-IP, DO-Connecting-IP,
// the first valid X-Forwarded-For entry, X-Real-IP), then RemoteAddr. Only
// values that parse as an IP address are returned, in canonical form.
//
//	r.Use(clientip.Middleware)
//	ip := clientip.FromContext(r.Context())
//
// The studio keys export throttling on this address and attaches it to
// access log records through Extractor.
package clientip
