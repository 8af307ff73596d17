// Package async runs functions in goroutines and collects their results
// through futures.
//
//	png := async.Go(ctx, func(ctx context.Context) (export.Outcome, error) { ... })
//	html := async.Go(ctx, func(ctx context.Context) (export.Outcome, error) { ... })
//	outcomes, err := async.WaitAll(png, html)
//
// A function whose context is already done never starts; its future
// resolves with the context error.
package async
