// Package studio is the signature editor web application.
//
// Every visitor gets a workspace: a preview.Surface kept in memory and
// addressed by id under /w/{workspace}. The editor page talks to it over
// datastar. Field edits post the client signals and receive a patched
// preview pane, and export buttons answer with a toast. The same routes
// serve JSON to clients that ask for it.
//
//	svc := studio.New(raster.NewCanvas(),
//		studio.WithStorage(store),
//		studio.WithLogger(log),
//	)
//	srv := studio.NewServer(studio.WithHTTPConfig(cfg.HTTP))
//	err := srv.Run(ctx, svc.Handle())
//
// Exports go through an export.Dispatcher built per workspace. Clipboard
// writes land in an in-memory clipboard that /w/{workspace}/clipboard
// reads back, unless WithClipboard installs a shared one. Downloads are
// stored under the workspace id when a storage backend is configured,
// and /w/{workspace}/download/{kind} always streams the file directly.
//
// The /api routes save signatures and render the table-based email HTML.
package studio
