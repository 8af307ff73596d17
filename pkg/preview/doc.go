// Package preview owns the live, staged signature tree of an editor
// workspace.
//
// A Surface keeps the current signature.Data and signature.Style, re-renders
// on every change and decorates the result with editor markers (draggable
// sections, accessibility labels, drag preview styles). Exports never read
// the staged tree directly: they take a Snapshot, a deep copy that later
// edits cannot touch.
package preview
