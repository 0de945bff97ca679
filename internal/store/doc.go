// Package store persists compiled graphs and export artifacts in
// SQLite.
//
// Graphs are content-addressed: the row key is the GraphID over the
// canonical form, so saving the same structure twice is a no-op.
// Artifacts reference the graph they were exported from.
package store
