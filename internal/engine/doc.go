// Package engine implements the reference matching core: it compiles
// declared API routes into a multi-pattern matcher, scans source files
// with comment-aware tokenization, and aggregates match counts and
// locations per route under concurrent writers.
package engine
