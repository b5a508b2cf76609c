// Package thdat lists and extracts entries of Touhou DAT archives.
//
// The archive format itself is handled by the external thdat tool; this
// package drives it and exposes the result as a Catalog. Any Catalog can
// feed the rip pipeline, which keeps the pipeline testable without the
// tool installed.
package thdat
