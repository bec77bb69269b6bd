// Package scraper downloads documents and media files linked from a fixed
// list of web pages. It discovers candidate resources in page markup,
// derives clean filesystem-safe filenames and destination folders from the
// surrounding text, and materializes the bytes on disk without
// re-downloading duplicates or overwriting existing files.
//
// This package contains domain types, interfaces, and the pure naming
// engine. Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, http/, sqlite/).
package scraper
