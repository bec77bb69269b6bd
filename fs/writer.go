// Package fs materializes downloaded resources on disk: directory
// creation, collision-free path probing, and chunked streaming writes.
package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteChunkSize is the copy buffer size for streaming writes. Bodies are
// never buffered whole; large media files stream through this buffer.
const WriteChunkSize = 32 * 1024

// EnsureDir creates the directory and any missing parents.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// NextAvailablePath returns the first path that does not exist on disk,
// starting from path and inserting a numeric suffix before the extension
// (name.ext, name_1.ext, name_2.ext, ...). Existing files are never
// overwritten.
func NextAvailablePath(path string) string {
	if !exists(path) {
		return path
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

// ClaimPath probes for a collision-free variant of path and creates it
// exclusively, retrying the probe when another writer wins the race.
// Returns the open file and the final path; the caller owns the file.
func ClaimPath(path string) (*os.File, string, error) {
	for {
		candidate := NextAvailablePath(path)
		f, err := os.OpenFile(candidate, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return nil, "", err
		}
		return f, candidate, nil
	}
}

// CopyStream copies r into f in fixed-size chunks, closes f, and returns
// the number of bytes written. On any error the file is removed so no
// partial download is left behind.
func CopyStream(f *os.File, r io.Reader) (int64, error) {
	buf := make([]byte, WriteChunkSize)
	n, err := io.CopyBuffer(f, r, buf)
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return 0, err
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return 0, err
	}

	return n, nil
}

// WriteStream copies r to a new file at path. The path must be free and
// its parent directory must exist; partial writes are removed on error.
func WriteStream(path string, r io.Reader) (int64, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return 0, err
	}
	return CopyStream(f, r)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
