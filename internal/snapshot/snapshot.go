// Package snapshot obtains a readable copy of a possibly-locked file.
//
// Browser history databases are often held open by the running browser, so a
// plain copy can fail with a permission or sharing violation. Take first
// attempts a whole-file copy; if that fails it falls back to a chunked
// byte-stream copy, which tolerates the advisory locks most database engines
// place only on write regions.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrLocked is returned when both copy strategies fail, typically because the
// source application holds an exclusive lock on the file.
var ErrLocked = errors.New("source file is locked or inaccessible")

// chunkSize is the read size used by the fallback chunked copy.
const chunkSize = 8 * 1024

// Take copies src to a temporary file and returns its path together with a
// cleanup func that removes it. cleanup is always non-nil and safe to call
// even when err is non-nil. The caller must invoke cleanup on every exit
// path once it is done with the snapshot.
func Take(src string) (path string, cleanup func(), err error) {
	cleanup = func() {}

	tmp, err := os.CreateTemp("", "daylog-snapshot-*.db")
	if err != nil {
		return "", cleanup, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	cleanup = func() { os.Remove(tmpPath) }

	if err := copyWhole(src, tmpPath); err == nil {
		return tmpPath, cleanup, nil
	}

	if err := copyChunked(src, tmpPath); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("%w: %s", ErrLocked, src)
	}

	return tmpPath, cleanup, nil
}

// copyWhole copies src to dst in a single io.Copy pass.
func copyWhole(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// copyChunked copies src to dst in fixed-size chunks. Small reads can succeed
// where a bulk copy fails, because write-region locks do not cover the whole
// file.
func copyChunked(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	buf := make([]byte, chunkSize)
	for {
		n, readErr := in.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}
