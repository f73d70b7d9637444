// Package backup copies the SQLite store file in and out of the workspace
// without transforming it.
package backup

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	ErrNotSQLite = errors.New("file is not a SQLite database")
	ErrSameFile  = errors.New("source and destination are the same file")
)

// sqliteHeader opens every SQLite 3 database file.
var sqliteHeader = []byte("SQLite format 3\x00")

// Export copies the store at storePath to target byte for byte and returns
// the number of bytes written.
func Export(storePath, target string) (int64, error) {
	if err := checkDistinct(storePath, target); err != nil {
		return 0, err
	}
	src, err := os.Open(storePath)
	if err != nil {
		return 0, fmt.Errorf("open store: %w", err)
	}
	defer src.Close()

	return replaceFile(target, src)
}

// Import replaces the store at storePath with source. source must be a
// SQLite database. The live file is only swapped once the copy is complete.
// The store must not be open while importing.
func Import(source, storePath string) (int64, error) {
	if err := checkDistinct(source, storePath); err != nil {
		return 0, err
	}
	src, err := os.Open(source)
	if err != nil {
		return 0, fmt.Errorf("open import source: %w", err)
	}
	defer src.Close()

	if err := CheckHeader(src); err != nil {
		return 0, fmt.Errorf("%s: %w", source, err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("rewind import source: %w", err)
	}
	return replaceFile(storePath, src)
}

// CheckHeader reports ErrNotSQLite unless r starts with the SQLite header.
func CheckHeader(r io.Reader) error {
	head := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(r, head); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrNotSQLite
		}
		return fmt.Errorf("read header: %w", err)
	}
	if !bytes.Equal(head, sqliteHeader) {
		return ErrNotSQLite
	}
	return nil
}

// replaceFile writes src to a temporary file beside dst and renames it over
// dst.
func replaceFile(dst string, src io.Reader) (int64, error) {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	n, err := io.Copy(tmp, src)
	if err != nil {
		cleanup()
		return 0, fmt.Errorf("copy: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return 0, fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("replace %s: %w", dst, err)
	}
	return n, nil
}

func checkDistinct(a, b string) error {
	absA, err := filepath.Abs(a)
	if err != nil {
		return err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return err
	}
	if absA == absB {
		return ErrSameFile
	}
	return nil
}
