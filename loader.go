package sniffkit

import (
	"context"
	"fmt"
)

// LoadFile reads the file at path fully into memory. Directories fail with
// ErrIsDir and files larger than maxSize fail with ErrTooLarge before any
// content is read. A maxSize of 0 disables the limit.
func LoadFile(ctx context.Context, src Source, path string, maxSize int64) ([]byte, error) {
	info, err := src.Stat(ctx, path)
	if err != nil {
		return nil, err
	}
	if info.IsDir {
		return nil, NewPathError("load", path, ErrIsDir)
	}
	if maxSize > 0 && info.Size > maxSize {
		return nil, NewPathError("load", path,
			fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrTooLarge, info.Size, maxSize))
	}

	data, err := src.ReadAll(ctx, path)
	if err != nil {
		return nil, err
	}

	// The file may have grown between Stat and ReadAll
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, NewPathError("load", path,
			fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrTooLarge, len(data), maxSize))
	}
	return data, nil
}

// ClassifyFile loads path from src and classifies it with s. Load failures
// are returned before the classifier is invoked.
func ClassifyFile(ctx context.Context, s Sniffer, src Source, path string, maxSize int64) (Result, error) {
	data, err := LoadFile(ctx, src, path, maxSize)
	if err != nil {
		return Result{}, err
	}
	return s.Classify(data), nil
}
