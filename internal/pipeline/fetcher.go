package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Fetcher reads review files with a size limit
type Fetcher struct {
	maxBytes int64
	stdin    io.Reader
}

// NewFetcher creates a Fetcher; maxBytes <= 0 disables the limit
func NewFetcher(maxBytes int64) *Fetcher {
	return &Fetcher{
		maxBytes: maxBytes,
		stdin:    os.Stdin,
	}
}

// FetchResult contains the raw file content
type FetchResult struct {
	Path    string
	Content []byte
}

// Fetch reads the whole file at path; "-" reads standard input
func (f *Fetcher) Fetch(ctx context.Context, path string) (*FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var r io.Reader
	if path == "-" {
		r = f.stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open: %w", err)
		}
		defer func() { _ = file.Close() }()
		r = file
	}

	if f.maxBytes > 0 {
		r = io.LimitReader(r, f.maxBytes+1)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if f.maxBytes > 0 && int64(len(content)) > f.maxBytes {
		return nil, fmt.Errorf("%s exceeds %d bytes", path, f.maxBytes)
	}

	return &FetchResult{Path: path, Content: content}, nil
}
