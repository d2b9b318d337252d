package document

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// S3Scheme prefixes locations served by S3.
const S3Scheme = "s3://"

// Fetcher returns the raw bytes of a document.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// FileFetcher reads documents from the local filesystem.
type FileFetcher struct{}

// Fetch implements Fetcher.
func (FileFetcher) Fetch(_ context.Context, location string) ([]byte, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileIO, err)
	}
	return data, nil
}

// Router sends s3:// locations to S3 and everything else to Files.
type Router struct {
	Files Fetcher
	S3    Fetcher
}

// Fetch implements Fetcher.
func (r Router) Fetch(ctx context.Context, location string) ([]byte, error) {
	if strings.HasPrefix(location, S3Scheme) {
		if r.S3 == nil {
			return nil, fmt.Errorf("%w: no S3 client configured for '%s'", ErrFileIO, location)
		}
		return r.S3.Fetch(ctx, location)
	}
	files := r.Files
	if files == nil {
		files = FileFetcher{}
	}
	return files.Fetch(ctx, location)
}
