package fsx

import (
	"context"
	"strings"
)

// FileReader provides read-only operations
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
	List(ctx context.Context, dir string) ([]string, error)
}

// FileWriter provides write operations
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
}

// FileSystem combines read and write operations
type FileSystem interface {
	FileReader
	FileWriter
}

// S3Location is a parsed s3://bucket/prefix path.
type S3Location struct {
	Bucket string
	Prefix string
}

// ParseS3 reports whether path is an s3:// URL and splits it.
func ParseS3(path string) (S3Location, bool) {
	rest, ok := strings.CutPrefix(path, "s3://")
	if !ok || rest == "" {
		return S3Location{}, false
	}
	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return S3Location{}, false
	}
	return S3Location{Bucket: bucket, Prefix: strings.Trim(prefix, "/")}, true
}
