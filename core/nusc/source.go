package nusc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"nuscenes-devkit/core/storage"

	"github.com/minio/minio-go/v7"
)

// BucketScheme prefixes a dataroot stored in object storage: s3://bucket/prefix.
const BucketScheme = "s3://"

// Source reads the table files of one dataset version.
type Source interface {
	// Check verifies that the dataset location exists.
	Check(ctx context.Context) error
	// Open returns the named table file. An absent file yields a *SourceError
	// wrapping ErrSourceNotFound.
	Open(ctx context.Context, file string) (io.ReadCloser, error)
	// String describes the location for logs.
	String() string
}

// NewSource selects the source for dataroot. Bucket dataroots need a storage client.
func NewSource(dataroot, version string, client storage.Client) (Source, error) {
	if !strings.HasPrefix(dataroot, BucketScheme) {
		return &DirSource{Root: filepath.Join(dataroot, version)}, nil
	}
	if client == nil {
		return nil, fmt.Errorf("dataroot %s requires a storage client", dataroot)
	}
	bucket, prefix, _ := strings.Cut(strings.TrimPrefix(dataroot, BucketScheme), "/")
	if bucket == "" {
		return nil, fmt.Errorf("dataroot %s has no bucket name", dataroot)
	}
	return &BucketSource{
		Client: client,
		Bucket: bucket,
		Prefix: path.Join(prefix, version),
	}, nil
}

// DirSource reads <dataroot>/<version>/<table>.json from the local filesystem.
type DirSource struct {
	Root string
}

func (s *DirSource) Check(context.Context) error {
	info, err := os.Stat(s.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrDatasetNotFound, s.Root)
		}
		return fmt.Errorf("stat %s: %w", s.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrDatasetNotFound, s.Root)
	}
	return nil
}

func (s *DirSource) Open(_ context.Context, file string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.Root, file))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceError{Source: file, Err: ErrSourceNotFound}
		}
		return nil, &SourceError{Source: file, Err: err}
	}
	return f, nil
}

func (s *DirSource) String() string {
	return s.Root
}

// BucketSource reads <prefix>/<table>.json from an object storage bucket.
type BucketSource struct {
	Client storage.Client
	Bucket string
	Prefix string
}

func (s *BucketSource) Check(ctx context.Context) error {
	exists, err := s.Client.BucketExists(ctx, s.Bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.Bucket, err)
	}
	if !exists {
		return fmt.Errorf("%w: bucket %s does not exist", ErrDatasetNotFound, s.Bucket)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	objects := s.Client.ListObjects(ctx, s.Bucket, minio.ListObjectsOptions{
		Prefix:  s.Prefix + "/",
		MaxKeys: 1,
	})
	obj, ok := <-objects
	if !ok {
		return fmt.Errorf("%w: %s", ErrDatasetNotFound, s)
	}
	if obj.Err != nil {
		return fmt.Errorf("list %s: %w", s, obj.Err)
	}
	return nil
}

func (s *BucketSource) Open(ctx context.Context, file string) (io.ReadCloser, error) {
	key := path.Join(s.Prefix, file)
	if _, err := s.Client.StatObject(ctx, s.Bucket, key, minio.StatObjectOptions{}); err != nil {
		if storage.IsNotFound(err) {
			return nil, &SourceError{Source: file, Err: ErrSourceNotFound}
		}
		return nil, &SourceError{Source: file, Err: err}
	}
	obj, err := s.Client.GetObject(ctx, s.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, &SourceError{Source: file, Err: err}
	}
	return obj, nil
}

func (s *BucketSource) String() string {
	return BucketScheme + s.Bucket + "/" + s.Prefix
}
