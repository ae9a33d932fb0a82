package s3

import (
	"context"
	"errors"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gobeaver/sniffkit"
	"github.com/gobwas/glob"
)

// API is the subset of the S3 client the adapter uses. *s3.Client
// satisfies it.
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Adapter is a read-only sniffkit.Source over an S3 bucket
type Adapter struct {
	client       API
	bucket       string
	prefix       string
	pollInterval time.Duration
}

// AdapterOption is a function that configures Adapter
type AdapterOption func(*Adapter)

// WithPrefix sets the prefix for S3 objects
func WithPrefix(prefix string) AdapterOption {
	return func(a *Adapter) {
		// Ensure prefix ends with a slash if it's not empty
		if prefix != "" && !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		a.prefix = prefix
	}
}

// WithPollInterval sets how often Watch lists the bucket. Default 30s.
func WithPollInterval(d time.Duration) AdapterOption {
	return func(a *Adapter) {
		if d > 0 {
			a.pollInterval = d
		}
	}
}

// New creates a new S3 source
func New(client API, bucket string, options ...AdapterOption) *Adapter {
	adapter := &Adapter{
		client:       client,
		bucket:       bucket,
		pollInterval: 30 * time.Second,
	}

	// Apply options
	for _, option := range options {
		option(adapter)
	}

	return adapter
}

func (a *Adapter) key(filePath string) string {
	return path.Join(a.prefix, strings.TrimPrefix(filePath, "/"))
}

// ReadAll implements sniffkit.Source
func (a *Adapter) ReadAll(ctx context.Context, filePath string) ([]byte, error) {
	resp, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.key(filePath)),
	})
	if err != nil {
		return nil, mapS3Error("read", filePath, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, sniffkit.WrapPathErr("read", filePath, err)
	}
	return data, nil
}

// FileExists implements sniffkit.Source
func (a *Adapter) FileExists(ctx context.Context, filePath string) (bool, error) {
	key := a.key(filePath)

	_, err := a.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, mapS3Error("fileexists", filePath, err)
	}

	// Check if it's not a directory (doesn't end with /)
	return !strings.HasSuffix(key, "/"), nil
}

// Stat implements sniffkit.Source. A path with no object of its own but
// with objects below it is reported as a directory.
func (a *Adapter) Stat(ctx context.Context, filePath string) (*sniffkit.FileInfo, error) {
	key := a.key(filePath)

	resp, err := a.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return &sniffkit.FileInfo{
			Name:    path.Base(filePath),
			Path:    strings.TrimPrefix(filePath, "/"),
			Size:    aws.ToInt64(resp.ContentLength),
			ModTime: aws.ToTime(resp.LastModified),
			IsDir:   strings.HasSuffix(key, "/"),
		}, nil
	}
	if !isNotFound(err) {
		return nil, mapS3Error("stat", filePath, err)
	}

	isDir, dirErr := a.dirExists(ctx, key)
	if dirErr != nil {
		return nil, mapS3Error("stat", filePath, dirErr)
	}
	if !isDir {
		return nil, mapS3Error("stat", filePath, err)
	}
	return &sniffkit.FileInfo{
		Name:  path.Base(filePath),
		Path:  strings.TrimPrefix(filePath, "/"),
		IsDir: true,
	}, nil
}

func (a *Adapter) dirExists(ctx context.Context, key string) (bool, error) {
	if !strings.HasSuffix(key, "/") {
		key += "/"
	}

	resp, err := a.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(a.bucket),
		Prefix:  aws.String(key),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, err
	}

	return len(resp.Contents) > 0 || len(resp.CommonPrefixes) > 0, nil
}

// ListContents implements sniffkit.Source
func (a *Adapter) ListContents(ctx context.Context, prefix string, recursive bool) ([]sniffkit.FileInfo, error) {
	prefix = strings.Trim(prefix, "/")

	// Prepare prefix for listing
	listPrefix := path.Join(a.prefix, prefix)
	if listPrefix != "" && listPrefix != "." && !strings.HasSuffix(listPrefix, "/") {
		listPrefix += "/"
	}
	if listPrefix == "." {
		listPrefix = ""
	}

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(listPrefix),
	}
	if !recursive {
		// Delimiter for immediate children only
		input.Delimiter = aws.String("/")
	}

	var files []sniffkit.FileInfo
	paginator := s3.NewListObjectsV2Paginator(a.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, mapS3Error("listcontents", prefix, err)
		}

		// Add directories (common prefixes)
		for _, p := range page.CommonPrefixes {
			dirName := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(p.Prefix), listPrefix), "/")
			if dirName == "" {
				continue
			}

			files = append(files, sniffkit.FileInfo{
				Name:  dirName,
				Path:  path.Join(prefix, dirName),
				IsDir: true,
			})
		}

		// Add files
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)

			// Skip the directory marker itself
			if key == listPrefix {
				continue
			}

			relPath := strings.TrimPrefix(key, a.prefix)
			isDir := strings.HasSuffix(relPath, "/")
			relPath = strings.TrimSuffix(relPath, "/")

			files = append(files, sniffkit.FileInfo{
				Name:    path.Base(relPath),
				Path:    relPath,
				Size:    aws.ToInt64(obj.Size),
				ModTime: aws.ToTime(obj.LastModified),
				IsDir:   isDir,
			})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &nsk) || errors.As(err, &notFound)
}

// mapS3Error maps S3 errors to sniffkit errors
func mapS3Error(op, filePath string, err error) error {
	if isNotFound(err) {
		return sniffkit.WrapPathErr(op, filePath, sniffkit.ErrNotExist)
	}

	return sniffkit.WrapPathErr(op, filePath, err)
}

// ============================================================================
// Watcher Implementation (Polling-based)
// ============================================================================

// Watch implements sniffkit.CanWatch by polling. S3 has no native change
// events, so the bucket is listed every poll interval and the token fires
// when a matching object is added, removed or modified.
func (a *Adapter) Watch(ctx context.Context, filter string) (sniffkit.ChangeToken, error) {
	matcher, err := glob.Compile(filter, '/')
	if err != nil {
		return nil, sniffkit.NewPathError("watch", filter, err)
	}

	initialState, err := a.matchingState(ctx, matcher)
	if err != nil {
		return nil, sniffkit.WrapPathErr("watch", filter, err)
	}

	token := sniffkit.NewCallbackChangeToken()

	go func() {
		ticker := time.NewTicker(a.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				current, err := a.matchingState(ctx, matcher)
				if err != nil {
					// Can't determine change, don't signal
					continue
				}
				if !statesEqual(initialState, current) {
					token.SignalChange()
					return
				}
			}
		}
	}()

	return token, nil
}

// fileState represents the state of a file for change detection
type fileState struct {
	modTime time.Time
	size    int64
	etag    string
}

// matchingState returns the current state of objects matching the filter
func (a *Adapter) matchingState(ctx context.Context, matcher glob.Glob) (map[string]fileState, error) {
	state := make(map[string]fileState)

	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(a.prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}

			// Remove prefix from key to get relative path
			relPath := strings.TrimPrefix(*obj.Key, a.prefix)
			if matcher.Match(relPath) {
				state[relPath] = fileState{
					modTime: aws.ToTime(obj.LastModified),
					size:    aws.ToInt64(obj.Size),
					etag:    aws.ToString(obj.ETag),
				}
			}
		}
	}

	return state, nil
}

// statesEqual checks if two file states are equal
func statesEqual(a, b map[string]fileState) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		bv, ok := b[k]
		if !ok || v != bv {
			return false
		}
	}
	return true
}

// Ensure Adapter implements interfaces
var (
	_ sniffkit.Source   = (*Adapter)(nil)
	_ sniffkit.CanWatch = (*Adapter)(nil)
	_ API               = (*s3.Client)(nil)
)
