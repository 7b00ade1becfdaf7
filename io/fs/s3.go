package fs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/datarhei/sheepcounter/log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Config struct {
	// Name is the name of the filesystem
	Name            string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	UseSSL          bool

	// Timeout for each request to the S3 service, 10 seconds if not set
	Timeout time.Duration

	Logger log.Logger
}

type s3Filesystem struct {
	name string

	endpoint string
	region   string
	bucket   string
	timeout  time.Duration

	client *minio.Client

	logger log.Logger
}

// NewS3Filesystem returns a filesystem that exposes the objects of an existing
// bucket. The bucket is never written to.
func NewS3Filesystem(config S3Config) (ReadFilesystem, error) {
	fs := &s3Filesystem{
		name:     config.Name,
		endpoint: config.Endpoint,
		region:   config.Region,
		bucket:   config.Bucket,
		timeout:  config.Timeout,
		logger:   config.Logger,
	}

	if fs.logger == nil {
		fs.logger = log.New("")
	}

	if fs.timeout <= 0 {
		fs.timeout = 10 * time.Second
	}

	if len(fs.bucket) == 0 {
		return nil, fmt.Errorf("a bucket name is required")
	}

	client, err := minio.New(fs.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKeyID, config.SecretAccessKey, ""),
		Region: fs.region,
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("can't connect to s3 endpoint %s: %w", fs.endpoint, err)
	}

	fs.logger = fs.logger.WithFields(log.Fields{
		"name":     fs.name,
		"type":     "s3",
		"bucket":   fs.bucket,
		"region":   fs.region,
		"endpoint": fs.endpoint,
	})

	fs.logger.Debug().Log("Connected")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, fs.bucket)
	if err != nil {
		fs.logger.Error().WithError(err).Log("Can't access bucket")
		return nil, fmt.Errorf("can't access bucket %s: %w", fs.bucket, err)
	}

	if !exists {
		return nil, fmt.Errorf("the bucket %s doesn't exist", fs.bucket)
	}

	fs.client = client

	return fs, nil
}

func (fs *s3Filesystem) Name() string {
	return fs.name
}

func (fs *s3Filesystem) Type() string {
	return "s3"
}

func (fs *s3Filesystem) Stat(path string) (FileInfo, error) {
	key, err := fs.cleanPath(path)
	if err != nil {
		return nil, err
	}

	if len(key) == 0 {
		return &s3FileInfo{
			name: "/",
			dir:  true,
		}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), fs.timeout)
	defer cancel()

	stat, err := fs.client.StatObject(ctx, fs.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if fs.isDir(key) {
			return &s3FileInfo{
				name: "/" + key,
				dir:  true,
			}, nil
		}

		fs.logger.Debug().WithField("key", key).WithError(err).Log("Not found")

		return nil, fs.mapError(err)
	}

	return &s3FileInfo{
		name:         "/" + stat.Key,
		size:         stat.Size,
		lastModified: stat.LastModified,
	}, nil
}

func (fs *s3Filesystem) ReadFile(path string) ([]byte, error) {
	key, err := fs.cleanPath(path)
	if err != nil {
		return nil, err
	}

	if len(key) == 0 {
		return nil, ErrNotExist
	}

	ctx, cancel := context.WithTimeout(context.Background(), fs.timeout)
	defer cancel()

	object, err := fs.client.GetObject(ctx, fs.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fs.mapError(err)
	}

	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		fs.logger.Debug().WithField("key", key).WithError(err).Log("Reading failed")
		return nil, fs.mapError(err)
	}

	return data, nil
}

func (fs *s3Filesystem) mapError(err error) error {
	if minio.ToErrorResponse(err).StatusCode == http.StatusNotFound {
		return ErrNotExist
	}

	return err
}

// isDir returns whether there is at least one object with the key as prefix.
// The listing is canceled as soon as the first object arrives.
func (fs *s3Filesystem) isDir(key string) bool {
	if !strings.HasSuffix(key, "/") {
		key = key + "/"
	}

	ctx, cancel := context.WithTimeout(context.Background(), fs.timeout)
	defer cancel()

	ch := fs.client.ListObjects(ctx, fs.bucket, minio.ListObjectsOptions{
		Prefix:    key,
		Recursive: true,
		MaxKeys:   1,
	})

	found := false

	for object := range ch {
		if object.Err != nil {
			if !found {
				fs.logger.Warn().WithField("prefix", key).WithError(object.Err).Log("Listing object failed")
			}
			continue
		}

		if !found {
			found = true
			cancel()
		}
	}

	return found
}

// cleanPath turns a path into an object key, i.e. without the leading slash.
func (fs *s3Filesystem) cleanPath(path string) (string, error) {
	if strings.ContainsAny(path, "\x00\\") {
		return "", ErrNotExist
	}

	return filepath.Join("/", filepath.Clean("/"+path))[1:], nil
}

type s3FileInfo struct {
	name         string
	size         int64
	dir          bool
	lastModified time.Time
}

func (f *s3FileInfo) Name() string {
	return f.name
}

func (f *s3FileInfo) Size() int64 {
	return f.size
}

func (f *s3FileInfo) ModTime() time.Time {
	return f.lastModified
}

func (f *s3FileInfo) IsDir() bool {
	return f.dir
}
