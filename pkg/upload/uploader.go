package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dd0wney/cluso-graphscene/pkg/logging"
	"github.com/dd0wney/cluso-graphscene/pkg/metrics"
	"github.com/dd0wney/cluso-graphscene/pkg/scene"
)

// Upload outcomes as recorded in metrics
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// DigestMetadataKey carries the export digest as object metadata
const DigestMetadataKey = "blake2b-256"

// ErrNoBucket means an upload was attempted without a bucket
var ErrNoBucket = errors.New("no bucket configured")

// UploadError reports a failed upload
type UploadError struct {
	Bucket string
	Key    string
	Cause  error
}

// Error implements the error interface.
func (e *UploadError) Error() string {
	return fmt.Sprintf("upload s3://%s/%s: %v", e.Bucket, e.Key, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *UploadError) Unwrap() error {
	return e.Cause
}

// Options configures an Uploader
type Options struct {
	Bucket  string
	Timeout time.Duration // 0 means no timeout beyond ctx
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// Uploader puts files into one bucket
type Uploader struct {
	client  PutObjectAPI
	bucket  string
	timeout time.Duration
	logger  logging.Logger
	metrics *metrics.Registry
}

// Result describes a finished upload
type Result struct {
	Bucket   string
	Key      string
	Bytes    int64
	ETag     string
	Duration time.Duration
}

// New creates an uploader writing through client
func New(client PutObjectAPI, opts Options) *Uploader {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Uploader{
		client:  client,
		bucket:  opts.Bucket,
		timeout: opts.Timeout,
		logger:  logger.With(logging.Component("upload")),
		metrics: opts.Metrics,
	}
}

// UploadExport uploads a scene file written by scene.Export, tagging it
// with the export's content type and digest.
func (u *Uploader) UploadExport(ctx context.Context, path, key string, info scene.ExportInfo) (*Result, error) {
	return u.Upload(ctx, path, key, ContentType(info.Format, info.Compressed), map[string]string{
		DigestMetadataKey: info.Digest,
	})
}

// Upload puts the file at path under key. There are no retries.
func (u *Uploader) Upload(ctx context.Context, path, key, contentType string, metadata map[string]string) (*Result, error) {
	if u.bucket == "" {
		return nil, &UploadError{Key: key, Cause: ErrNoBucket}
	}

	start := time.Now()
	res, err := u.put(ctx, path, key, contentType, metadata)
	elapsed := time.Since(start)

	if err != nil {
		u.record(StatusFailure, elapsed)
		return nil, &UploadError{Bucket: u.bucket, Key: key, Cause: err}
	}
	u.record(StatusSuccess, elapsed)

	res.Duration = elapsed
	u.logger.Info("scene uploaded",
		logging.String("bucket", res.Bucket),
		logging.String("key", res.Key),
		logging.Int("bytes", int(res.Bytes)),
		logging.Latency(elapsed),
	)
	return res, nil
}

func (u *Uploader) put(ctx context.Context, path, key, contentType string, metadata map[string]string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	u.logger.Debug("uploading scene",
		logging.Path(path),
		logging.String("bucket", u.bucket),
		logging.String("key", key),
		logging.String("content_type", contentType),
	)

	out, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(stat.Size()),
		ContentType:   aws.String(contentType),
		Metadata:      metadata,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Bucket: u.bucket,
		Key:    key,
		Bytes:  stat.Size(),
		ETag:   aws.ToString(out.ETag),
	}, nil
}

func (u *Uploader) record(status string, d time.Duration) {
	if u.metrics != nil {
		u.metrics.RecordUpload(status, d)
	}
}

// ContentType is the MIME type for an export
func ContentType(format scene.Format, compressed bool) string {
	if compressed {
		return "application/x-snappy-framed"
	}
	switch format {
	case scene.FormatJSON:
		return "application/json"
	case scene.FormatOBJ:
		return "model/obj"
	}
	return "application/octet-stream"
}
