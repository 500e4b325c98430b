package sink

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/synthdom/internal/errors"
)

// PutObjectAPI is the part of *s3.Client used by S3Sink.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads documents to an S3 bucket.
//
// Example usage:
//
//	client := s3.New(s3.Options{Region: "eu-west-1", Credentials: creds})
//	out := sink.NewS3Sink(client, "my-site", "pages/", false)
//	err := out.Write(ctx, "index.html", data)
type S3Sink struct {
	client      PutObjectAPI
	bucket      string
	prefix      string
	contentType string
	now         func() time.Time
}

// NewS3Sink creates an S3 sink. Keys are prefix + name. xhtml selects the
// uploaded content type.
func NewS3Sink(client PutObjectAPI, bucket, prefix string, xhtml bool) *S3Sink {
	return &S3Sink{
		client:      client,
		bucket:      bucket,
		prefix:      prefix,
		contentType: ContentType(xhtml),
		now:         time.Now,
	}
}

// Key returns the object key for name.
func (s *S3Sink) Key(name string) string {
	return s.prefix + strings.TrimPrefix(name, "/")
}

// Write implements Sink.
func (s *S3Sink) Write(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.Key(name)),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(s.contentType),
		ContentLength: aws.Int64(int64(len(data))),
		Metadata: map[string]string{
			"render-time": s.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return errors.New("E121").
			WithDetail("Upload to s3://" + s.bucket + "/" + s.Key(name) + " failed.").
			Wrap(err)
	}
	return nil
}
