package storage

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"portal-server/pkg/errors"
)

// S3Adapter stores objects in an S3 bucket. PutObject already has
// overwrite-if-exists semantics, matching the upsert contract.
type S3Adapter struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// NewS3Adapter wraps an existing S3 client.
func NewS3Adapter(client *s3.Client, bucket string, logger *zap.Logger) *S3Adapter {
	return &S3Adapter{client: client, bucket: bucket, logger: logger}
}

func (a *S3Adapter) Save(ctx context.Context, path string, content []byte) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("application/xml"),
		ACL:         s3types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return errors.NewAppError(errors.ErrStorage, "failed to upload "+path, err)
	}
	return nil
}

func (a *S3Adapter) Load(ctx context.Context, path string) ([]byte, error) {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, errors.NewAppError(errors.ErrNotFound, "object not found: "+path, err)
		}
		return nil, errors.NewAppError(errors.ErrStorage, "failed to download "+path, err)
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStorage, "failed to read object body for "+path, err)
	}
	return content, nil
}

func (a *S3Adapter) List(ctx context.Context, prefix string) ([]string, error) {
	paths := []string{}
	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrStorage, "failed to list prefix "+prefix, err)
		}
		for _, obj := range page.Contents {
			paths = append(paths, aws.ToString(obj.Key))
		}
	}
	return paths, nil
}

func (a *S3Adapter) Delete(ctx context.Context, path string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return errors.NewAppError(errors.ErrStorage, "failed to delete "+path, err)
	}
	return nil
}

func (a *S3Adapter) Publish(ctx context.Context, path string, content []byte) error {
	return a.Save(ctx, PublishedPrefix+path, content)
}
