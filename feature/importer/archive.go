package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"leader-dojo/core/storage"

	"github.com/minio/minio-go/v7"
)

// FetchArchive downloads an archived snapshot payload from the bucket.
func FetchArchive(ctx context.Context, client storage.Client, bucket, object string) ([]byte, error) {
	reader, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetching snapshot %s: %w", object, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", object, err)
	}
	return data, nil
}

// StoreArchive uploads a snapshot payload to the bucket, creating the
// bucket on first use.
func StoreArchive(ctx context.Context, client storage.Client, bucket, object string, data []byte) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("creating bucket %s: %w", bucket, err)
		}
	}

	_, err = client.PutObject(ctx, bucket, object,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("storing snapshot %s: %w", object, err)
	}
	return nil
}
