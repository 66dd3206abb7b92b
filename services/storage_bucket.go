package services

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
)

type StorageBucket struct {
	*storage.BucketHandle
	name string
}

func NewStorageBucket(ctx context.Context, app *firebase.App, bucketName string) (*StorageBucket, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	bucketHandle, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}

	return &StorageBucket{
		BucketHandle: bucketHandle,
		name:         bucketName,
	}, nil
}

// Upload writes a blob and returns its public URL. Read, write and
// close happen in one sequence so every failure surfaces to the caller.
func (sb *StorageBucket) Upload(ctx context.Context, blobName, contentType string, r io.Reader) (string, error) {
	w := sb.Object(blobName).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://storage.googleapis.com/%v/%v", sb.name, blobName), nil
}
