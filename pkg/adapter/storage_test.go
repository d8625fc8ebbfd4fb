package adapter_test

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/adapter"
	"github.com/m-mizutani/gt"
)

func TestStorageRoundtrip(t *testing.T) {
	bucket := os.Getenv("TEST_STORAGE_BUCKET")
	if bucket == "" {
		t.Skip("TEST_STORAGE_BUCKET is not set")
	}

	ctx := context.Background()
	client, err := adapter.NewStorage(ctx, bucket)
	gt.NoError(t, err)

	key := "documents/storage-test.json"
	payload := []byte(`[{"rawText":"fragment","embedding":[1,0]}]`)

	writer, err := client.Put(ctx, key)
	gt.NoError(t, err)
	_, err = writer.Write(payload)
	gt.NoError(t, err)
	gt.NoError(t, writer.Close())

	reader, err := client.Get(ctx, key)
	gt.NoError(t, err)
	defer reader.Close()

	got, err := io.ReadAll(reader)
	gt.NoError(t, err)
	gt.Equal(t, got, payload)
}

func TestStorageGetMissingKey(t *testing.T) {
	bucket := os.Getenv("TEST_STORAGE_BUCKET")
	if bucket == "" {
		t.Skip("TEST_STORAGE_BUCKET is not set")
	}

	ctx := context.Background()
	client, err := adapter.NewStorage(ctx, bucket)
	gt.NoError(t, err)

	_, err = client.Get(ctx, "documents/no-such-key.json")
	gt.Error(t, err)
}
