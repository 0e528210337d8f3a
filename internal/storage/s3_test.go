package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/templui/goalflow/internal/config"
)

type fakeS3 struct {
	mu       sync.Mutex
	buckets  map[string]bool
	objects  map[string]string
	types    map[string]string
	requests []string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")

	switch {
	case key == "" && r.Method == http.MethodHead:
		if !f.buckets[bucket] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
	case key == "" && r.Method == http.MethodPut:
		f.buckets[bucket] = true
	case r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[bucket+"/"+key] = string(body)
		f.types[bucket+"/"+key] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"etag"`)
	case r.Method == http.MethodDelete:
		delete(f.objects, bucket+"/"+key)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func newFakeStorage(t *testing.T) (*S3Storage, *fakeS3) {
	t.Helper()
	fake := &fakeS3{buckets: map[string]bool{}, objects: map[string]string{}, types: map[string]string{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	store, err := NewS3Storage(context.Background(), S3Config{
		Region:        "us-east-1",
		Bucket:        "archives",
		AccessKey:     "test",
		SecretKey:     "test",
		Endpoint:      srv.URL,
		PresignExpiry: time.Hour,
	})
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	return store, fake
}

func TestNewDisabledWithoutBucket(t *testing.T) {
	_, err := New(context.Background(), &config.Config{S3Region: "us-east-1"})
	if !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestS3StorageCreatesMissingBucket(t *testing.T) {
	_, fake := newFakeStorage(t)

	if !fake.buckets["archives"] {
		t.Fatalf("expected bucket to be created, requests: %v", fake.requests)
	}
}

func TestS3StorageSaveDeletePresign(t *testing.T) {
	store, fake := newFakeStorage(t)
	ctx := context.Background()
	key := "exports/u1/2025-W35-20250827T150000Z.json"

	if err := store.Save(ctx, key, "application/json", strings.NewReader(`{"weekKey":"2025-W35"}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	fake.mu.Lock()
	got, ct := fake.objects["archives/"+key], fake.types["archives/"+key]
	fake.mu.Unlock()
	if !strings.Contains(got, `"weekKey":"2025-W35"`) || ct != "application/json" {
		t.Fatalf("unexpected stored object %q (%s)", got, ct)
	}

	url, err := store.PresignedURL(ctx, key)
	if err != nil {
		t.Fatalf("presign: %v", err)
	}
	if !strings.Contains(url, "/archives/"+key) || !strings.Contains(url, "X-Amz-Expires=3600") {
		t.Fatalf("unexpected presigned url %s", url)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	fake.mu.Lock()
	_, exists := fake.objects["archives/"+key]
	fake.mu.Unlock()
	if exists {
		t.Fatalf("expected object to be deleted")
	}
}
