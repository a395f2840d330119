package minio

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

	miniogo "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/dbmcp/internal/errs"
	"github.com/koustreak/dbmcp/internal/filestore"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.ErrKind
	}{
		{"not found status", miniogo.ErrorResponse{StatusCode: http.StatusNotFound}, errs.ErrKindNotFound},
		{"forbidden", miniogo.ErrorResponse{StatusCode: http.StatusForbidden}, errs.ErrKindPermissionDenied},
		{"no such bucket", miniogo.ErrorResponse{Code: "NoSuchBucket"}, errs.ErrKindNotFound},
		{"bad key", miniogo.ErrorResponse{Code: "InvalidAccessKeyId"}, errs.ErrKindPermissionDenied},
		{"too large", miniogo.ErrorResponse{Code: "EntityTooLarge"}, errs.ErrKindInvalidInput},
		{"slow down", miniogo.ErrorResponse{Code: "SlowDown"}, errs.ErrKindTimeout},
		{"deadline", context.DeadlineExceeded, errs.ErrKindTimeout},
		{"network", errors.New("dial tcp: connection refused"), errs.ErrKindConnectionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapError(tt.err, "op")
			require.Error(t, err)
			assert.Equal(t, tt.want, errs.KindOf(err))
		})
	}

	assert.NoError(t, mapError(nil, "op"))
}

func TestNew_RejectsOtherProviders(t *testing.T) {
	_, err := New(context.Background(), &filestore.Config{Provider: "s3", Endpoint: "localhost:9000"})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

// fakeS3 answers the handful of S3 calls the driver makes.
type fakeS3 struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	bucket, key, _ := strings.Cut(path, "/")

	switch {
	case r.Method == http.MethodGet && path == "":
		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+
			`<ListAllMyBucketsResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">`+
			`<Owner><ID>test</ID><DisplayName>test</DisplayName></Owner><Buckets></Buckets>`+
			`</ListAllMyBucketsResult>`)
	case r.Method == http.MethodHead && key == "":
		if !f.buckets[bucket] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && key == "":
		f.buckets[bucket] = true
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[path] = string(body)
		w.Header().Set("ETag", `"abc123"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func TestDriver_PutAndPresign(t *testing.T) {
	s3 := &fakeS3{buckets: map[string]bool{}, objects: map[string]string{}}
	srv := httptest.NewServer(s3)
	defer srv.Close()

	cfg := &filestore.Config{
		Provider:  filestore.ProviderMinIO,
		Endpoint:  strings.TrimPrefix(srv.URL, "http://"),
		AccessKey: "access",
		SecretKey: "secret",
		Region:    "us-east-1",
	}

	ctx := context.Background()
	d, err := New(ctx, cfg)
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.EnsureBucket(ctx, "results"))
	require.NoError(t, d.EnsureBucket(ctx, "results"), "existing bucket")
	assert.True(t, s3.buckets["results"])

	body := `{"id":"1"}`
	info, err := d.PutObject(ctx, "results", "exports/1.jsonl", strings.NewReader(body), int64(len(body)), "application/jsonl")
	require.NoError(t, err)
	assert.Equal(t, "exports/1.jsonl", info.Key)
	assert.Equal(t, "abc123", info.ETag)
	assert.Equal(t, body, s3.objects["results/exports/1.jsonl"])

	url, err := d.PresignGetURL(ctx, "results", "exports/1.jsonl", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "/results/exports/1.jsonl")
	assert.Contains(t, url, "X-Amz-Expires=900")
}
