package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeS3 accepts every request and records PUT bodies by path
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
	types   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPut {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.objects[r.URL.Path] = string(body)
		f.types[r.URL.Path] = r.Header.Get("Content-Type")
		f.mu.Unlock()
	}
	w.WriteHeader(http.StatusOK)
}

func TestS3StorageSave(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{}, types: map[string]string{}}
	server := httptest.NewServer(fake)
	defer server.Close()

	s, err := NewS3Storage(S3Config{
		Region:    "us-east-1",
		Bucket:    "devlens",
		AccessKey: "test",
		SecretKey: "test",
		Endpoint:  server.URL,
	})
	require.NoError(t, err)

	err = s.Save(context.Background(), "github/users/octocat/1700000000.json", "application/json", strings.NewReader(`{"login":"octocat"}`))
	require.NoError(t, err)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Equal(t, `{"login":"octocat"}`, fake.objects["/devlens/github/users/octocat/1700000000.json"])
	require.Equal(t, "application/json", fake.types["/devlens/github/users/octocat/1700000000.json"])
}
