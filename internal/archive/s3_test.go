package archive

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bilgisen/newz/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveNews(t *testing.T) {
	var gotPath, gotContentType string
	var snapshot Snapshot
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		body, err := io.ReadAll(r.Body)
		if assert.NoError(t, err) {
			assert.NoError(t, json.Unmarshal(body, &snapshot))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a, err := NewS3Archiver(context.Background(), Config{
		Endpoint:  srv.URL,
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "newz-archive",
	})
	require.NoError(t, err)
	a.now = func() time.Time { return time.Unix(0, 1700000000000000000) }

	news := []models.News{{NewsID: 1, UserID: "alice", Title: "One"}, {NewsID: 2, UserID: "alice", Title: "Two"}}
	key, err := a.ArchiveNews(context.Background(), "alice", news)
	require.NoError(t, err)

	assert.Equal(t, "news/alice/1700000000000000000.json", key)
	assert.Equal(t, "/newz-archive/news/alice/1700000000000000000.json", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "alice", snapshot.UserID)
	assert.Equal(t, 2, snapshot.Count)
	require.Len(t, snapshot.News, 2)
	assert.Equal(t, "Two", snapshot.News[1].Title)
}

func TestArchiveNewsUploadFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`))
	}))
	defer srv.Close()

	a, err := NewS3Archiver(context.Background(), Config{
		Endpoint:  srv.URL,
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "newz-archive",
	})
	require.NoError(t, err)

	_, err = a.ArchiveNews(context.Background(), "alice", nil)
	assert.Error(t, err)
}

func TestNewS3ArchiverRequiresBucket(t *testing.T) {
	_, err := NewS3Archiver(context.Background(), Config{Endpoint: "http://localhost:9000"})
	assert.Error(t, err)
}
