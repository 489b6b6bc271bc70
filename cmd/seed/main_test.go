package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `[
  {"email": "test@test.com", "password": "test-123", "bookmarks": [
    {"title": "First Bookmark", "link": "https://prashant-links.web.app"}
  ]}
]`

func TestLoadFixture_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))

	users, err := loadFixture(path)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "test@test.com", users[0].Email)
	assert.Equal(t, "First Bookmark", users[0].Bookmarks[0].Title)
}

func TestLoadFixture_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fixture))
	}))
	defer srv.Close()

	users, err := loadFixture(srv.URL)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestLoadFixture_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := loadFixture(srv.URL)
	assert.Error(t, err)
}
