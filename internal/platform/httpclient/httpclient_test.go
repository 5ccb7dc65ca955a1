package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/echo", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(b)
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", 0)
	require.NoError(t, err)

	var out map[string]int
	require.NoError(t, c.DoJSON(context.Background(), http.MethodPost, "echo", map[string]int{"n": 7}, &out))
	assert.Equal(t, 7, out["n"])
}

func TestDoJSON_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "result not ready", http.StatusConflict)
	}))
	defer srv.Close()

	c, err := New(srv.URL, 0)
	require.NoError(t, err)

	err = c.DoJSON(context.Background(), http.MethodGet, "/sessions/x/result", nil, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, StatusCode(err))
	assert.Contains(t, err.Error(), "result not ready")
}

func TestUploadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		b, _ := io.ReadAll(f)

		assert.Equal(t, "milo.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		assert.Equal(t, "pixels", string(b))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, 0)
	require.NoError(t, err)

	var out struct{ OK bool }
	err = c.UploadFile(context.Background(), "/upload", "image", "milo.png", "image/png", strings.NewReader("pixels"), &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestResolveURL(t *testing.T) {
	c, err := New("", 0)
	require.NoError(t, err)

	_, err = c.resolveURL("/x")
	assert.Error(t, err)

	u, err := c.resolveURL("https://example.com/x")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/x", u)

	_, err = New("::not a url", 0)
	assert.Error(t, err)
}
