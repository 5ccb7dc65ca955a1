package wizard

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartImage(t *testing.T, size int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "huge.png")
	require.NoError(t, err)
	content := make([]byte, size)
	copy(content, "\x89PNG\r\n\x1a\n")
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadImage_BodyOverLimitIs413(t *testing.T) {
	svc, _, _ := newManualService(t)
	s, err := svc.Create(context.Background())
	require.NoError(t, err)

	r := chi.NewRouter()
	RegisterRoutes(r, svc)

	body, ct := multipartImage(t, maxImageBytes+(2<<20))
	req := httptest.NewRequest(http.MethodPost, "/sessions/"+s.ID+"/image", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)

	got, err := svc.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Nil(t, got.State.Image)
}

func TestUploadImage_Garbage400(t *testing.T) {
	svc, _, _ := newManualService(t)
	s, err := svc.Create(context.Background())
	require.NoError(t, err)

	r := chi.NewRouter()
	RegisterRoutes(r, svc)

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+s.ID+"/image", bytes.NewBufferString("not multipart"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
