package bundle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerServesBundleToClient(t *testing.T) {
	b, _, err := Build(fixtureDir)
	require.NoError(t, err)
	h, err := NewHandler(b)
	require.NoError(t, err)

	server := httptest.NewServer(h.Router(""))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	got, err := client.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, b.Files, got.Files)
}

func TestHandlerToken(t *testing.T) {
	h, err := NewHandler(&Bundle{Files: map[string]string{"a.txt": "a"}})
	require.NoError(t, err)
	server := httptest.NewServer(h.Router("s3cret"))
	defer server.Close()

	_, err = NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client())).Load(context.Background())
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusUnauthorized, fetchErr.StatusCode)

	got, err := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()), WithToken("s3cret")).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", got.Files["a.txt"])

	// health stays open
	resp, err := server.Client().Get(server.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandlerETag(t *testing.T) {
	h, err := NewHandler(&Bundle{Files: map[string]string{"a.txt": "a"}})
	require.NoError(t, err)
	router := h.Router("")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	req := httptest.NewRequest(http.MethodGet, "/templates.json", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other.json", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
