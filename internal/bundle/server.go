package bundle

import (
	"bytes"
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/company/fastapi-configurator/internal/filemanager"
	"github.com/company/fastapi-configurator/internal/output"
)

// Handler serves one bundle at /templates.json, the layout Client expects
// from a base URL.
type Handler struct {
	body []byte
	etag string
}

// NewHandler encodes b once for serving.
func NewHandler(b *Bundle) (*Handler, error) {
	var buf bytes.Buffer
	if err := Write(&buf, b); err != nil {
		return nil, err
	}
	return &Handler{
		body: buf.Bytes(),
		etag: strconv.Quote(filemanager.HashBytes(buf.Bytes())),
	}, nil
}

// Router mounts the bundle routes. A non-empty token is required as a
// bearer token on the bundle route.
func (h *Handler) Router(token string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Group(func(r chi.Router) {
		if token != "" {
			r.Use(bearerAuth(token))
		}
		r.Get("/"+FileName, h.serveBundle)
	})
	return r
}

func (h *Handler) serveBundle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("ETag", h.etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == h.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(h.body)))
	w.Write(h.body)
}

func bearerAuth(token string) func(http.Handler) http.Handler {
	want := []byte("Bearer " + token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if subtle.ConstantTimeCompare([]byte(r.Header.Get("Authorization")), want) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		output.Stage("serve").Debug("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "bytes", ww.BytesWritten())
	})
}
