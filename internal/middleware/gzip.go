package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
)

// gzipWriter оборачивает ResponseWriter и пишет тело через gzip.Writer.
type gzipWriter struct {
	http.ResponseWriter
	zw io.Writer
}

func (g gzipWriter) Write(b []byte) (int, error) {
	return g.zw.Write(b)
}

func (g gzipWriter) WriteHeader(statusCode int) {
	// Content-Length исходного тела больше не актуален
	g.ResponseWriter.Header().Del("Content-Length")
	g.ResponseWriter.WriteHeader(statusCode)
}

// Flush проталкивает сжатые данные клиенту. Нужен для SSE-потока.
func (g gzipWriter) Flush() {
	if gz, ok := g.zw.(*gzip.Writer); ok {
		_ = gz.Flush()
	}
	if f, ok := g.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// WithGzip сжимает ответ, если клиент прислал Accept-Encoding: gzip.
func WithGzip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gz := gzip.NewWriter(w)
		defer gz.Close()

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
		next.ServeHTTP(gzipWriter{ResponseWriter: w, zw: gz}, r)
	})
}
