package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// общий Sugared-логгер мидлвари; задаётся из main через SetLogger
var logger *zap.SugaredLogger = zap.NewNop().Sugar()

// SetLogger передаёт логгер в мидлварь логирования.
func SetLogger(l *zap.SugaredLogger) {
	logger = l
}

type responseData struct {
	status int
	size   int
}

// loggingWriter перехватывает статус и размер ответа.
type loggingWriter struct {
	http.ResponseWriter
	data *responseData
}

func (w *loggingWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.data.size += n
	return n, err
}

func (w *loggingWriter) WriteHeader(statusCode int) {
	w.data.status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *loggingWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// WithLogging логирует каждый запрос: метод, URI, статус, размер, длительность.
func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		data := &responseData{status: http.StatusOK}
		lw := &loggingWriter{ResponseWriter: w, data: data}

		next.ServeHTTP(lw, r)

		logger.Infow("request",
			"method", r.Method,
			"uri", r.RequestURI,
			"status", data.status,
			"size", data.size,
			"duration", time.Since(start),
		)
	})
}
