// Package server exposes the converter over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tsawler/docxhtml"
	"github.com/tsawler/docxhtml/docx"
	"github.com/tsawler/docxhtml/format"
	"github.com/tsawler/docxhtml/internal/config"
	"go.uber.org/zap"
)

// WarningsHeader carries the conversion warnings of a successful response.
const WarningsHeader = "X-Conversion-Warnings"

// Server serves POST /convert and GET /healthz.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	router *chi.Mux
}

// New creates a server. Conversion defaults come from cfg and may be
// overridden per request with the full, sanitize and spacing query
// parameters.
func New(cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{cfg: cfg, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/convert", s.handleConvert)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on the configured address until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.logger.Info("stopping server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// handleConvert converts an uploaded document. The document is either the
// raw request body or the "file" field of a multipart form.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)

	data, err := readUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	q := r.URL.Query()
	c := docxhtml.FromBytes(data).WithLogger(s.logger.With(zap.String("request_id", middleware.GetReqID(r.Context()))))
	if flag(q.Get("full"), s.cfg.FullDocument) {
		c = c.FullDocument()
	}
	if flag(q.Get("sanitize"), s.cfg.Sanitize) {
		c = c.Sanitize()
	}
	if !flag(q.Get("spacing"), !s.cfg.IgnoreSpacing) {
		c = c.IgnoreSpacing()
	}

	var (
		out         string
		warnings    []docxhtml.Warning
		contentType string
	)
	switch q.Get("format") {
	case "", "html":
		out, warnings, err = c.HTML()
		contentType = "text/html; charset=utf-8"
	case "text":
		out, warnings, err = c.Text()
		contentType = "text/plain; charset=utf-8"
	case "markdown":
		out, warnings, err = c.Markdown()
		contentType = "text/markdown; charset=utf-8"
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown format %q", q.Get("format")))
		return
	}

	if err != nil {
		s.logger.Debug("conversion failed", zap.Error(err))
		writeError(w, statusFor(err), err)
		return
	}

	if len(warnings) > 0 {
		w.Header().Set(WarningsHeader, docxhtml.FormatWarnings(warnings))
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, out)
}

// readUpload returns the uploaded document bytes.
func readUpload(r *http.Request) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			return nil, errors.New("empty request body")
		}
		return data, nil
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("reading form file: %w", err)
	}
	defer file.Close()
	return io.ReadAll(file)
}

// statusFor maps conversion errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, format.ErrNotDOCX):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, docx.ErrNoBody):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// flag parses a boolean query parameter, falling back to def when it is
// absent or malformed.
func flag(val string, def bool) bool {
	if val == "" {
		return def
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return def
	}
	return b
}

// requestLogger logs each request once it has been served.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
