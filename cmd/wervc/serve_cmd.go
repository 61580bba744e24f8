package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/wervc-lang/wervc"
	"github.com/wervc-lang/wervc/errors"
)

// maxRequestBytes limits the size of a compile request body.
const maxRequestBytes = 1 << 20

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a compile HTTP API",
		Long: `Serve an HTTP API for compiling programs.

  POST /compile  {"source": "...", "filename": "...", "validate": true}
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: a.runServe,
	}
	cmd.Flags().String("addr", "127.0.0.1:8080", "Address to listen on")
	a.cfg.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              a.cfg.GetString("addr"),
		Handler:           newServer(log.Logger, a.cfg.GetString("entry")),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type compileRequest struct {
	Source   string `json:"source"`
	Filename string `json:"filename,omitempty"`
	Validate bool   `json:"validate,omitempty"`
}

type compileResponse struct {
	ID       string         `json:"id"`
	Assembly string         `json:"assembly,omitempty"`
	Error    *errorResponse `json:"error,omitempty"`
}

type errorResponse struct {
	Code        string `json:"code,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Kind        string `json:"kind"`
	Message     string `json:"message"`
	Filename    string `json:"filename,omitempty"`
	Line        int    `json:"line,omitempty"`
	Column      int    `json:"column,omitempty"`
	Rendered    string `json:"rendered"`
}

type server struct {
	logger zerolog.Logger
	entry  string
}

// newServer returns the HTTP handler of the compile API.
func newServer(logger zerolog.Logger, entry string) http.Handler {
	s := &server{logger: logger, entry: entry}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/compile", s.handleCompile)
	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *server) handleCompile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.NewV4()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	var req compileRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, compileResponse{
			ID:    id.String(),
			Error: &errorResponse{Kind: "request error", Message: err.Error(), Rendered: err.Error()},
		})
		return
	}

	opts := []wervc.Option{wervc.WithEntry(s.entry), wervc.WithLogger(s.logger)}
	if req.Filename != "" {
		opts = append(opts, wervc.WithFilename(req.Filename))
	}
	if req.Validate {
		opts = append(opts, wervc.WithValidation())
	}
	text, err := wervc.Compile(r.Context(), req.Source, opts...)
	if err != nil {
		s.logger.Debug().Str("id", id.String()).Err(err).Msg("compile failed")
		writeJSON(w, http.StatusUnprocessableEntity, compileResponse{
			ID:    id.String(),
			Error: newErrorResponse(err),
		})
		return
	}
	writeJSON(w, http.StatusOK, compileResponse{ID: id.String(), Assembly: text})
}

func newErrorResponse(err error) *errorResponse {
	resp := &errorResponse{
		Kind:     "error",
		Message:  err.Error(),
		Rendered: wervc.FriendlyError(err, false),
	}
	var fe errors.FormattableError
	if stderrors.As(err, &fe) {
		formatted := fe.ToFormatted()
		if formatted.Code != "" {
			resp.Code = formatted.Code.String()
			resp.Category = formatted.Code.Category()
			resp.Description = formatted.Code.Description()
		}
		resp.Kind = formatted.Kind
		resp.Message = formatted.Message
		resp.Filename = formatted.Filename
		resp.Line = formatted.Line
		resp.Column = formatted.Column
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}
