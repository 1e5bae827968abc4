package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/five82/logsift/internal/query"
)

// Runner executes queries. *query.Engine implements it.
type Runner interface {
	Run(q query.Query) (query.Result, error)
}

var _ Runner = (*query.Engine)(nil)

const (
	defaultRateLimit = rate.Limit(20)
	defaultBurst     = 40
	limiterIdle      = 10 * time.Minute
	shutdownTimeout  = 10 * time.Second
)

// ServerOptions tune a Server. Zero values select the defaults.
type ServerOptions struct {
	RateLimit rate.Limit
	Burst     int
	Logger    *zerolog.Logger
}

// Server exposes a Runner over HTTP.
type Server struct {
	runner  Runner
	limiter *ipRateLimiter
	log     zerolog.Logger
}

// NewServer builds a Server around runner.
func NewServer(runner Runner, opts ServerOptions) *Server {
	limit := opts.RateLimit
	if limit <= 0 {
		limit = defaultRateLimit
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = defaultBurst
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Server{
		runner:  runner,
		limiter: newIPRateLimiter(limit, burst),
		log:     log,
	}
}

// Handler returns the routed handler with CORS and rate limiting applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(pathLogs, s.handleLogs)
	mux.HandleFunc(pathFolderLogs, s.handleFolderLogs)
	mux.HandleFunc(pathHealth, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return corsMiddleware(s.rateLimit(mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go s.pruneLimiters(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("api listening")
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) pruneLimiters(ctx context.Context) {
	ticker := time.NewTicker(limiterIdle)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.limiter.prune(limiterIdle); n > 0 {
				s.log.Debug().Int("removed", n).Msg("pruned idle rate limiters")
			}
		}
	}
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	s.handleQuery(w, r, "path", false)
}

func (s *Server) handleFolderLogs(w http.ResponseWriter, r *http.Request) {
	s.handleQuery(w, r, "folder", true)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request, sourceParam string, folder bool) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	params := r.URL.Query()
	q := query.Query{
		Source: params.Get(sourceParam),
		Folder: folder,
		Text:   params.Get("filter"),
		Level:  params.Get("level"),
		Start:  params.Get("start"),
		End:    params.Get("end"),
	}
	if strings.TrimSpace(q.Source) == "" {
		writeError(w, http.StatusBadRequest, "missing "+sourceParam+" parameter")
		return
	}

	started := time.Now()
	res, err := s.runner.Run(q)
	if err != nil {
		status := statusForError(err)
		s.log.Warn().
			Err(err).
			Str("source", q.Source).
			Int("status", status).
			Msg("query failed")
		writeError(w, status, err.Error())
		return
	}

	s.log.Info().
		Str("path", r.URL.Path).
		Str("file", res.File).
		Int("lines", len(res.Lines)).
		Bool("truncated", res.Truncated).
		Dur("elapsed", time.Since(started)).
		Msg("query served")
	if res.Lines == nil {
		res.Lines = []string{}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == pathHealth {
			next.ServeHTTP(w, r)
			return
		}
		ip := getClientIP(r)
		if !s.limiter.getLimiter(ip).Allow() {
			s.log.Warn().Str("client", ip).Msg("rate limited")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func statusForError(err error) int {
	switch query.KindOf(err) {
	case query.KindBadInput:
		return http.StatusBadRequest
	case query.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
