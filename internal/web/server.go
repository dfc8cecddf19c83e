// Package web serves the trainer to a browser over a websocket.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/prompt"
	"github.com/verte-zerg/typeracer/internal/trainer"
)

const shutdownTimeout = 5 * time.Second

//go:embed static
var staticFiles embed.FS

// Config defines server settings.
type Config struct {
	Addr           string
	AllowedOrigins []string
	Practice       model.Config
}

// Server hosts the page, the level API and one trainer per websocket.
type Server struct {
	cfg      Config
	bank     *prompt.Bank
	log      logrus.FieldLogger
	opts     []trainer.Option
	cors     *cors.Cors
	upgrader websocket.Upgrader
	ctx      context.Context
}

// New constructs a Server. opts are applied to every connection's trainer.
func New(cfg Config, bank *prompt.Bank, log logrus.FieldLogger, opts ...trainer.Option) *Server {
	s := &Server{
		cfg:  cfg,
		bank: bank,
		log:  log.WithField("component", "web"),
		opts: opts,
		cors: cors.New(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet},
		}),
		ctx: context.Background(),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /", http.FileServer(http.FS(static)))
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.Handle("GET /api/levels", s.cors.Handler(http.HandlerFunc(s.handleLevels)))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Run serves until ctx is cancelled, then shuts down and closes open
// websockets.
func (s *Server) Run(ctx context.Context) error {
	s.ctx = ctx
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.WithField("addr", s.cfg.Addr).Info("server listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
		s.log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	log := s.log.WithField("remote", conn.RemoteAddr().String())
	stop := context.AfterFunc(s.ctx, func() {
		_ = conn.Close()
	})
	defer func() {
		stop()
		if cerr := conn.Close(); cerr != nil {
			// Best-effort close; the peer may already be gone.
			_ = cerr
		}
	}()

	c := &client{
		conn:  conn,
		log:   log,
		level: r.URL.Query().Get("level"),
	}
	if c.level == "" {
		c.level = s.cfg.Practice.Level.String()
	}
	opts := append([]trainer.Option{
		trainer.WithFreshPrompt(s.cfg.Practice.FreshPrompt),
		trainer.WithLogger(log),
	}, s.opts...)
	tr, err := trainer.New(c, s.bank, opts...)
	if err != nil {
		log.WithError(err).Error("trainer not wired")
		return
	}
	c.trainer = tr
	tr.Init()
	if err := c.flush(); err != nil {
		log.WithError(err).Warn("websocket write failed")
		return
	}
	log.Debug("client connected")
	c.run()
	log.Debug("client disconnected")
}

func (s *Server) handleLevels(w http.ResponseWriter, _ *http.Request) {
	levels := s.bank.Levels()
	out := make([]levelInfo, 0, len(levels))
	for _, l := range levels {
		out = append(out, levelInfo{Level: int(l), Label: l.Label(), Prompts: len(s.bank.Pool(l))})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.log.WithError(err).Warn("failed to write levels")
	}
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if len(s.cfg.AllowedOrigins) > 0 {
		return s.cors.OriginAllowed(r)
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}
