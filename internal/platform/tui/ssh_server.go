package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/snakepit/internal/config"
	"github.com/vovakirdan/snakepit/internal/game"
	"github.com/vovakirdan/snakepit/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.snakepit/host_key.
	HostKeyPath string

	// DBPath is the path to the session database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game holds the board configuration every connection plays with.
	Game config.Config

	// FPS is the render frame rate.
	FPS int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.snakepit/snakepit.db",
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultConfig(),
		FPS:         30,
	}
}

// SSHServer wraps a Wish SSH server that gives every connection its own
// game session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger

	mu       sync.Mutex
	sessions map[string]*game.Session // live game sessions by SSH session ID
}

// recordOnlyStore keeps session records and events but disables the
// resumable save slot, which is a singleton and cannot be shared between
// concurrent connections.
type recordOnlyStore struct {
	*storage.Store
}

func (recordOnlyStore) LoadSavedState() (*game.SavedState, error) { return nil, nil }
func (recordOnlyStore) SaveState(game.SavedState) error           { return nil }
func (recordOnlyStore) ClearSavedState() error                    { return nil }

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "snakepit-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open session database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config:   cfg,
		store:    store,
		logger:   logger,
		sessions: make(map[string]*game.Session),
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".snakepit", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionCleanupMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH connection.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	var store game.Persistence
	if s.store != nil {
		store = recordOnlyStore{s.store}
	}

	session := game.NewSession(s.config.Game, time.Now().UnixNano(), store, s.logger.With("user", sshSession.User()))
	s.trackSession(sshSession.Context().SessionID(), session)
	model := NewModel(session, pty.Window.Width, pty.Window.Height, s.config.FPS)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// trackSession registers a connection's game session so it can be shut
// down when the connection goes away.
func (s *SSHServer) trackSession(id string, session *game.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = session
}

// closeSession closes and forgets the game session of a connection.
// Connections that never got a session, such as ones without a PTY, are
// a no-op, and closing twice is harmless.
func (s *SSHServer) closeSession(id string) {
	s.mu.Lock()
	session := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if session != nil {
		session.Close()
	}
}

// sessionCleanupMiddleware closes a connection's game session after the
// handler returns. A dropped connection kills the tea program without
// any quit key reaching the model, so the session's timers have to be
// stopped here or the abandoned game keeps playing against the store.
func (s *SSHServer) sessionCleanupMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		defer s.closeSession(sshSession.Context().SessionID())
		next(sshSession)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("connection opened",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("connection closed",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)

	// stop any game sessions still live before the store goes away
	s.mu.Lock()
	remaining := make([]*game.Session, 0, len(s.sessions))
	for id, session := range s.sessions {
		remaining = append(remaining, session)
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	for _, session := range remaining {
		session.Close()
	}

	if s.store != nil {
		s.store.Close()
	}

	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
