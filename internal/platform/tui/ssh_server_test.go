package tui

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snakepit/internal/config"
	"github.com/vovakirdan/snakepit/internal/game"
)

func newTestSSHServer() *SSHServer {
	return &SSHServer{
		config:   DefaultSSHServerConfig(),
		logger:   log.New(io.Discard),
		sessions: make(map[string]*game.Session),
	}
}

// fastGameConfig keeps ticks short so a session that is still running
// shows up as tick movement within a few sleeps.
func fastGameConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Speed.InitialTickMs = 5
	cfg.Speed.FloorMs = 5
	return cfg
}

func TestCloseSessionStopsAbandonedGame(t *testing.T) {
	srv := newTestSSHServer()

	session := game.NewSession(fastGameConfig(), 1, nil, nil)
	session.Start()
	srv.trackSession("conn-1", session)

	// the connection drops without the model ever seeing a quit key
	srv.closeSession("conn-1")

	if session.State() != game.StatePaused {
		t.Fatalf("state = %v, want paused after close", session.State())
	}
	frozen := session.Snapshot()
	time.Sleep(40 * time.Millisecond)
	if after := session.Snapshot(); after.Tick != frozen.Tick {
		t.Fatalf("abandoned game kept playing: tick %d -> %d", frozen.Tick, after.Tick)
	}

	srv.mu.Lock()
	n := len(srv.sessions)
	srv.mu.Unlock()
	if n != 0 {
		t.Fatalf("tracked sessions = %d, want 0", n)
	}
}

func TestCloseSessionUnknownIDIsNoOp(t *testing.T) {
	srv := newTestSSHServer()

	// a connection without a PTY never registers a session
	srv.closeSession("conn-without-pty")

	session := game.NewSession(fastGameConfig(), 1, nil, nil)
	srv.trackSession("conn-1", session)
	srv.closeSession("conn-1")
	srv.closeSession("conn-1") // double close after the handler raced a shutdown
}

func TestTrackSessionKeepsConnectionsSeparate(t *testing.T) {
	srv := newTestSSHServer()

	a := game.NewSession(fastGameConfig(), 1, nil, nil)
	b := game.NewSession(fastGameConfig(), 2, nil, nil)
	a.Start()
	b.Start()
	srv.trackSession("conn-a", a)
	srv.trackSession("conn-b", b)

	srv.closeSession("conn-a")

	if a.State() != game.StatePaused {
		t.Fatalf("closed session state = %v, want paused", a.State())
	}
	if b.State() != game.StatePlaying {
		t.Fatalf("unrelated session state = %v, want playing", b.State())
	}
	b.Close()
}
