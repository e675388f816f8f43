package db

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udeepa-des/StudyCountDown-backend/internal/observability"
)

// ConnState values are surfaced as-is by the health endpoint.
type ConnState int32

const (
	StateDisconnected  ConnState = 0
	StateConnected     ConnState = 1
	StateConnecting    ConnState = 2
	StateDisconnecting ConnState = 3
)

func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	case StateConnecting:
		return "connecting"
	case StateDisconnecting:
		return "disconnecting"
	default:
		return "unknown"
	}
}

// ErrNotConnected is returned by Pool before the first successful connect and
// after shutdown. Request handlers surface it as an internal error.
var ErrNotConnected = errors.New("database not connected")

type SupervisorConfig struct {
	DBURL     string
	Backoff   time.Duration // fixed delay between attempts
	PingEvery time.Duration
}

// Supervisor owns the database connection for the whole process. The server
// starts serving before the first connect succeeds; the supervisor keeps
// retrying with a fixed backoff forever and never exits the process.
type Supervisor struct {
	cfg  SupervisorConfig
	log  *slog.Logger
	prom *observability.Prom

	connect func(ctx context.Context) (*pgxpool.Pool, error)

	state    atomic.Int32
	attempts atomic.Uint64

	mu   sync.RWMutex
	pool *pgxpool.Pool
}

func NewSupervisor(cfg SupervisorConfig, log *slog.Logger, prom *observability.Prom) *Supervisor {
	if cfg.Backoff <= 0 {
		cfg.Backoff = 5 * time.Second
	}

	if cfg.PingEvery <= 0 {
		cfg.PingEvery = 15 * time.Second
	}

	s := &Supervisor{
		cfg:  cfg,
		log:  log,
		prom: prom,
	}

	s.connect = func(ctx context.Context) (*pgxpool.Pool, error) {
		return Connect(ctx, cfg.DBURL)
	}

	return s
}

// Run blocks until ctx is cancelled. Callers start it in its own goroutine.
func (s *Supervisor) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		s.setState(StateConnecting)
		attempt := s.bumpAttempts()
		s.log.Info("database connecting", "attempt", attempt)

		pool, err := s.connect(ctx)

		if err != nil {
			s.setState(StateDisconnected)
			s.log.Error("database connection failed",
				"attempt", attempt,
				"retry_in", s.cfg.Backoff.String(),
				"err", err,
			)

			select {
			case <-ctx.Done():
				return

			case <-time.After(s.cfg.Backoff):
			}
			continue
		}

		s.setPool(pool)
		s.setState(StateConnected)
		s.log.Info("database connected", "attempt", attempt)

		if !s.monitor(ctx, pool) {
			return
		}

		// ping failed: drop the pool and start over
		s.dropPool()
		s.setState(StateDisconnected)
		s.log.Error("database connection lost, reconnecting")
	}
}

// monitor pings until the connection dies (returns true) or ctx is cancelled
// (returns false).
func (s *Supervisor) monitor(ctx context.Context, pool *pgxpool.Pool) bool {
	ticker := time.NewTicker(s.cfg.PingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := pool.Ping(pingCtx)
			cancel()

			if err != nil {
				return true
			}
		}
	}
}

// Pool hands out the live pool for repo calls.
func (s *Supervisor) Pool() (*pgxpool.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.pool == nil {
		return nil, ErrNotConnected
	}

	return s.pool, nil
}

func (s *Supervisor) State() ConnState {
	return ConnState(s.state.Load())
}

func (s *Supervisor) Attempts() uint64 {
	return s.attempts.Load()
}

// Shutdown closes the pool during graceful shutdown. Cancel the Run context
// first so the retry loop does not reconnect behind it.
func (s *Supervisor) Shutdown() {
	s.setState(StateDisconnecting)
	s.dropPool()
	s.setState(StateDisconnected)
}

func (s *Supervisor) setState(state ConnState) {
	s.state.Store(int32(state))

	if s.prom != nil {
		s.prom.DbState.Set(float64(state))
	}
}

func (s *Supervisor) bumpAttempts() uint64 {
	if s.prom != nil {
		s.prom.DbReconnects.Inc()
	}

	return s.attempts.Add(1)
}

func (s *Supervisor) setPool(pool *pgxpool.Pool) {
	s.mu.Lock()
	s.pool = pool
	s.mu.Unlock()
}

func (s *Supervisor) dropPool() {
	s.mu.Lock()

	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
	s.mu.Unlock()
}
