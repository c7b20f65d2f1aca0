package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heatguard/backend/internal/domain"
	"github.com/heatguard/backend/internal/engine"
	"github.com/heatguard/backend/internal/observability"
)

// Snapshot is the published state of a session
type Snapshot struct {
	SessionID    string                 `json:"session_id"`
	Version      uint64                 `json:"version"`
	Input        domain.SimulationInput `json:"input"`
	Location     domain.LocationProfile `json:"location"`
	Metrics      domain.DerivedMetrics  `json:"metrics"`
	ClockRunning bool                   `json:"clock_running"`
	ClockTime    time.Time              `json:"clock_time"`
}

// SessionConfig tunes the session clock and idle reaping
type SessionConfig struct {
	ClockInterval time.Duration
	IdleTimeout   time.Duration
}

var errManagerClosed = errors.New("session manager closed")

// clock is the running re-simulation timer of one session
type clock struct {
	cancel context.CancelFunc
	done   chan struct{}
}

type session struct {
	id string

	mu       sync.Mutex
	snap     Snapshot
	lastSeen time.Time
	clock    *clock
	subs     map[uint64]chan Snapshot
	nextSub  uint64
	closed   bool
}

// SessionManager owns the simulation sessions of connected dashboards.
// Each session holds one immutable input snapshot that is replaced on every
// control change, and a cancelable clock that re-derives the ambient
// temperature once per interval.
type SessionManager struct {
	repo     LocationRepository
	recorder *observability.Recorder
	cfg      SessionConfig
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup // clocks and the reaper

	mu       sync.RWMutex
	sessions map[string]*session
	closed   bool
}

// NewSessionManager creates a session manager and starts idle reaping
func NewSessionManager(repo LocationRepository, recorder *observability.Recorder, cfg SessionConfig) *SessionManager {
	if cfg.ClockInterval <= 0 {
		cfg.ClockInterval = time.Minute
	}

	m := &SessionManager{
		repo:     repo,
		recorder: recorder,
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())

	if cfg.IdleTimeout > 0 {
		m.wg.Add(1)
		go m.reapLoop()
	}
	return m
}

// Create opens a session from the given controls and starts its clock
func (m *SessionManager) Create(ctx context.Context, in domain.SimulationInput) (Snapshot, error) {
	if err := in.Validate(); err != nil {
		return Snapshot{}, err
	}

	now := m.now()
	snap, err := m.evaluate(ctx, in, now, TriggerTransition)
	if err != nil {
		return Snapshot{}, err
	}

	s := &session{
		id:       uuid.NewString(),
		lastSeen: now,
		subs:     make(map[uint64]chan Snapshot),
	}
	snap.SessionID = s.id
	snap.Version = 1
	s.snap = snap

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return Snapshot{}, errManagerClosed
	}
	m.sessions[s.id] = s

	// the clock starts with the session, so the first snapshot already reports it
	s.mu.Lock()
	m.startClockLocked(s)
	s.snap.ClockRunning = true
	snap = s.snap
	s.mu.Unlock()

	m.recorder.SessionOpened()
	return snap, nil
}

// Get returns the current snapshot of a session
func (m *SessionManager) Get(id string) (Snapshot, error) {
	s, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, domain.ErrSessionNotFound
	}
	s.lastSeen = m.now()
	return s.snap, nil
}

// Apply runs transitions against the current snapshot and publishes the result.
// An invalid result leaves the session unchanged. The location lookup runs
// without holding the session; if another change lands meanwhile, the
// transitions are replayed on top of it.
func (m *SessionManager) Apply(ctx context.Context, id string, transitions ...Transition) (Snapshot, error) {
	s, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}

	for {
		base, err := s.current()
		if err != nil {
			return Snapshot{}, err
		}

		next := base.Input
		for _, t := range transitions {
			next = t(next)
		}
		if err := next.Validate(); err != nil {
			return Snapshot{}, err
		}

		snap, err := m.evaluate(ctx, next, base.ClockTime, TriggerTransition)
		if err != nil {
			return Snapshot{}, err
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return Snapshot{}, domain.ErrSessionNotFound
		}
		if s.snap.Version != base.Version {
			s.mu.Unlock()
			continue
		}
		s.lastSeen = m.now()
		s.commit(snap)
		snap = s.snap
		s.mu.Unlock()
		return snap, nil
	}
}

// StartClock starts the session clock and publishes the change.
// Starting a running clock is a no-op.
func (m *SessionManager) StartClock(id string) (Snapshot, error) {
	s, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, domain.ErrSessionNotFound
	}
	if m.startClockLocked(s) {
		s.commit(s.snap)
	}
	return s.snap, nil
}

// StopClock stops the session clock, publishes the change and waits for a
// tick in flight to finish. Stopping a stopped clock is a no-op.
func (m *SessionManager) StopClock(id string) (Snapshot, error) {
	s, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Snapshot{}, domain.ErrSessionNotFound
	}
	c := s.stopClockLocked()
	if c != nil {
		s.commit(s.snap)
	}
	snap := s.snap
	s.mu.Unlock()

	if c != nil {
		<-c.done
	}
	return snap, nil
}

// Subscribe returns a channel receiving every published snapshot, starting
// with the current one. A slow receiver only ever sees the latest snapshot.
// The returned func unsubscribes; the channel is also closed when the session closes.
func (m *SessionManager) Subscribe(id string) (<-chan Snapshot, func(), error) {
	s, err := m.lookup(id)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, nil, domain.ErrSessionNotFound
	}

	ch := make(chan Snapshot, 1)
	ch <- s.snap
	key := s.nextSub
	s.nextSub++
	s.subs[key] = ch
	s.lastSeen = m.now()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[key]; ok {
				delete(s.subs, key)
				close(c)
			}
		})
	}
	return ch, unsubscribe, nil
}

// Close stops the session clock, closes subscribers and forgets the session
func (m *SessionManager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return domain.ErrSessionNotFound
	}

	m.closeSession(s)
	return nil
}

// Count returns the number of open sessions
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ReapIdle closes sessions without subscribers that were not touched within
// the idle timeout. It returns the number of closed sessions.
func (m *SessionManager) ReapIdle(now time.Time) int {
	if m.cfg.IdleTimeout <= 0 {
		return 0
	}

	m.mu.RLock()
	var idle []string
	for id, s := range m.sessions {
		s.mu.Lock()
		if len(s.subs) == 0 && now.Sub(s.lastSeen) > m.cfg.IdleTimeout {
			idle = append(idle, id)
		}
		s.mu.Unlock()
	}
	m.mu.RUnlock()

	closed := 0
	for _, id := range idle {
		if err := m.Close(id); err == nil {
			closed++
		}
	}
	return closed
}

// Shutdown closes every session and waits for all clocks to exit
func (m *SessionManager) Shutdown() {
	m.mu.Lock()
	m.closed = true
	sessions := m.sessions
	m.sessions = make(map[string]*session)
	m.mu.Unlock()

	m.cancel()
	for _, s := range sessions {
		m.closeSession(s)
	}
	m.wg.Wait()
}

func (m *SessionManager) lookup(id string) (*session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *SessionManager) closeSession(s *session) {
	s.mu.Lock()
	c := s.stopClockLocked()
	s.closed = true
	for key, ch := range s.subs {
		delete(s.subs, key)
		close(ch)
	}
	s.mu.Unlock()

	if c != nil {
		<-c.done
	}
	m.recorder.SessionClosed()
}

// evaluate re-derives the ambient temperature at the given clock time and
// computes metrics for the resolved location.
func (m *SessionManager) evaluate(ctx context.Context, in domain.SimulationInput, at time.Time, trigger string) (Snapshot, error) {
	profile, err := m.repo.GetLocation(ctx, in.Location)
	if err != nil {
		return Snapshot{}, fmt.Errorf("session: failed to resolve location: %w", err)
	}
	in.Location = profile.Key
	in = engine.WithAmbientTemperature(in, profile, at)

	metrics := engine.ComputeMetrics(in, profile)
	m.recorder.ObserveComputation(trigger, metrics.HeatRisk)

	return Snapshot{
		Input:     in,
		Location:  profile,
		Metrics:   metrics,
		ClockTime: at,
	}, nil
}

// startClockLocked starts the clock goroutine unless one is running.
// It reports whether a clock was started. Callers hold s.mu.
func (m *SessionManager) startClockLocked(s *session) bool {
	if s.clock != nil || s.closed {
		return false
	}

	ctx, cancel := context.WithCancel(m.ctx)
	c := &clock{cancel: cancel, done: make(chan struct{})}
	s.clock = c

	m.wg.Add(1)
	go m.runClock(ctx, s, c)
	return true
}

func (m *SessionManager) runClock(ctx context.Context, s *session, c *clock) {
	defer m.wg.Done()
	defer close(c.done)

	ticker := time.NewTicker(m.cfg.ClockInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick(ctx, s)
		}
	}
}

// tick re-simulates the session at the current time. Like Apply it evaluates
// without holding the session and retries when a transition lands meanwhile.
func (m *SessionManager) tick(ctx context.Context, s *session) {
	for {
		base, err := s.current()
		if err != nil {
			return
		}

		snap, err := m.evaluate(ctx, base.Input, m.now(), TriggerClock)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("Session %s clock tick failed: %v", s.id, err)
			}
			return
		}

		s.mu.Lock()
		if ctx.Err() != nil || s.closed {
			s.mu.Unlock()
			return
		}
		if s.snap.Version != base.Version {
			s.mu.Unlock()
			continue
		}
		m.recorder.ClockTick()
		s.commit(snap)
		s.mu.Unlock()
		return
	}
}

func (m *SessionManager) reapLoop() {
	defer m.wg.Done()

	interval := m.cfg.IdleTimeout / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			if n := m.ReapIdle(m.now()); n > 0 {
				log.Printf("Reaped %d idle sessions", n)
			}
		}
	}
}

// current returns the published snapshot of an open session
func (s *session) current() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, domain.ErrSessionNotFound
	}
	return s.snap, nil
}

// stopClockLocked cancels the running clock and returns it so the caller can
// wait for it after releasing s.mu. The snapshot is left to commit.
func (s *session) stopClockLocked() *clock {
	c := s.clock
	s.clock = nil
	if c != nil {
		c.cancel()
	}
	return c
}

// commit replaces the snapshot and publishes it. Callers hold s.mu.
func (s *session) commit(next Snapshot) {
	next.SessionID = s.id
	next.Version = s.snap.Version + 1
	next.ClockRunning = s.clock != nil
	s.snap = next

	for _, ch := range s.subs {
		select {
		case ch <- next:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- next
		}
	}
}
