package service

import (
	"sync"
	"time"

	"github.com/andy/fomoduct/internal/domain"
	"github.com/hashicorp/go-hclog"
)

// EventType defines the type of SessionTimer event
type EventType string

const (
	EventStateChanged   EventType = "state_changed"
	EventPhaseCompleted EventType = "phase_completed"
)

// Event is published to subscribers after every state change
type Event struct {
	Type      EventType
	State     domain.SessionState
	Completed *domain.PhaseCompleted // set for EventPhaseCompleted
	At        time.Time
}

// SessionTimer owns the session state. Every command runs the reducer under
// one lock, so ticks and user commands are applied strictly in order.
type SessionTimer interface {
	// Snapshot returns a copy of the current state
	Snapshot() domain.SessionState

	RemainingSeconds() int
	IsRunning() bool
	Phase() domain.Phase
	CompletedWorkSessions() int
	Config() domain.TimerConfig

	Start()
	Pause()
	// Toggle starts a paused timer or pauses a running one
	Toggle()
	Reset()
	Dismiss()
	// Tick advances one second; the event is non-nil when a phase completed
	Tick() *domain.PhaseCompleted

	SetWorkMinutes(n int)
	SetShortBreakMinutes(n int)
	SetLongBreakMinutes(n int)
	SetSessionsBeforeLongBreak(n int)
	// SetFieldText applies raw text input to a field, clamping as needed
	SetFieldText(f domain.Field, raw string)
	// ApplyConfig applies every changed field through its setter
	ApplyConfig(cfg domain.TimerConfig)

	// Subscribe registers an observer channel
	Subscribe(buffer int) <-chan Event
	// Unsubscribe removes and closes an observer channel
	Unsubscribe(ch <-chan Event)
	// Close closes every observer channel
	Close()
}

type sessionTimer struct {
	mu          sync.Mutex
	state       domain.SessionState
	subscribers []chan Event
	logger      hclog.Logger
	now         func() time.Time
}

// NewSessionTimer creates a timer in the initial Work phase
func NewSessionTimer(cfg domain.TimerConfig, logger hclog.Logger) SessionTimer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &sessionTimer{
		state:  domain.NewSessionState(cfg),
		logger: logger.Named("timer"),
		now:    time.Now,
	}
}

func (t *sessionTimer) Snapshot() domain.SessionState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *sessionTimer) RemainingSeconds() int { return t.Snapshot().RemainingSeconds }
func (t *sessionTimer) IsRunning() bool { return t.Snapshot().Running }
func (t *sessionTimer) Phase() domain.Phase { return t.Snapshot().Phase }
func (t *sessionTimer) CompletedWorkSessions() int { return t.Snapshot().CompletedWorkSessions }
func (t *sessionTimer) Config() domain.TimerConfig { return t.Snapshot().Config }
func (t *sessionTimer) Start() { t.dispatch(domain.Start{}) }
func (t *sessionTimer) Pause() { t.dispatch(domain.Pause{}) }
func (t *sessionTimer) Reset() { t.dispatch(domain.Reset{}) }
func (t *sessionTimer) Dismiss() { t.dispatch(domain.Dismiss{}) }
func (t *sessionTimer) SetWorkMinutes(n int) { t.dispatch(domain.SetWorkMinutes{Minutes: n}) }
func (t *sessionTimer) SetShortBreakMinutes(n int) { t.dispatch(domain.SetShortBreakMinutes{Minutes: n}) }
func (t *sessionTimer) SetLongBreakMinutes(n int) { t.dispatch(domain.SetLongBreakMinutes{Minutes: n}) }
func (t *sessionTimer) SetSessionsBeforeLongBreak(n int) {
	t.dispatch(domain.SetSessionsBeforeLongBreak{Sessions: n})
}

func (t *sessionTimer) SetFieldText(f domain.Field, raw string) {
	t.dispatch(domain.SetFieldText(f, raw))
}

func (t *sessionTimer) ApplyConfig(cfg domain.TimerConfig) {
	t.dispatch(domain.SetConfig{Config: cfg})
}

func (t *sessionTimer) Toggle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Running {
		t.dispatchLocked(domain.Pause{})
	} else {
		t.dispatchLocked(domain.Start{})
	}
}

func (t *sessionTimer) Tick() *domain.PhaseCompleted {
	return t.dispatch(domain.Tick{})
}

func (t *sessionTimer) dispatch(a domain.Action) *domain.PhaseCompleted {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dispatchLocked(a)
}

func (t *sessionTimer) dispatchLocked(a domain.Action) *domain.PhaseCompleted {
	prev := t.state
	next, completed := domain.Reduce(prev, a)
	t.state = next

	if completed != nil {
		t.logger.Info("phase completed",
			"from", completed.From,
			"to", completed.To,
			"completed_work_sessions", completed.CompletedWorkSessions)
		t.emitLocked(Event{
			Type:      EventPhaseCompleted,
			State:     next,
			Completed: completed,
			At:        t.now(),
		})
		return completed
	}

	if next != prev {
		if next.Running != prev.Running {
			t.logger.Debug("running changed", "running", next.Running, "phase", next.Phase, "remaining", next.RemainingSeconds)
		}
		if next.Config != prev.Config {
			t.logger.Debug("config changed",
				"work", next.Config.WorkMinutes,
				"short_break", next.Config.ShortBreakMinutes,
				"long_break", next.Config.LongBreakMinutes,
				"sessions", next.Config.SessionsBeforeLongBreak)
		}
		t.emitLocked(Event{
			Type:  EventStateChanged,
			State: next,
			At:    t.now(),
		})
	}
	return nil
}

func (t *sessionTimer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	t.mu.Lock()
	t.subscribers = append(t.subscribers, ch)
	t.mu.Unlock()
	return ch
}

func (t *sessionTimer) Unsubscribe(ch <-chan Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, sub := range t.subscribers {
		if sub == ch {
			t.subscribers = append(t.subscribers[:i], t.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

func (t *sessionTimer) Close() {
	t.mu.Lock()
	subs := t.subscribers
	t.subscribers = nil
	t.mu.Unlock()

	for _, ch := range subs {
		close(ch)
	}
}

// emitLocked never blocks; a full subscriber misses the event
func (t *sessionTimer) emitLocked(event Event) {
	for _, ch := range t.subscribers {
		select {
		case ch <- event:
		default:
			t.logger.Trace("subscriber full, event dropped", "type", event.Type)
		}
	}
}
