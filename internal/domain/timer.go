package domain

import "fmt"

// PhaseCompleted is emitted when a phase runs out and the timer moves on.
type PhaseCompleted struct {
	From                  Phase
	To                    Phase
	CompletedWorkSessions int
}

// Title returns a short heading for notifications
func (e PhaseCompleted) Title() string {
	if e.From == PhaseWork {
		return "Work session complete"
	}
	return "Break is over"
}

// Message returns the notification body
func (e PhaseCompleted) Message() string {
	switch e.To {
	case PhaseShortBreak:
		return fmt.Sprintf("Work session %d complete. Time for a short break.", e.CompletedWorkSessions)
	case PhaseLongBreak:
		return fmt.Sprintf("Work session %d complete. Time for a long break.", e.CompletedWorkSessions)
	default:
		return "Break is over. Ready to focus?"
	}
}

// SessionState is the whole timer state. It is a value: the reducer returns
// a new state rather than mutating the old one.
type SessionState struct {
	RemainingSeconds      int
	Running               bool
	Phase                 Phase
	CompletedWorkSessions int
	Config                TimerConfig

	// Notice is the last transition, kept until the user acknowledges it
	Notice *PhaseCompleted
}

// NewSessionState creates the initial state for a config
func NewSessionState(cfg TimerConfig) SessionState {
	cfg = cfg.Clamped()
	return SessionState{
		RemainingSeconds: cfg.PhaseSeconds(PhaseWork),
		Phase:            PhaseWork,
		Config:           cfg,
	}
}

// PhaseSeconds returns the full length of the current phase
func (s SessionState) PhaseSeconds() int {
	return s.Config.PhaseSeconds(s.Phase)
}

// Progress returns the elapsed fraction of the current phase in [0, 1]
func (s SessionState) Progress() float64 {
	total := s.PhaseSeconds()
	if total <= 0 {
		return 1
	}
	p := float64(total-s.RemainingSeconds) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Clock formats the remaining time as MM:SS
func (s SessionState) Clock() string {
	return FormatClock(s.RemainingSeconds)
}

// FormatClock formats seconds as MM:SS; minutes are not wrapped into hours
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Action is an input to Reduce
type Action interface {
	action()
}

type (
	// Start resumes the countdown
	Start struct{}
	// Pause freezes the countdown
	Pause struct{}
	// Tick advances the countdown by one second
	Tick struct{}
	// Reset returns to the first work phase
	Reset struct{}
	// Dismiss clears the pending notice without starting
	Dismiss struct{}

	SetWorkMinutes             struct{ Minutes int }
	SetShortBreakMinutes       struct{ Minutes int }
	SetLongBreakMinutes        struct{ Minutes int }
	SetSessionsBeforeLongBreak struct{ Sessions int }

	// SetConfig applies each changed field through its setter
	SetConfig struct{ Config TimerConfig }
)

func (Start) action() {}
func (Pause) action() {}
func (Tick) action() {}
func (Reset) action() {}
func (Dismiss) action() {}
func (SetWorkMinutes) action() {}
func (SetShortBreakMinutes) action() {}
func (SetLongBreakMinutes) action() {}
func (SetSessionsBeforeLongBreak) action() {}
func (SetConfig) action() {}

// SetField builds the setter action for a field
func SetField(f Field, n int) Action {
	switch f {
	case FieldWorkMinutes:
		return SetWorkMinutes{Minutes: n}
	case FieldShortBreakMinutes:
		return SetShortBreakMinutes{Minutes: n}
	case FieldLongBreakMinutes:
		return SetLongBreakMinutes{Minutes: n}
	default:
		return SetSessionsBeforeLongBreak{Sessions: n}
	}
}

// SetFieldText builds the setter action for raw text input
func SetFieldText(f Field, raw string) Action {
	return SetField(f, f.Bounds().Parse(raw))
}

// Reduce applies an action to a state. The returned event is non-nil only
// when a phase completed.
func Reduce(s SessionState, a Action) (SessionState, *PhaseCompleted) {
	switch a := a.(type) {
	case Start:
		if s.Running || s.RemainingSeconds == 0 {
			return s, nil
		}
		s.Running = true
		s.Notice = nil
		return s, nil

	case Pause:
		s.Running = false
		return s, nil

	case Tick:
		if !s.Running {
			return s, nil
		}
		if s.RemainingSeconds > 0 {
			s.RemainingSeconds--
		}
		if s.RemainingSeconds > 0 {
			return s, nil
		}
		return completePhase(s)

	case Reset:
		return NewSessionState(s.Config), nil

	case Dismiss:
		s.Notice = nil
		return s, nil

	case SetWorkMinutes:
		s.Config.WorkMinutes = WorkMinutesBounds.Clamp(a.Minutes)
		if !s.Running && s.Phase == PhaseWork {
			s.RemainingSeconds = s.Config.PhaseSeconds(PhaseWork)
		}
		return s, nil

	case SetShortBreakMinutes:
		s.Config.ShortBreakMinutes = ShortBreakMinutesBounds.Clamp(a.Minutes)
		return s, nil

	case SetLongBreakMinutes:
		s.Config.LongBreakMinutes = LongBreakMinutesBounds.Clamp(a.Minutes)
		return s, nil

	case SetSessionsBeforeLongBreak:
		s.Config.SessionsBeforeLongBreak = SessionsBeforeLongBreakBounds.Clamp(a.Sessions)
		return s, nil

	case SetConfig:
		next := a.Config.Clamped()
		for _, f := range Fields {
			if next.Get(f) != s.Config.Get(f) {
				s, _ = Reduce(s, SetField(f, next.Get(f)))
			}
		}
		return s, nil
	}

	return s, nil
}

// completePhase moves to the next phase and pauses until acknowledged
func completePhase(s SessionState) (SessionState, *PhaseCompleted) {
	from := s.Phase
	if from == PhaseWork {
		s.CompletedWorkSessions++
		every := SessionsBeforeLongBreakBounds.Clamp(s.Config.SessionsBeforeLongBreak)
		if s.CompletedWorkSessions%every == 0 {
			s.Phase = PhaseLongBreak
		} else {
			s.Phase = PhaseShortBreak
		}
	} else {
		s.Phase = PhaseWork
	}

	s.RemainingSeconds = s.Config.PhaseSeconds(s.Phase)
	s.Running = false

	event := &PhaseCompleted{
		From:                  from,
		To:                    s.Phase,
		CompletedWorkSessions: s.CompletedWorkSessions,
	}
	s.Notice = event
	return s, event
}
