package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(s SessionState, actions ...Action) (SessionState, []*PhaseCompleted) {
	var events []*PhaseCompleted
	for _, a := range actions {
		var ev *PhaseCompleted
		s, ev = Reduce(s, a)
		if ev != nil {
			events = append(events, ev)
		}
	}
	return s, events
}

func ticks(n int) []Action {
	out := make([]Action, n)
	for i := range out {
		out[i] = Tick{}
	}
	return out
}

func TestNewSessionState_Defaults(t *testing.T) {
	s := NewSessionState(DefaultTimerConfig())

	assert.Equal(t, PhaseWork, s.Phase)
	assert.Equal(t, 25*60, s.RemainingSeconds)
	assert.False(t, s.Running)
	assert.Equal(t, 0, s.CompletedWorkSessions)
	assert.Nil(t, s.Notice)
}

func TestReset_RestoresInitialState(t *testing.T) {
	configs := []TimerConfig{
		DefaultTimerConfig(),
		{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 1, SessionsBeforeLongBreak: 2},
		{WorkMinutes: 180, ShortBreakMinutes: 60, LongBreakMinutes: 120, SessionsBeforeLongBreak: 20},
		{WorkMinutes: 50, ShortBreakMinutes: 10, LongBreakMinutes: 30, SessionsBeforeLongBreak: 3},
	}

	for _, cfg := range configs {
		s := NewSessionState(cfg)
		s, _ = run(s, Start{})
		s, _ = run(s, ticks(cfg.WorkMinutes*60+5)...)
		s, _ = run(s, Start{}, Tick{}, Tick{})

		s, _ = Reduce(s, Reset{})

		assert.Equal(t, PhaseWork, s.Phase)
		assert.Equal(t, cfg.WorkMinutes*60, s.RemainingSeconds)
		assert.False(t, s.Running)
		assert.Equal(t, 0, s.CompletedWorkSessions)
		assert.Nil(t, s.Notice, "reset clears the pending notice")
	}
}

func TestTick_NTicksCompleteExactlyOnePhase(t *testing.T) {
	cfg := TimerConfig{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 2, SessionsBeforeLongBreak: 4}
	s := NewSessionState(cfg)
	s, _ = Reduce(s, Start{})

	n := s.RemainingSeconds
	s, events := run(s, ticks(n)...)

	require.Len(t, events, 1)
	assert.False(t, s.Running, "timer pauses after a transition")
	assert.Equal(t, PhaseShortBreak, s.Phase)
	assert.Equal(t, 60, s.RemainingSeconds)
	assert.Equal(t, &PhaseCompleted{From: PhaseWork, To: PhaseShortBreak, CompletedWorkSessions: 1}, events[0])
	assert.Equal(t, events[0], s.Notice)
}

func TestTick_IgnoredWhilePaused(t *testing.T) {
	s := NewSessionState(DefaultTimerConfig())
	before := s

	s, events := run(s, ticks(10)...)

	assert.Empty(t, events)
	assert.Equal(t, before, s)
}

func TestTick_NoFurtherTransitionsAfterPause(t *testing.T) {
	cfg := TimerConfig{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 1, SessionsBeforeLongBreak: 2}
	s := NewSessionState(cfg)
	s, _ = Reduce(s, Start{})

	s, events := run(s, ticks(500)...)

	assert.Len(t, events, 1)
	assert.Equal(t, PhaseShortBreak, s.Phase)
	assert.Equal(t, 60, s.RemainingSeconds)
}

func TestLongBreak_EveryNthWorkSession(t *testing.T) {
	cfg := DefaultTimerConfig()
	s := NewSessionState(cfg)

	var workTransitions []Phase
	for len(workTransitions) < 8 {
		s, _ = Reduce(s, Start{})
		var events []*PhaseCompleted
		s, events = run(s, ticks(s.RemainingSeconds)...)
		require.Len(t, events, 1)
		if events[0].From == PhaseWork {
			workTransitions = append(workTransitions, events[0].To)
		} else {
			assert.Equal(t, PhaseWork, events[0].To)
		}
	}

	assert.Equal(t, []Phase{
		PhaseShortBreak, PhaseShortBreak, PhaseShortBreak, PhaseLongBreak,
		PhaseShortBreak, PhaseShortBreak, PhaseShortBreak, PhaseLongBreak,
	}, workTransitions)
	assert.Equal(t, 8, s.CompletedWorkSessions)
}

func TestCompletedWorkSessions_CountsOnlyWork(t *testing.T) {
	cfg := TimerConfig{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 1, SessionsBeforeLongBreak: 3}
	s := NewSessionState(cfg)

	counts := []int{}
	for i := 0; i < 6; i++ {
		s, _ = Reduce(s, Start{})
		var events []*PhaseCompleted
		s, events = run(s, ticks(s.RemainingSeconds)...)
		require.Len(t, events, 1)
		counts = append(counts, events[0].CompletedWorkSessions)
	}

	assert.Equal(t, []int{1, 1, 2, 2, 3, 3}, counts)
}

func TestStart_NoEffectWhenRunningOrAtZero(t *testing.T) {
	s := NewSessionState(DefaultTimerConfig())
	s, _ = Reduce(s, Start{})
	again, _ := Reduce(s, Start{})
	assert.Equal(t, s, again)

	zero := NewSessionState(DefaultTimerConfig())
	zero.RemainingSeconds = 0
	after, _ := Reduce(zero, Start{})
	assert.False(t, after.Running)
}

func TestStart_ClearsNotice(t *testing.T) {
	cfg := TimerConfig{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 1, SessionsBeforeLongBreak: 2}
	s := NewSessionState(cfg)
	s, _ = Reduce(s, Start{})
	s, _ = run(s, ticks(60)...)
	require.NotNil(t, s.Notice)

	s, _ = Reduce(s, Start{})
	assert.Nil(t, s.Notice)
	assert.True(t, s.Running)
}

func TestDismiss_ClearsNoticeWithoutStarting(t *testing.T) {
	cfg := TimerConfig{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 1, SessionsBeforeLongBreak: 2}
	s := NewSessionState(cfg)
	s, _ = Reduce(s, Start{})
	s, _ = run(s, ticks(60)...)

	s, _ = Reduce(s, Dismiss{})
	assert.Nil(t, s.Notice)
	assert.False(t, s.Running)
	assert.Equal(t, PhaseShortBreak, s.Phase)
}

func TestPause_Idempotent(t *testing.T) {
	s := NewSessionState(DefaultTimerConfig())
	s, _ = run(s, Start{}, Tick{}, Tick{})

	once, _ := Reduce(s, Pause{})
	twice, _ := run(s, Pause{}, Pause{})

	assert.Equal(t, once, twice)
	assert.False(t, once.Running)
	assert.Equal(t, 25*60-2, once.RemainingSeconds)
}

func TestSetWorkMinutes_Clamps(t *testing.T) {
	s := NewSessionState(DefaultTimerConfig())

	s, _ = Reduce(s, SetWorkMinutes{Minutes: 9999})
	assert.Equal(t, 180, s.Config.WorkMinutes)

	s, _ = Reduce(s, SetWorkMinutes{Minutes: 0})
	assert.Equal(t, 1, s.Config.WorkMinutes)

	s, _ = Reduce(s, SetFieldText(FieldWorkMinutes, "abc"))
	assert.Equal(t, 1, s.Config.WorkMinutes)
}

func TestSetWorkMinutes_UpdatesRemainingOnlyWhenPausedInWork(t *testing.T) {
	s := NewSessionState(DefaultTimerConfig())

	paused, _ := Reduce(s, SetWorkMinutes{Minutes: 50})
	assert.Equal(t, 50*60, paused.RemainingSeconds)

	running, _ := run(s, Start{}, Tick{}, SetWorkMinutes{Minutes: 50})
	assert.Equal(t, 25*60-1, running.RemainingSeconds)
	assert.Equal(t, 50, running.Config.WorkMinutes)

	// the new length applies once the running phase ends and work comes round again
	cfg := TimerConfig{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 1, SessionsBeforeLongBreak: 2}
	b := NewSessionState(cfg)
	b, _ = Reduce(b, Start{})
	b, _ = run(b, ticks(60)...)
	require.Equal(t, PhaseShortBreak, b.Phase)
	b, _ = Reduce(b, SetWorkMinutes{Minutes: 30})
	assert.Equal(t, 60, b.RemainingSeconds, "a break in progress is not disrupted")
	b, _ = Reduce(b, Start{})
	b, _ = run(b, ticks(60)...)
	assert.Equal(t, PhaseWork, b.Phase)
	assert.Equal(t, 30*60, b.RemainingSeconds)
}

func TestOtherSetters_ClampAndLeaveRemaining(t *testing.T) {
	s := NewSessionState(DefaultTimerConfig())

	s, _ = run(s,
		SetShortBreakMinutes{Minutes: 61},
		SetLongBreakMinutes{Minutes: -3},
		SetSessionsBeforeLongBreak{Sessions: 1},
	)

	assert.Equal(t, 60, s.Config.ShortBreakMinutes)
	assert.Equal(t, 1, s.Config.LongBreakMinutes)
	assert.Equal(t, 2, s.Config.SessionsBeforeLongBreak)
	assert.Equal(t, 25*60, s.RemainingSeconds)
}

func TestSetConfig_OnlyTouchesChangedFields(t *testing.T) {
	s := NewSessionState(DefaultTimerConfig())
	s, _ = run(s, Start{}, Tick{}, Tick{}, Pause{})

	same, _ := Reduce(s, SetConfig{Config: DefaultTimerConfig()})
	assert.Equal(t, s.RemainingSeconds, same.RemainingSeconds, "unchanged work minutes keep elapsed time")

	cfg := DefaultTimerConfig()
	cfg.ShortBreakMinutes = 7
	cfg.SessionsBeforeLongBreak = 99
	changed, _ := Reduce(s, SetConfig{Config: cfg})
	assert.Equal(t, 7, changed.Config.ShortBreakMinutes)
	assert.Equal(t, 20, changed.Config.SessionsBeforeLongBreak)
	assert.Equal(t, s.RemainingSeconds, changed.RemainingSeconds)
}

func TestProgressAndClock(t *testing.T) {
	s := NewSessionState(TimerConfig{WorkMinutes: 2, ShortBreakMinutes: 1, LongBreakMinutes: 1, SessionsBeforeLongBreak: 2})
	assert.Equal(t, "02:00", s.Clock())
	assert.InDelta(t, 0.0, s.Progress(), 0.0001)

	s, _ = run(s, append([]Action{Start{}}, ticks(30)...)...)
	assert.Equal(t, "01:30", s.Clock())
	assert.InDelta(t, 0.25, s.Progress(), 0.0001)

	assert.Equal(t, "180:00", FormatClock(180*60))
}

func TestPhaseCompleted_Message(t *testing.T) {
	assert.Equal(t, "Work session 2 complete. Time for a short break.",
		PhaseCompleted{From: PhaseWork, To: PhaseShortBreak, CompletedWorkSessions: 2}.Message())
	assert.Equal(t, "Work session 4 complete. Time for a long break.",
		PhaseCompleted{From: PhaseWork, To: PhaseLongBreak, CompletedWorkSessions: 4}.Message())
	assert.Equal(t, "Break is over. Ready to focus?",
		PhaseCompleted{From: PhaseLongBreak, To: PhaseWork, CompletedWorkSessions: 4}.Message())
}
