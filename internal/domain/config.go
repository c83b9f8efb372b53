package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Bounds is the inclusive range accepted by a TimerConfig field.
type Bounds struct {
	Min int
	Max int
}

var (
	WorkMinutesBounds             = Bounds{Min: 1, Max: 180}
	ShortBreakMinutesBounds       = Bounds{Min: 1, Max: 60}
	LongBreakMinutesBounds        = Bounds{Min: 1, Max: 120}
	SessionsBeforeLongBreakBounds = Bounds{Min: 2, Max: 20}
)

// Clamp forces n into the range
func (b Bounds) Clamp(n int) int {
	if n < b.Min {
		return b.Min
	}
	if n > b.Max {
		return b.Max
	}
	return n
}

// Parse reads raw text the way a numeric form field does: surrounding
// whitespace is ignored and only the leading signed run of digits counts
// ("12abc" is 12). Text without leading digits yields Min. The result is
// clamped.
func (b Bounds) Parse(raw string) int {
	s := strings.TrimSpace(raw)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return b.Min
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Only overflow is possible here; saturate toward the sign.
		if s[0] == '-' {
			return b.Min
		}
		return b.Max
	}
	return b.Clamp(n)
}

// Field names one of the editable TimerConfig values
type Field string

const (
	FieldWorkMinutes             Field = "work"
	FieldShortBreakMinutes       Field = "short_break"
	FieldLongBreakMinutes        Field = "long_break"
	FieldSessionsBeforeLongBreak Field = "sessions"
)

// Fields lists the editable fields in display order
var Fields = []Field{
	FieldWorkMinutes,
	FieldShortBreakMinutes,
	FieldLongBreakMinutes,
	FieldSessionsBeforeLongBreak,
}

// ParseField resolves a field name, accepting a few common spellings
func ParseField(name string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "work", "work_minutes", "work-minutes":
		return FieldWorkMinutes, nil
	case "short", "short_break", "short-break", "short_break_minutes":
		return FieldShortBreakMinutes, nil
	case "long", "long_break", "long-break", "long_break_minutes":
		return FieldLongBreakMinutes, nil
	case "sessions", "sessions_before_long_break", "sessions-before-long-break":
		return FieldSessionsBeforeLongBreak, nil
	}
	return "", fmt.Errorf("unknown timer field %q (want work, short_break, long_break or sessions)", name)
}

// Bounds returns the accepted range for the field
func (f Field) Bounds() Bounds {
	switch f {
	case FieldWorkMinutes:
		return WorkMinutesBounds
	case FieldShortBreakMinutes:
		return ShortBreakMinutesBounds
	case FieldLongBreakMinutes:
		return LongBreakMinutesBounds
	default:
		return SessionsBeforeLongBreakBounds
	}
}

// Label returns the settings-panel label for the field
func (f Field) Label() string {
	switch f {
	case FieldWorkMinutes:
		return "Work Duration (minutes)"
	case FieldShortBreakMinutes:
		return "Short Break Duration (minutes)"
	case FieldLongBreakMinutes:
		return "Long Break Duration (minutes)"
	default:
		return "Sessions Before Long Break"
	}
}

// TimerConfig holds the user-editable durations
type TimerConfig struct {
	WorkMinutes             int
	ShortBreakMinutes       int
	LongBreakMinutes        int
	SessionsBeforeLongBreak int
}

// DefaultTimerConfig returns the classic 25/5/15 x4 schedule
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		WorkMinutes:             25,
		ShortBreakMinutes:       5,
		LongBreakMinutes:        15,
		SessionsBeforeLongBreak: 4,
	}
}

// Clamped returns a copy with every field forced into its range
func (c TimerConfig) Clamped() TimerConfig {
	return TimerConfig{
		WorkMinutes:             WorkMinutesBounds.Clamp(c.WorkMinutes),
		ShortBreakMinutes:       ShortBreakMinutesBounds.Clamp(c.ShortBreakMinutes),
		LongBreakMinutes:        LongBreakMinutesBounds.Clamp(c.LongBreakMinutes),
		SessionsBeforeLongBreak: SessionsBeforeLongBreakBounds.Clamp(c.SessionsBeforeLongBreak),
	}
}

// Get returns the value of a field
func (c TimerConfig) Get(f Field) int {
	switch f {
	case FieldWorkMinutes:
		return c.WorkMinutes
	case FieldShortBreakMinutes:
		return c.ShortBreakMinutes
	case FieldLongBreakMinutes:
		return c.LongBreakMinutes
	default:
		return c.SessionsBeforeLongBreak
	}
}

// PhaseSeconds returns the configured length of a phase in seconds
func (c TimerConfig) PhaseSeconds(p Phase) int {
	switch p {
	case PhaseShortBreak:
		return c.ShortBreakMinutes * 60
	case PhaseLongBreak:
		return c.LongBreakMinutes * 60
	default:
		return c.WorkMinutes * 60
	}
}

// PhaseDuration returns the configured length of a phase
func (c TimerConfig) PhaseDuration(p Phase) time.Duration {
	return time.Duration(c.PhaseSeconds(p)) * time.Second
}
