package schedule

import "time"

// Any is the wildcard value for a TimeSpec field.
const Any = -1

// TimeSpec is one match-alternative: every non-wildcard field must match
// the reference instant (AND semantics); an event's spec list matches when
// any alternative does (OR semantics). Seconds are ignored; matching is
// minute-resolution.
type TimeSpec struct {
	Weekday int // time.Weekday value, Any to ignore
	Day     int // day of month, Any to ignore
	Hour    int // Any to ignore
	Minute  int // Any to ignore
}

// Matches reports whether t satisfies every non-wildcard field.
func (ts TimeSpec) Matches(t time.Time) bool {
	if ts.Weekday != Any && int(t.Weekday()) != ts.Weekday {
		return false
	}
	if ts.Day != Any && t.Day() != ts.Day {
		return false
	}
	if ts.Hour != Any && t.Hour() != ts.Hour {
		return false
	}
	if ts.Minute != Any && t.Minute() != ts.Minute {
		return false
	}
	return true
}

func wildcard() TimeSpec {
	return TimeSpec{Weekday: Any, Day: Any, Hour: Any, Minute: Any}
}

// At replaces any previously configured specs with an explicit list.
func (e *Event) At(specs ...TimeSpec) *Event {
	e.times = specs
	return e
}

// JustInTime makes the event due exactly at the minute the call is made:
// it captures the current clock reading and matches only that day, hour,
// and minute.
func (e *Event) JustInTime() *Event {
	now := e.clock()
	spec := wildcard()
	spec.Day = now.Day()
	spec.Hour = now.Hour()
	spec.Minute = now.Minute()
	return e.At(spec)
}

// EveryTenMinutes makes the event due at minutes 0, 10, 20, 30, 40, 50.
func (e *Event) EveryTenMinutes() *Event {
	return e.At(minuteAlternatives(10)...)
}

// EveryThirtyMinutes makes the event due at minutes 0 and 30.
func (e *Event) EveryThirtyMinutes() *Event {
	return e.At(minuteAlternatives(30)...)
}

// EveryTwoHours makes the event due at minute 0 of every even hour.
func (e *Event) EveryTwoHours() *Event {
	return e.At(hourAlternatives(2)...)
}

// EveryTwelveHours makes the event due at 00:00 and 12:00.
func (e *Event) EveryTwelveHours() *Event {
	return e.At(hourAlternatives(12)...)
}

// Hourly makes the event due at minute 0 of every hour.
func (e *Event) Hourly() *Event {
	return e.HourlyAt(0)
}

// HourlyAt makes the event due at the given minute of every hour.
func (e *Event) HourlyAt(minute int) *Event {
	spec := wildcard()
	spec.Minute = minute
	return e.At(spec)
}

// Daily makes the event due at midnight.
func (e *Event) Daily() *Event {
	return e.DailyAt(0)
}

// DailyAt makes the event due at minute 0 of the given hour.
func (e *Event) DailyAt(hour int) *Event {
	spec := wildcard()
	spec.Hour = hour
	spec.Minute = 0
	return e.At(spec)
}

// Weekly makes the event due Sunday at midnight.
func (e *Event) Weekly() *Event {
	spec := wildcard()
	spec.Weekday = int(time.Sunday)
	spec.Hour = 0
	spec.Minute = 0
	return e.At(spec)
}

// Monthly makes the event due on the first of the month at midnight.
func (e *Event) Monthly() *Event {
	spec := wildcard()
	spec.Day = 1
	spec.Hour = 0
	spec.Minute = 0
	return e.At(spec)
}

func minuteAlternatives(step int) []TimeSpec {
	specs := make([]TimeSpec, 0, 60/step)
	for minute := 0; minute < 60; minute += step {
		spec := wildcard()
		spec.Minute = minute
		specs = append(specs, spec)
	}
	return specs
}

func hourAlternatives(step int) []TimeSpec {
	specs := make([]TimeSpec, 0, 24/step)
	for hour := 0; hour < 24; hour += step {
		spec := wildcard()
		spec.Hour = hour
		spec.Minute = 0
		specs = append(specs, spec)
	}
	return specs
}
