package logbook

import (
	"fmt"
	"math"
)

// Clock is a duration shown on the log sheet totals column, as whole hours
// plus minutes rounded to the nearest quarter hour.
type Clock struct {
	Hours   int
	Minutes int
}

// HoursToClock converts fractional hours into a Clock. Minutes are rounded to
// the nearest quarter hour; a rounded value of 60 wraps to 0 without carrying
// into the hour, so 1.99 hours displays as 1h 00m rather than 2h 00m. This
// matches the historical sheet rendering and is covered by a boundary test.
func HoursToClock(hours float64) Clock {
	totalMinutes := int(math.Round(hours * 60))
	h := totalMinutes / 60
	m := int(math.Round(float64(totalMinutes%60)/15.0)) * 15
	if m == 60 {
		m = 0
	}
	return Clock{Hours: h, Minutes: m}
}

// SumClock adds clocks together, carrying minutes into hours.
func SumClock(clocks ...Clock) Clock {
	var hours, minutes int
	for _, c := range clocks {
		hours += c.Hours
		minutes += c.Minutes
	}
	return Clock{Hours: hours + minutes/60, Minutes: minutes % 60}
}

// String renders the clock as "3h 45m".
func (c Clock) String() string {
	return fmt.Sprintf("%dh %02dm", c.Hours, c.Minutes)
}

// ClockTotals is the totals column of the log sheet.
type ClockTotals struct {
	OffDuty      Clock
	SleeperBerth Clock
	Driving      Clock
	OnDuty       Clock
	Total        Clock
}

// Totals converts a log's fractional duty-hour totals into the quarter-hour
// clock values shown on the sheet. Total carries minute overflow into hours
// even though the per-status clocks individually wrap.
func Totals(log DailyLog) ClockTotals {
	off := HoursToClock(log.TotalOffDutyHours)
	sleeper := HoursToClock(log.TotalSleeperBerthHours)
	driving := HoursToClock(log.TotalDrivingHours)
	onDuty := HoursToClock(log.TotalOnDutyHours)

	return ClockTotals{
		OffDuty:      off,
		SleeperBerth: sleeper,
		Driving:      driving,
		OnDuty:       onDuty,
		Total:        SumClock(off, sleeper, driving, onDuty),
	}
}
