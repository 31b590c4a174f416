// Package logbook provides daily log management: duty-status activities on a
// 24-hour timeline, clock totals, structural validation, timeline geometry
// for the paper-style log grid, and remark assembly.
package logbook

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrLogNotFound      = errors.New("daily log not found")
	ErrActivityNotFound = errors.New("activity not found")
	ErrDuplicateLogDate = errors.New("a daily log already exists for this date")
)

// ErrLastActivity is returned when deleting the only activity of a log.
var ErrLastActivity = errors.New("cannot delete the only activity of a daily log")

// ActivityStatus is a duty status on the log grid.
type ActivityStatus string

// Duty statuses, in the order they appear on a paper log sheet.
const (
	StatusOffDuty          ActivityStatus = "off_duty"
	StatusSleeperBerth     ActivityStatus = "sleeper_berth"
	StatusDriving          ActivityStatus = "driving"
	StatusOnDutyNotDriving ActivityStatus = "on_duty_not_driving"
)

// Valid reports whether the status is one of the four duty statuses.
func (s ActivityStatus) Valid() bool {
	switch s {
	case StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDutyNotDriving:
		return true
	}
	return false
}

// Label returns the display label used on the log sheet.
func (s ActivityStatus) Label() string {
	switch s {
	case StatusOffDuty:
		return "Off Duty"
	case StatusSleeperBerth:
		return "Sleeper Berth"
	case StatusDriving:
		return "Driving"
	case StatusOnDutyNotDriving:
		return "On Duty (Not Driving)"
	}
	return string(s)
}

// Location is where an activity took place. All fields are optional; a
// location with no city, state or address renders as "No location".
type Location struct {
	Address string
	City    string
	State   string
	Lat     *float64
	Lon     *float64
}

// Activity is one duty-status interval on a daily log.
// StartTime and EndTime are wall-clock strings ("HH:MM" or "HH:MM:SS");
// EndTime may be earlier than StartTime when the interval crosses midnight.
type Activity struct {
	ID              string
	DailyLogID      string
	Status          ActivityStatus
	StartTime       string
	EndTime         string
	DurationMinutes int
	Location        Location
	EndLocation     *Location
	Remark          string
	MilesDriven     *float64
	Sequence        int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DailyLog is one calendar day of a trip's logbook. The four duty-hour
// totals and TotalMilesDriven are derived from activities and recomputed
// after every mutation.
type DailyLog struct {
	ID     string
	TripID string
	Date   time.Time

	TotalOffDutyHours      float64
	TotalSleeperBerthHours float64
	TotalDrivingHours      float64
	TotalOnDutyHours       float64

	DriverName         string
	DriverSignature    string
	CoDriverName       string
	HomeTerminal       string
	CarrierName        string
	TractorNumber      string
	TrailerNumbers     []string
	ShipperName        string
	Commodity          string
	ShippingDocNumbers []string
	TotalMilesDriven   float64
	TotalTruckMileage  float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DailyLogWithActivities is a daily log composed with its ordered activities.
// It is built once per request and passed by value to the validator, the
// timeline layout and the remarks assembler.
type DailyLogWithActivities struct {
	Log        DailyLog
	Activities []Activity
}

// TotalHours returns the sum of the four duty-hour totals.
func (l DailyLog) TotalHours() float64 {
	return l.TotalOffDutyHours + l.TotalSleeperBerthHours + l.TotalDrivingHours + l.TotalOnDutyHours
}
