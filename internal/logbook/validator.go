package logbook

import (
	"fmt"
	"math"
	"strings"
)

// hoursTolerance absorbs float drift when checking that the duty totals
// cover the full day.
const hoursTolerance = 0.1

// ValidationResult is the structural check of a daily log sheet. Errors make
// the sheet invalid; warnings flag incomplete paperwork but do not.
type ValidationResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// Validate runs the structural checks on a composed daily log. It is a pure
// function: validation findings are returned as data, never as an error.
func Validate(day DailyLogWithActivities) ValidationResult {
	var result ValidationResult

	total := day.Log.TotalHours()
	if math.Abs(total-24) > hoursTolerance {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Total hours must equal 24 (currently %.2f)", total))
	}

	if day.Log.Date.IsZero() {
		result.Errors = append(result.Errors, "Date is missing")
	}

	if strings.TrimSpace(day.Log.DriverName) == "" {
		result.Warnings = append(result.Warnings, "Driver name is missing")
	}
	if strings.TrimSpace(day.Log.TractorNumber) == "" {
		result.Warnings = append(result.Warnings, "Tractor number is missing")
	}
	if len(day.Activities) == 0 {
		result.Warnings = append(result.Warnings, "No activities recorded for this day")
	}

	result.IsValid = len(result.Errors) == 0
	return result
}
