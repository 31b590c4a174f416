package logbook

import (
	"testing"
	"time"
)

func TestRemarks(t *testing.T) {
	lat := 35.1983
	activities := []Activity{
		{
			ID: "act_2", StartTime: "09:00", EndTime: "12:00",
			Location: Location{Address: "I-40 Exit 195", Lat: &lat},
		},
		{
			ID: "act_1", StartTime: "06:00", EndTime: "09:00",
			Location: Location{City: "Flagstaff", State: "AZ"},
			Remark:   "Pre-trip inspection",
		},
		{
			ID: "act_3", StartTime: "12:00", EndTime: "13:00",
		},
	}

	remarks := Remarks(activities)
	if len(remarks) != 3 {
		t.Fatalf("got %d remarks, want 3", len(remarks))
	}

	// Sorted by start time, not input order.
	if remarks[0].ActivityID != "act_1" {
		t.Errorf("first remark = %s, want act_1", remarks[0].ActivityID)
	}
	if remarks[0].Line != "Flagstaff, AZ - Pre-trip inspection" {
		t.Errorf("line = %q", remarks[0].Line)
	}
	if remarks[1].Line != "I-40 Exit 195" {
		t.Errorf("address fallback line = %q", remarks[1].Line)
	}
	if remarks[2].Line != "No location" {
		t.Errorf("placeholder line = %q", remarks[2].Line)
	}
}

func TestRemarkLocationRequiresCityAndState(t *testing.T) {
	got := remarkLocation(Location{City: "Flagstaff", Address: "Main St"})
	if got != "Main St" {
		t.Errorf("city without state should fall back to address, got %q", got)
	}
}

func TestRemarksEmpty(t *testing.T) {
	if got := Remarks(nil); len(got) != 0 {
		t.Errorf("expected empty remarks, got %+v", got)
	}
}

func TestHeaderView(t *testing.T) {
	log := DailyLog{
		Date:              time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
		DriverName:        "J. Doe",
		CarrierName:       "  ",
		TractorNumber:     "4821",
		TrailerNumbers:    []string{"T-1", "T-2"},
		TotalMilesDriven:  512.5,
		TotalTruckMileage: 120044,
	}

	h := HeaderView(log)
	if h.Date != "03/07/2025" {
		t.Errorf("Date = %q, want 03/07/2025", h.Date)
	}
	if h.DriverName != "J. Doe" {
		t.Errorf("DriverName = %q", h.DriverName)
	}
	if h.CarrierName != "N/A" || h.CoDriverName != "N/A" || h.ShipperName != "N/A" {
		t.Errorf("blank fields should render N/A: %+v", h)
	}
	if h.TractorNumber != "4821" {
		t.Errorf("TractorNumber = %q", h.TractorNumber)
	}
	if len(h.TrailerNumbers) != 2 {
		t.Errorf("TrailerNumbers = %v", h.TrailerNumbers)
	}
	if h.TotalMilesDriven != 512.5 {
		t.Errorf("TotalMilesDriven = %v", h.TotalMilesDriven)
	}
}

func TestHeaderViewZeroDate(t *testing.T) {
	h := HeaderView(DailyLog{})
	if h.Date != "N/A" {
		t.Errorf("Date = %q, want N/A", h.Date)
	}
}
