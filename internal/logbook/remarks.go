package logbook

import (
	"sort"
	"strings"
)

// noLocation is rendered when an activity carries no usable location.
const noLocation = "No location"

// notAvailable fills blank optional header fields on the sheet.
const notAvailable = "N/A"

// Remark is one line of the remarks section.
type Remark struct {
	ActivityID string
	Location   string
	Note       string
	Line       string
}

// Remarks builds the remarks section for a day: one line per activity in
// start-time order, each naming where the activity happened plus the
// driver's note when present.
func Remarks(activities []Activity) []Remark {
	sorted := make([]Activity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	remarks := make([]Remark, 0, len(sorted))
	for _, act := range sorted {
		loc := remarkLocation(act.Location)
		line := loc
		if act.Remark != "" {
			line += " - " + act.Remark
		}
		remarks = append(remarks, Remark{
			ActivityID: act.ID,
			Location:   loc,
			Note:       act.Remark,
			Line:       line,
		})
	}
	return remarks
}

// remarkLocation renders a location as "city, state", falling back to the
// street address, then to the no-location placeholder.
func remarkLocation(loc Location) string {
	if loc.City != "" && loc.State != "" {
		return loc.City + ", " + loc.State
	}
	if loc.Address != "" {
		return loc.Address
	}
	return noLocation
}

// Header is the top section of the log sheet: every optional text field is
// substituted with "N/A" when blank and the date is formatted MM/DD/YYYY.
type Header struct {
	Date               string
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
}

// HeaderView projects a daily log into its sheet header.
func HeaderView(log DailyLog) Header {
	date := notAvailable
	if !log.Date.IsZero() {
		date = log.Date.Format("01/02/2006")
	}

	return Header{
		Date:               date,
		DriverName:         orNA(log.DriverName),
		DriverSignature:    orNA(log.DriverSignature),
		CoDriverName:       orNA(log.CoDriverName),
		HomeTerminal:       orNA(log.HomeTerminal),
		CarrierName:        orNA(log.CarrierName),
		TractorNumber:      orNA(log.TractorNumber),
		TrailerNumbers:     log.TrailerNumbers,
		ShipperName:        orNA(log.ShipperName),
		Commodity:          orNA(log.Commodity),
		ShippingDocNumbers: log.ShippingDocNumbers,
		TotalMilesDriven:   log.TotalMilesDriven,
		TotalTruckMileage:  log.TotalTruckMileage,
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}
