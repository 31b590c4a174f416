package models

// DailyLog represents one calendar day of a trip's logbook.
type DailyLog struct {
	ID     string `json:"id"`
	TripID string `json:"tripId"`
	Date   string `json:"date"`

	TotalOffDutyHours      float64 `json:"totalOffDutyHours"`
	TotalSleeperBerthHours float64 `json:"totalSleeperBerthHours"`
	TotalDrivingHours      float64 `json:"totalDrivingHours"`
	TotalOnDutyHours       float64 `json:"totalOnDutyHours"`

	DriverName         string   `json:"driverName"`
	DriverSignature    string   `json:"driverSignature,omitempty"`
	CoDriverName       string   `json:"coDriverName,omitempty"`
	HomeTerminal       string   `json:"homeTerminal,omitempty"`
	CarrierName        string   `json:"carrierName,omitempty"`
	TractorNumber      string   `json:"tractorNumber,omitempty"`
	TrailerNumbers     []string `json:"trailerNumbers,omitempty"`
	ShipperName        string   `json:"shipperName,omitempty"`
	Commodity          string   `json:"commodity,omitempty"`
	ShippingDocNumbers []string `json:"shippingDocNumbers,omitempty"`
	TotalMilesDriven   float64  `json:"totalMilesDriven"`
	TotalTruckMileage  float64  `json:"totalTruckMileage"`

	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// DailyLogCreateRequest is the request body for creating a daily log.
type DailyLogCreateRequest struct {
	Date               string   `json:"date"`
	DriverName         string   `json:"driverName,omitempty"`
	CoDriverName       string   `json:"coDriverName,omitempty"`
	HomeTerminal       string   `json:"homeTerminal,omitempty"`
	CarrierName        string   `json:"carrierName,omitempty"`
	TractorNumber      string   `json:"tractorNumber,omitempty"`
	TrailerNumbers     []string `json:"trailerNumbers,omitempty"`
	ShipperName        string   `json:"shipperName,omitempty"`
	Commodity          string   `json:"commodity,omitempty"`
	ShippingDocNumbers []string `json:"shippingDocNumbers,omitempty"`
	TotalTruckMileage  float64  `json:"totalTruckMileage,omitempty"`
}

// DailyLogUpdateRequest is the request body for updating a daily log's
// header. Duty totals and total miles driven are derived from activities.
type DailyLogUpdateRequest struct {
	DriverName         *string  `json:"driverName,omitempty"`
	DriverSignature    *string  `json:"driverSignature,omitempty"`
	CoDriverName       *string  `json:"coDriverName,omitempty"`
	HomeTerminal       *string  `json:"homeTerminal,omitempty"`
	CarrierName        *string  `json:"carrierName,omitempty"`
	TractorNumber      *string  `json:"tractorNumber,omitempty"`
	TrailerNumbers     []string `json:"trailerNumbers,omitempty"`
	ShipperName        *string  `json:"shipperName,omitempty"`
	Commodity          *string  `json:"commodity,omitempty"`
	ShippingDocNumbers []string `json:"shippingDocNumbers,omitempty"`
	TotalTruckMileage  *float64 `json:"totalTruckMileage,omitempty"`
}

// PagedDailyLogs is a page of daily logs.
type PagedDailyLogs struct {
	Items []DailyLog        `json:"items"`
	Meta  PagedResponseMeta `json:"meta"`
}

// ActivityLocation is where an activity took place.
type ActivityLocation struct {
	Address string   `json:"address,omitempty"`
	City    string   `json:"city,omitempty"`
	State   string   `json:"state,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Activity represents one duty-status interval on a daily log.
type Activity struct {
	ID              string            `json:"id"`
	DailyLogID      string            `json:"dailyLogId"`
	Status          string            `json:"status"`
	StartTime       string            `json:"startTime"`
	EndTime         string            `json:"endTime"`
	DurationMinutes int               `json:"durationMinutes"`
	Location        ActivityLocation  `json:"location"`
	EndLocation     *ActivityLocation `json:"endLocation,omitempty"`
	Remark          string            `json:"remark,omitempty"`
	MilesDriven     *float64          `json:"milesDriven,omitempty"`
	Sequence        int               `json:"sequence"`
	CreatedAt       Timestamp         `json:"createdAt"`
	UpdatedAt       Timestamp         `json:"updatedAt"`
}

// ActivityCreateRequest is the request body for inserting an activity.
// Position selects the insertion point on the timeline; omitted means append.
type ActivityCreateRequest struct {
	Status      string            `json:"status"`
	StartTime   string            `json:"startTime"`
	EndTime     string            `json:"endTime"`
	Position    *int              `json:"position,omitempty"`
	Location    *ActivityLocation `json:"location,omitempty"`
	EndLocation *ActivityLocation `json:"endLocation,omitempty"`
	Remark      string            `json:"remark,omitempty"`
	MilesDriven *float64          `json:"milesDriven,omitempty"`
}

// ActivityUpdateRequest is the request body for updating an activity.
type ActivityUpdateRequest struct {
	Status      *string           `json:"status,omitempty"`
	StartTime   *string           `json:"startTime,omitempty"`
	EndTime     *string           `json:"endTime,omitempty"`
	Location    *ActivityLocation `json:"location,omitempty"`
	EndLocation *ActivityLocation `json:"endLocation,omitempty"`
	Remark      *string           `json:"remark,omitempty"`
	MilesDriven *float64          `json:"milesDriven,omitempty"`
}

// ActivityList is the response body listing a log's activities.
type ActivityList struct {
	Items []Activity `json:"items"`
}

// Clock is a duration shown on the sheet totals column.
type Clock struct {
	Hours   int    `json:"hours"`
	Minutes int    `json:"minutes"`
	Display string `json:"display"`
}

// ClockTotals is the totals column of the log sheet.
type ClockTotals struct {
	OffDuty      Clock `json:"offDuty"`
	SleeperBerth Clock `json:"sleeperBerth"`
	Driving      Clock `json:"driving"`
	OnDuty       Clock `json:"onDuty"`
	Total        Clock `json:"total"`
}

// ValidationResult is the structural check of a daily log sheet.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Remark is one line of the remarks section.
type Remark struct {
	ActivityID string `json:"activityId"`
	Location   string `json:"location"`
	Note       string `json:"note,omitempty"`
	Line       string `json:"line"`
}

// LogbookHeader is the top section of the rendered log sheet.
type LogbookHeader struct {
	Date               string   `json:"date"`
	DriverName         string   `json:"driverName"`
	DriverSignature    string   `json:"driverSignature"`
	CoDriverName       string   `json:"coDriverName"`
	HomeTerminal       string   `json:"homeTerminal"`
	CarrierName        string   `json:"carrierName"`
	TractorNumber      string   `json:"tractorNumber"`
	TrailerNumbers     []string `json:"trailerNumbers,omitempty"`
	ShipperName        string   `json:"shipperName"`
	Commodity          string   `json:"commodity"`
	ShippingDocNumbers []string `json:"shippingDocNumbers,omitempty"`
	TotalMilesDriven   float64  `json:"totalMilesDriven"`
	TotalTruckMileage  float64  `json:"totalTruckMileage"`
}

// TimelineSegment is the horizontal line drawn for one activity.
type TimelineSegment struct {
	ActivityID string  `json:"activityId"`
	Status     string  `json:"status"`
	X1         float64 `json:"x1"`
	X2         float64 `json:"x2"`
	Y          float64 `json:"y"`
}

// TimelineMarker is the circle drawn at the start of a segment.
type TimelineMarker struct {
	ActivityID string  `json:"activityId"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// TimelineConnector is the vertical line drawn at a status change.
type TimelineConnector struct {
	X  float64 `json:"x"`
	Y1 float64 `json:"y1"`
	Y2 float64 `json:"y2"`
}

// TimelineBracket marks a stationary on-duty period.
type TimelineBracket struct {
	ActivityID string  `json:"activityId"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// GridLine is a line of the static sheet grid.
type GridLine struct {
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
	Bold bool    `json:"bold,omitempty"`
}

// AxisLabel is a text label positioned on the grid.
type AxisLabel struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// TimelineGrid is the static background of the log sheet.
type TimelineGrid struct {
	HourLines    []GridLine  `json:"hourLines"`
	RowLines     []GridLine  `json:"rowLines"`
	QuarterTicks []GridLine  `json:"quarterTicks"`
	HourLabels   []AxisLabel `json:"hourLabels"`
	StatusLabels []AxisLabel `json:"statusLabels"`
}

// Timeline is the drawing model for one day's activities.
type Timeline struct {
	Width      float64             `json:"width"`
	Height     float64             `json:"height"`
	Segments   []TimelineSegment   `json:"segments"`
	Markers    []TimelineMarker    `json:"markers"`
	Connectors []TimelineConnector `json:"connectors"`
	Brackets   []TimelineBracket   `json:"brackets"`
	Grid       TimelineGrid        `json:"grid"`
}

// LogbookView is the assembled view model for one day's log sheet.
type LogbookView struct {
	Log        DailyLog         `json:"log"`
	Header     LogbookHeader    `json:"header"`
	Totals     ClockTotals      `json:"totals"`
	Timeline   Timeline         `json:"timeline"`
	Remarks    []Remark         `json:"remarks"`
	Validation ValidationResult `json:"validation"`
}
