package logbook

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TimelineConfig controls the geometry of the log grid. Zero values fall back
// to the defaults of the paper-style sheet.
type TimelineConfig struct {
	// Width is the horizontal extent of the 24-hour axis, in drawing units.
	Width float64
	// RowHeight is the height of one duty-status lane.
	RowHeight float64
	// LaneOrder maps duty statuses to lanes, top to bottom.
	LaneOrder []ActivityStatus
}

// DefaultLaneOrder returns the lane order of the standard log sheet.
func DefaultLaneOrder() []ActivityStatus {
	return []ActivityStatus{
		StatusOffDuty,
		StatusSleeperBerth,
		StatusDriving,
		StatusOnDutyNotDriving,
	}
}

// DefaultTimelineConfig returns the geometry used by the dashboard renderer.
func DefaultTimelineConfig() TimelineConfig {
	return TimelineConfig{
		Width:     960,
		RowHeight: 100,
		LaneOrder: DefaultLaneOrder(),
	}
}

// Segment is the horizontal line drawn for one activity in its status lane.
// X1 == X2 for zero-duration activities; these render as points.
type Segment struct {
	ActivityID string
	Status     ActivityStatus
	X1         float64
	X2         float64
	Y          float64
}

// Marker is the circle drawn at the start of an activity segment.
type Marker struct {
	ActivityID string
	X          float64
	Y          float64
}

// Connector is the vertical line drawn where duty status changes between
// consecutive activities.
type Connector struct {
	X  float64
	Y1 float64
	Y2 float64
}

// Bracket marks a stationary on-duty period: an on-duty-not-driving activity
// that runs into the next activity at the same city and state.
type Bracket struct {
	ActivityID string
	X          float64
	Y          float64
}

// GridLine is a line of the static grid. Bold marks the heavier lines drawn
// every sixth hour.
type GridLine struct {
	X1   float64
	Y1   float64
	X2   float64
	Y2   float64
	Bold bool
}

// AxisLabel is a text label positioned on the grid.
type AxisLabel struct {
	Text string
	X    float64
	Y    float64
}

// Grid is the static background of the log sheet. It depends only on the
// configured dimensions, never on activities.
type Grid struct {
	HourLines    []GridLine
	RowLines     []GridLine
	QuarterTicks []GridLine
	HourLabels   []AxisLabel
	StatusLabels []AxisLabel
}

// Timeline is the full drawing model for one day's activities.
type Timeline struct {
	Segments   []Segment
	Markers    []Marker
	Connectors []Connector
	Brackets   []Bracket
	Grid       Grid
	Width      float64
	Height     float64
}

// Engine lays out activities on the log grid.
type Engine struct {
	cfg   TimelineConfig
	lanes map[ActivityStatus]int
}

// NewEngine creates a layout engine. Zero-value config fields fall back to
// DefaultTimelineConfig. A lane order listing the same status twice is
// rejected.
func NewEngine(cfg TimelineConfig) (*Engine, error) {
	def := DefaultTimelineConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.RowHeight <= 0 {
		cfg.RowHeight = def.RowHeight
	}
	if len(cfg.LaneOrder) == 0 {
		cfg.LaneOrder = def.LaneOrder
	}

	lanes := make(map[ActivityStatus]int, len(cfg.LaneOrder))
	for i, status := range cfg.LaneOrder {
		if _, dup := lanes[status]; dup {
			return nil, fmt.Errorf("duplicate status %q in lane order", status)
		}
		lanes[status] = i
	}

	return &Engine{cfg: cfg, lanes: lanes}, nil
}

// Height returns the vertical extent of the grid.
func (e *Engine) Height() float64 {
	return e.cfg.RowHeight * float64(len(e.cfg.LaneOrder))
}

// Layout computes the drawing model for a day's activities. Activities are
// re-sorted by start time; an unknown duty status or a malformed time string
// is a contract violation and returns an error.
func (e *Engine) Layout(activities []Activity) (*Timeline, error) {
	sorted := make([]Activity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	tl := &Timeline{
		Segments: make([]Segment, 0, len(sorted)),
		Markers:  make([]Marker, 0, len(sorted)),
		Grid:     e.grid(),
		Width:    e.cfg.Width,
		Height:   e.Height(),
	}

	for i, act := range sorted {
		y, err := e.laneY(act.Status)
		if err != nil {
			return nil, err
		}
		x1, err := timeToAxis(act.StartTime, e.cfg.Width)
		if err != nil {
			return nil, fmt.Errorf("activity %s start time: %w", act.ID, err)
		}
		x2, err := timeToAxis(act.EndTime, e.cfg.Width)
		if err != nil {
			return nil, fmt.Errorf("activity %s end time: %w", act.ID, err)
		}

		tl.Segments = append(tl.Segments, Segment{
			ActivityID: act.ID,
			Status:     act.Status,
			X1:         x1,
			X2:         x2,
			Y:          y,
		})
		tl.Markers = append(tl.Markers, Marker{ActivityID: act.ID, X: x1, Y: y})

		if i+1 >= len(sorted) {
			continue
		}
		next := sorted[i+1]

		if next.Status != act.Status {
			nextY, err := e.laneY(next.Status)
			if err != nil {
				return nil, err
			}
			tl.Connectors = append(tl.Connectors, Connector{X: x2, Y1: y, Y2: nextY})
		}

		if act.Status == StatusOnDutyNotDriving &&
			act.EndTime == next.StartTime &&
			act.Location.City == next.Location.City &&
			act.Location.State == next.Location.State {
			tl.Brackets = append(tl.Brackets, Bracket{ActivityID: act.ID, X: x2, Y: y})
		}
	}

	return tl, nil
}

// laneY returns the vertical center of the lane for a status.
func (e *Engine) laneY(status ActivityStatus) (float64, error) {
	lane, ok := e.lanes[status]
	if !ok {
		return 0, fmt.Errorf("unknown duty status %q", status)
	}
	return float64(lane)*e.cfg.RowHeight + e.cfg.RowHeight/2, nil
}

// grid builds the static sheet background from the configured dimensions.
func (e *Engine) grid() Grid {
	height := e.Height()
	hourWidth := e.cfg.Width / 24

	g := Grid{
		HourLines:    make([]GridLine, 0, 25),
		RowLines:     make([]GridLine, 0, len(e.cfg.LaneOrder)+1),
		QuarterTicks: make([]GridLine, 0, 24*3*len(e.cfg.LaneOrder)),
		HourLabels:   make([]AxisLabel, 0, 25),
		StatusLabels: make([]AxisLabel, 0, len(e.cfg.LaneOrder)),
	}

	for i := 0; i <= 24; i++ {
		x := float64(i) * hourWidth
		g.HourLines = append(g.HourLines, GridLine{
			X1: x, Y1: 0, X2: x, Y2: height,
			Bold: i%6 == 0,
		})
		g.HourLabels = append(g.HourLabels, AxisLabel{Text: hourLabel(i), X: x, Y: 0})
	}

	for i := 0; i <= len(e.cfg.LaneOrder); i++ {
		y := float64(i) * e.cfg.RowHeight
		g.RowLines = append(g.RowLines, GridLine{X1: 0, Y1: y, X2: e.cfg.Width, Y2: y})
	}

	tickLen := e.cfg.RowHeight * 0.2
	for lane := range e.cfg.LaneOrder {
		top := float64(lane) * e.cfg.RowHeight
		for hour := 0; hour < 24; hour++ {
			for quarter := 1; quarter <= 3; quarter++ {
				x := float64(hour)*hourWidth + float64(quarter)*hourWidth/4
				g.QuarterTicks = append(g.QuarterTicks, GridLine{
					X1: x, Y1: top, X2: x, Y2: top + tickLen,
				})
			}
		}
	}

	for lane, status := range e.cfg.LaneOrder {
		g.StatusLabels = append(g.StatusLabels, AxisLabel{
			Text: status.Label(),
			X:    0,
			Y:    float64(lane)*e.cfg.RowHeight + e.cfg.RowHeight/2,
		})
	}

	return g
}

// hourLabel returns the axis label for an hour line: midnight at both ends,
// Noon in the middle, 12-hour numbers in between.
func hourLabel(hour int) string {
	switch {
	case hour == 0 || hour == 24:
		return "00"
	case hour == 12:
		return "Noon"
	case hour > 12:
		return strconv.Itoa(hour - 12)
	default:
		return strconv.Itoa(hour)
	}
}

// timeToAxis converts a wall-clock time string ("HH:MM" or "HH:MM:SS") into a
// horizontal position on an axis of the given length, where midnight is 0 and
// the following midnight is the full length.
func timeToAxis(t string, axisLength float64) (float64, error) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("malformed time %q", t)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 24 {
		return 0, fmt.Errorf("malformed time %q", t)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("malformed time %q", t)
	}
	var sec int
	if len(parts) == 3 {
		sec, err = strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("malformed time %q", t)
		}
	}

	hours := float64(h) + float64(m)/60 + float64(sec)/3600
	if hours > 24 {
		return 0, fmt.Errorf("time %q is past midnight", t)
	}
	return hours / 24 * axisLength, nil
}
