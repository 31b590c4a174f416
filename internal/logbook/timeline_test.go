package logbook

import (
	"math"
	"reflect"
	"testing"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(TimelineConfig{})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestNewEngineDefaults(t *testing.T) {
	e := newTestEngine(t)
	if e.cfg.Width != 960 || e.cfg.RowHeight != 100 {
		t.Errorf("defaults not applied: %+v", e.cfg)
	}
	if e.Height() != 400 {
		t.Errorf("Height() = %f, want 400", e.Height())
	}
}

func TestNewEngineRejectsDuplicateLanes(t *testing.T) {
	_, err := NewEngine(TimelineConfig{
		LaneOrder: []ActivityStatus{StatusOffDuty, StatusOffDuty},
	})
	if err == nil {
		t.Fatal("expected error for duplicate lane")
	}
}

func TestTimeToAxis(t *testing.T) {
	tests := []struct {
		time    string
		want    float64
		wantErr bool
	}{
		{"00:00", 0, false},
		{"06:00", 240, false},
		{"12:00", 480, false},
		{"18:30", 740, false},
		{"23:59", 959.333333, false},
		{"24:00", 960, false},
		{"10:15:30", 410.333333, false},
		{"noon", 0, true},
		{"25:00", 0, true},
		{"10:75", 0, true},
		{"10", 0, true},
		{"", 0, true},
		{"10:00:90", 0, true},
	}

	for _, tt := range tests {
		got, err := timeToAxis(tt.time, 960)
		if tt.wantErr {
			if err == nil {
				t.Errorf("timeToAxis(%q): expected error", tt.time)
			}
			continue
		}
		if err != nil {
			t.Errorf("timeToAxis(%q): %v", tt.time, err)
			continue
		}
		if math.Abs(got-tt.want) > 0.001 {
			t.Errorf("timeToAxis(%q) = %f, want %f", tt.time, got, tt.want)
		}
	}
}

func TestLayoutPlacesSegmentsInLanes(t *testing.T) {
	e := newTestEngine(t)

	tl, err := e.Layout([]Activity{
		{ID: "act_1", Status: StatusOffDuty, StartTime: "00:00", EndTime: "06:00"},
		{ID: "act_2", Status: StatusDriving, StartTime: "06:00", EndTime: "12:00"},
	})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	if len(tl.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(tl.Segments))
	}
	if tl.Segments[0].Y != 50 {
		t.Errorf("off_duty lane Y = %f, want 50", tl.Segments[0].Y)
	}
	if tl.Segments[1].Y != 250 {
		t.Errorf("driving lane Y = %f, want 250", tl.Segments[1].Y)
	}
	if tl.Segments[0].X1 != 0 || tl.Segments[0].X2 != 240 {
		t.Errorf("segment 0 span = (%f, %f), want (0, 240)", tl.Segments[0].X1, tl.Segments[0].X2)
	}
	if len(tl.Markers) != 2 || tl.Markers[1].X != 240 {
		t.Errorf("markers = %+v", tl.Markers)
	}
}

func TestLayoutSortsByStartTime(t *testing.T) {
	e := newTestEngine(t)

	tl, err := e.Layout([]Activity{
		{ID: "act_late", Status: StatusDriving, StartTime: "12:00", EndTime: "14:00"},
		{ID: "act_early", Status: StatusOffDuty, StartTime: "01:00", EndTime: "12:00"},
	})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	if tl.Segments[0].ActivityID != "act_early" {
		t.Errorf("first segment = %s, want act_early", tl.Segments[0].ActivityID)
	}
}

func TestLayoutEqualStartTimesKeepInputOrder(t *testing.T) {
	e := newTestEngine(t)

	tl, err := e.Layout([]Activity{
		{ID: "act_a", Status: StatusDriving, StartTime: "08:00", EndTime: "08:00"},
		{ID: "act_b", Status: StatusOnDutyNotDriving, StartTime: "08:00", EndTime: "08:00"},
		{ID: "act_c", Status: StatusOffDuty, StartTime: "08:00", EndTime: "10:00"},
	})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	// Ties on start time keep the caller's order.
	want := []string{"act_a", "act_b", "act_c"}
	for i, seg := range tl.Segments {
		if seg.ActivityID != want[i] {
			t.Errorf("segment %d = %s, want %s", i, seg.ActivityID, want[i])
		}
	}
}

func TestLayoutDeterministic(t *testing.T) {
	e := newTestEngine(t)

	activities := []Activity{
		{ID: "act_1", Status: StatusOffDuty, StartTime: "00:00", EndTime: "06:00", Location: Location{City: "Flagstaff", State: "AZ"}},
		{ID: "act_2", Status: StatusOnDutyNotDriving, StartTime: "06:00", EndTime: "07:00", Location: Location{City: "Flagstaff", State: "AZ"}},
		{ID: "act_3", Status: StatusDriving, StartTime: "07:00", EndTime: "12:00"},
	}

	first, err := e.Layout(activities)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	second, err := e.Layout(activities)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated layout differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestLayoutConnectorsOnStatusChange(t *testing.T) {
	e := newTestEngine(t)

	tl, err := e.Layout([]Activity{
		{ID: "act_1", Status: StatusOffDuty, StartTime: "00:00", EndTime: "06:00"},
		{ID: "act_2", Status: StatusDriving, StartTime: "06:00", EndTime: "10:00"},
		{ID: "act_3", Status: StatusDriving, StartTime: "10:00", EndTime: "12:00"},
		{ID: "act_4", Status: StatusOffDuty, StartTime: "12:00", EndTime: "24:00"},
	})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	// Status changes at 06:00 and 12:00 only; 10:00 keeps driving.
	if len(tl.Connectors) != 2 {
		t.Fatalf("got %d connectors, want 2: %+v", len(tl.Connectors), tl.Connectors)
	}
	if tl.Connectors[0].X != 240 || tl.Connectors[0].Y1 != 50 || tl.Connectors[0].Y2 != 250 {
		t.Errorf("connector 0 = %+v", tl.Connectors[0])
	}
	if tl.Connectors[1].X != 480 {
		t.Errorf("connector 1 X = %f, want 480", tl.Connectors[1].X)
	}
}

func TestLayoutStationaryBracket(t *testing.T) {
	e := newTestEngine(t)
	here := Location{City: "Flagstaff", State: "AZ"}

	base := []Activity{
		{ID: "act_1", Status: StatusOnDutyNotDriving, StartTime: "08:00", EndTime: "09:00", Location: here},
		{ID: "act_2", Status: StatusDriving, StartTime: "09:00", EndTime: "12:00", Location: here},
	}

	t.Run("touching same place emits bracket", func(t *testing.T) {
		tl, err := e.Layout(base)
		if err != nil {
			t.Fatalf("Layout: %v", err)
		}
		if len(tl.Brackets) != 1 {
			t.Fatalf("got %d brackets, want 1", len(tl.Brackets))
		}
		if tl.Brackets[0].ActivityID != "act_1" || tl.Brackets[0].X != 360 {
			t.Errorf("bracket = %+v", tl.Brackets[0])
		}
	})

	t.Run("gap in time removes bracket", func(t *testing.T) {
		acts := []Activity{base[0], base[1]}
		acts[1].StartTime = "09:30"
		tl, _ := e.Layout(acts)
		if len(tl.Brackets) != 0 {
			t.Errorf("expected no bracket, got %+v", tl.Brackets)
		}
	})

	t.Run("different city removes bracket", func(t *testing.T) {
		acts := []Activity{base[0], base[1]}
		acts[1].Location = Location{City: "Phoenix", State: "AZ"}
		tl, _ := e.Layout(acts)
		if len(tl.Brackets) != 0 {
			t.Errorf("expected no bracket, got %+v", tl.Brackets)
		}
	})

	t.Run("different state removes bracket", func(t *testing.T) {
		acts := []Activity{base[0], base[1]}
		acts[1].Location = Location{City: "Flagstaff", State: "NM"}
		tl, _ := e.Layout(acts)
		if len(tl.Brackets) != 0 {
			t.Errorf("expected no bracket, got %+v", tl.Brackets)
		}
	})

	t.Run("only on duty not driving emits", func(t *testing.T) {
		acts := []Activity{base[0], base[1]}
		acts[0].Status = StatusDriving
		tl, _ := e.Layout(acts)
		if len(tl.Brackets) != 0 {
			t.Errorf("expected no bracket, got %+v", tl.Brackets)
		}
	})
}

func TestLayoutZeroWidthSegment(t *testing.T) {
	e := newTestEngine(t)

	tl, err := e.Layout([]Activity{
		{ID: "act_1", Status: StatusDriving, StartTime: "10:00", EndTime: "10:00"},
	})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	seg := tl.Segments[0]
	if seg.X1 != seg.X2 {
		t.Errorf("zero-duration segment should be a point, got (%f, %f)", seg.X1, seg.X2)
	}
}

func TestLayoutEmptyActivities(t *testing.T) {
	e := newTestEngine(t)

	tl, err := e.Layout(nil)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(tl.Segments) != 0 || len(tl.Connectors) != 0 || len(tl.Brackets) != 0 {
		t.Errorf("expected empty drawing, got %+v", tl)
	}
	// The static grid is still present.
	if len(tl.Grid.HourLines) != 25 {
		t.Errorf("got %d hour lines, want 25", len(tl.Grid.HourLines))
	}
}

func TestLayoutRejectsBadInput(t *testing.T) {
	e := newTestEngine(t)

	if _, err := e.Layout([]Activity{
		{ID: "act_1", Status: "lunch", StartTime: "10:00", EndTime: "11:00"},
	}); err == nil {
		t.Error("expected error for unknown status")
	}

	if _, err := e.Layout([]Activity{
		{ID: "act_1", Status: StatusDriving, StartTime: "ten", EndTime: "11:00"},
	}); err == nil {
		t.Error("expected error for malformed start time")
	}
}

func TestGridStatics(t *testing.T) {
	e := newTestEngine(t)
	g := e.grid()

	if len(g.HourLines) != 25 {
		t.Fatalf("got %d hour lines, want 25", len(g.HourLines))
	}
	boldCount := 0
	for _, l := range g.HourLines {
		if l.Bold {
			boldCount++
		}
	}
	if boldCount != 5 {
		t.Errorf("got %d bold lines, want 5 (every sixth hour)", boldCount)
	}

	if len(g.RowLines) != 5 {
		t.Errorf("got %d row lines, want 5", len(g.RowLines))
	}
	if len(g.QuarterTicks) != 24*3*4 {
		t.Errorf("got %d quarter ticks, want %d", len(g.QuarterTicks), 24*3*4)
	}

	if len(g.HourLabels) != 25 {
		t.Fatalf("got %d hour labels, want 25", len(g.HourLabels))
	}
	if g.HourLabels[0].Text != "00" || g.HourLabels[12].Text != "Noon" ||
		g.HourLabels[13].Text != "1" || g.HourLabels[24].Text != "00" {
		t.Errorf("hour labels wrong: %q %q %q %q",
			g.HourLabels[0].Text, g.HourLabels[12].Text, g.HourLabels[13].Text, g.HourLabels[24].Text)
	}

	if len(g.StatusLabels) != 4 {
		t.Fatalf("got %d status labels, want 4", len(g.StatusLabels))
	}
	if g.StatusLabels[2].Text != "Driving" {
		t.Errorf("third lane label = %q, want Driving", g.StatusLabels[2].Text)
	}
}
