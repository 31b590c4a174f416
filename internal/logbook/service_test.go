package logbook

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndungtse/driver-x/internal/api/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	logs := NewInMemoryLogRepository()
	svc, err := NewService(ServiceConfig{
		Logs:       logs,
		Activities: NewInMemoryActivityRepository(logs),
		Logger:     zerolog.Nop(),
	})
	require.NoError(t, err)
	return svc
}

func createTestLog(t *testing.T, svc *Service, tripID string) *models.DailyLog {
	t.Helper()

	log, err := svc.CreateLog(context.Background(), tripID, &models.DailyLogCreateRequest{
		Date:          "2025-03-14",
		DriverName:    "J. Doe",
		TractorNumber: "4821",
	})
	require.NoError(t, err)
	return log
}

func TestCreateLog(t *testing.T) {
	svc := newTestService(t)

	log := createTestLog(t, svc, "trp_1")
	assert.NotEmpty(t, log.ID)
	assert.Equal(t, "log_", log.ID[:4])
	assert.Equal(t, "2025-03-14", log.Date)
	assert.Equal(t, "J. Doe", log.DriverName)
}

func TestCreateLogRejectsBadDate(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateLog(context.Background(), "trp_1", &models.DailyLogCreateRequest{Date: "14-03-2025"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Errors[0].Field)
}

func TestCreateLogDuplicateDate(t *testing.T) {
	svc := newTestService(t)
	createTestLog(t, svc, "trp_1")

	_, err := svc.CreateLog(context.Background(), "trp_1", &models.DailyLogCreateRequest{Date: "2025-03-14"})
	assert.ErrorIs(t, err, ErrDuplicateLogDate)

	// Same date on another trip is fine.
	_, err = svc.CreateLog(context.Background(), "trp_2", &models.DailyLogCreateRequest{Date: "2025-03-14"})
	assert.NoError(t, err)
}

func TestEnsureLogForDate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	first, err := svc.EnsureLogForDate(ctx, "trp_1", date, "J. Doe", "Terminal A", "Acme Freight")
	require.NoError(t, err)
	assert.Equal(t, "J. Doe", first.DriverName)

	second, err := svc.EnsureLogForDate(ctx, "trp_1", date, "Other Driver", "", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "existing log must be returned untouched")
	assert.Equal(t, "J. Doe", second.DriverName)
}

func TestInsertActivityAppendAndTotals(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	log := createTestLog(t, svc, "trp_1")
	miles := 250.0

	_, err := svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "off_duty", StartTime: "00:00", EndTime: "06:00",
	})
	require.NoError(t, err)

	act, err := svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "driving", StartTime: "06:00", EndTime: "11:30", MilesDriven: &miles,
	})
	require.NoError(t, err)
	assert.Equal(t, 330, act.DurationMinutes)
	assert.Equal(t, 1, act.Sequence)

	updated, err := svc.GetLog(ctx, log.ID)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, updated.TotalOffDutyHours, 1e-9)
	assert.InDelta(t, 5.5, updated.TotalDrivingHours, 1e-9)
	assert.InDelta(t, 250.0, updated.TotalMilesDriven, 1e-9)
}

func TestInsertActivityAtPositionShiftsLater(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	log := createTestLog(t, svc, "trp_1")
	pos := 1

	_, err := svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "off_duty", StartTime: "00:00", EndTime: "06:00",
	})
	require.NoError(t, err)
	_, err = svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "driving", StartTime: "08:00", EndTime: "12:00",
	})
	require.NoError(t, err)

	// Slot a 2-hour on-duty block in front of the driving block.
	_, err = svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "on_duty_not_driving", StartTime: "06:00", EndTime: "08:00", Position: &pos,
	})
	require.NoError(t, err)

	activities, err := svc.ListActivities(ctx, log.ID)
	require.NoError(t, err)
	require.Len(t, activities, 3)

	assert.Equal(t, "on_duty_not_driving", activities[1].Status)
	assert.Equal(t, 1, activities[1].Sequence)
	// The driving block moved forward by the inserted duration.
	assert.Equal(t, "10:00", activities[2].StartTime)
	assert.Equal(t, "14:00", activities[2].EndTime)
	assert.Equal(t, 2, activities[2].Sequence)
}

func TestInsertActivityPositionValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	log := createTestLog(t, svc, "trp_1")

	_, err := svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "driving", StartTime: "08:00", EndTime: "12:00",
	})
	require.NoError(t, err)

	pos := 0
	_, err = svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "off_duty", StartTime: "09:00", EndTime: "10:00", Position: &pos,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr, "start at or after the displaced activity must be rejected")

	far := 5
	_, err = svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "off_duty", StartTime: "00:00", EndTime: "01:00", Position: &far,
	})
	require.ErrorAs(t, err, &verr)
}

func TestInsertActivityRejectsBadInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	log := createTestLog(t, svc, "trp_1")
	miles := 10.0

	tests := []struct {
		name  string
		input *models.ActivityCreateRequest
		field string
	}{
		{
			"unknown status",
			&models.ActivityCreateRequest{Status: "lunch", StartTime: "08:00", EndTime: "09:00"},
			"status",
		},
		{
			"bad start time",
			&models.ActivityCreateRequest{Status: "driving", StartTime: "eight", EndTime: "09:00"},
			"startTime",
		},
		{
			"miles on non-driving",
			&models.ActivityCreateRequest{Status: "off_duty", StartTime: "08:00", EndTime: "09:00", MilesDriven: &miles},
			"milesDriven",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.InsertActivity(ctx, log.ID, tt.input)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Errors[0].Field)
		})
	}
}

func TestInsertActivityFullDay(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	log := createTestLog(t, svc, "trp_1")

	act, err := svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "off_duty", StartTime: "00:00", EndTime: "24:00",
	})
	require.NoError(t, err)
	// The 24:00 end-of-day boundary must not wrap to 00:00.
	assert.Equal(t, "24:00", act.EndTime)
	assert.Equal(t, 1440, act.DurationMinutes)

	updated, err := svc.GetLog(ctx, log.ID)
	require.NoError(t, err)
	assert.InDelta(t, 24.0, updated.TotalOffDutyHours, 1e-9)
}

func TestInsertActivityRejectsZeroDuration(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	log := createTestLog(t, svc, "trp_1")

	_, err := svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "driving", StartTime: "08:00", EndTime: "08:00",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "endTime", verr.Errors[0].Field)
}

func TestUpdateActivityRejectsZeroDuration(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	log := createTestLog(t, svc, "trp_1")

	act, err := svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "driving", StartTime: "08:00", EndTime: "10:00",
	})
	require.NoError(t, err)

	newEnd := "08:00"
	_, err = svc.UpdateActivity(ctx, act.ID, &models.ActivityUpdateRequest{EndTime: &newEnd})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	unchanged, err := svc.GetActivity(ctx, act.ID)
	require.NoError(t, err)
	assert.Equal(t, "10:00", unchanged.EndTime)
	assert.Equal(t, 120, unchanged.DurationMinutes)
}

func TestInsertActivityMidnightCrossing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	log := createTestLog(t, svc, "trp_1")

	act, err := svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "sleeper_berth", StartTime: "22:00", EndTime: "04:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 360, act.DurationMinutes)
}

func TestUpdateActivityCascadesDurationChange(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	log := createTestLog(t, svc, "trp_1")

	first, err := svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "driving", StartTime: "06:00", EndTime: "08:00",
	})
	require.NoError(t, err)
	_, err = svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "off_duty", StartTime: "08:00", EndTime: "10:00",
	})
	require.NoError(t, err)

	// Stretch the first block by one hour; the second shifts with it.
	newEnd := "09:00"
	_, err = svc.UpdateActivity(ctx, first.ID, &models.ActivityUpdateRequest{EndTime: &newEnd})
	require.NoError(t, err)

	activities, err := svc.ListActivities(ctx, log.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00", activities[1].StartTime)
	assert.Equal(t, "11:00", activities[1].EndTime)

	updated, err := svc.GetLog(ctx, log.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, updated.TotalDrivingHours, 1e-9)
}

func TestDeleteActivityExtendsPrevious(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	log := createTestLog(t, svc, "trp_1")

	_, err := svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "off_duty", StartTime: "00:00", EndTime: "06:00",
	})
	require.NoError(t, err)
	second, err := svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "on_duty_not_driving", StartTime: "06:00", EndTime: "07:00",
	})
	require.NoError(t, err)
	_, err = svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "driving", StartTime: "07:00", EndTime: "12:00",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteActivity(ctx, second.ID))

	activities, err := svc.ListActivities(ctx, log.ID)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	// The off-duty block absorbed the deleted hour.
	assert.Equal(t, "07:00", activities[0].EndTime)
	assert.Equal(t, 420, activities[0].DurationMinutes)
	assert.Equal(t, 1, activities[1].Sequence)
}

func TestDeleteFirstActivityExtendsNextBackward(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	log := createTestLog(t, svc, "trp_1")

	first, err := svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "off_duty", StartTime: "00:00", EndTime: "06:00",
	})
	require.NoError(t, err)
	_, err = svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "driving", StartTime: "06:00", EndTime: "10:00",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteActivity(ctx, first.ID))

	activities, err := svc.ListActivities(ctx, log.ID)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "00:00", activities[0].StartTime)
	assert.Equal(t, 600, activities[0].DurationMinutes)
}

func TestDeleteOnlyActivityFails(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	log := createTestLog(t, svc, "trp_1")

	only, err := svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "off_duty", StartTime: "00:00", EndTime: "24:00",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteActivity(ctx, only.ID), ErrLastActivity)
}

func TestViewAssemblesEverything(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	log := createTestLog(t, svc, "trp_1")

	_, err := svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "off_duty", StartTime: "00:00", EndTime: "06:00",
		Location: &models.ActivityLocation{City: "Flagstaff", State: "AZ"},
	})
	require.NoError(t, err)
	_, err = svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "driving", StartTime: "06:00", EndTime: "12:00",
		Remark: "I-40 westbound",
	})
	require.NoError(t, err)

	view, err := svc.View(ctx, log.ID)
	require.NoError(t, err)

	assert.Equal(t, "03/14/2025", view.Header.Date)
	assert.Equal(t, "J. Doe", view.Header.DriverName)
	assert.Equal(t, "N/A", view.Header.CarrierName)
	assert.Len(t, view.Timeline.Segments, 2)
	assert.Len(t, view.Timeline.Connectors, 1)
	assert.Len(t, view.Remarks, 2)
	assert.Equal(t, "Flagstaff, AZ", view.Remarks[0].Location)
	assert.Equal(t, "No location - I-40 westbound", view.Remarks[1].Line)
	// Only 12 of 24 hours logged, so the sheet is invalid.
	assert.False(t, view.Validation.IsValid)
	assert.Equal(t, models.Clock{Hours: 6, Minutes: 0, Display: "6h 00m"}, view.Totals.Driving)
}

func TestGetLogNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetLog(context.Background(), "log_missing")
	assert.ErrorIs(t, err, ErrLogNotFound)
}

func TestUpdateLogHeader(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	log := createTestLog(t, svc, "trp_1")

	carrier := "Acme Freight"
	signature := "J. Doe"
	updated, err := svc.UpdateLog(ctx, log.ID, &models.DailyLogUpdateRequest{
		CarrierName:     &carrier,
		DriverSignature: &signature,
		TrailerNumbers:  []string{"T-9"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Freight", updated.CarrierName)
	assert.Equal(t, "J. Doe", updated.DriverSignature)
	assert.Equal(t, []string{"T-9"}, updated.TrailerNumbers)
	assert.Equal(t, "J. Doe", updated.DriverName, "unset fields keep their value")
}

func TestDrivingMinutesAndLatestActivity(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	log := createTestLog(t, svc, "trp_1")

	_, err := svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "driving", StartTime: "06:00", EndTime: "08:00",
	})
	require.NoError(t, err)
	_, err = svc.InsertActivity(ctx, log.ID, &models.ActivityCreateRequest{
		Status: "driving", StartTime: "09:00", EndTime: "10:30",
	})
	require.NoError(t, err)

	minutes, err := svc.DrivingMinutes(ctx, "trp_1")
	require.NoError(t, err)
	assert.Equal(t, 210, minutes)

	latest, err := svc.LatestActivity(ctx, "trp_1")
	require.NoError(t, err)
	assert.Equal(t, "09:00", latest.StartTime)

	_, err = svc.LatestActivity(ctx, "trp_none")
	assert.ErrorIs(t, err, ErrActivityNotFound)
}
