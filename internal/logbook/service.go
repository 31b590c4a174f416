package logbook

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndungtse/driver-x/internal/api/models"
)

const minutesPerDay = 24 * 60

// timeOfDayRegex validates HH:MM and HH:MM:SS wall-clock strings.
var timeOfDayRegex = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

// isEndOfDay reports whether t is the 24:00 end-of-day boundary, which is a
// valid end time but never a valid start time.
func isEndOfDay(t string) bool {
	return t == "24:00" || t == "24:00:00"
}

// ServiceConfig configures the logbook service.
type ServiceConfig struct {
	Logs       LogRepository
	Activities ActivityRepository
	Timeline   TimelineConfig
	Logger     zerolog.Logger
}

// Service provides daily log and activity operations. Activity mutations
// cascade along the day's timeline and recompute the log's duty totals.
type Service struct {
	logs       LogRepository
	activities ActivityRepository
	engine     *Engine
	logger     zerolog.Logger
}

// NewService creates a new logbook service.
func NewService(cfg ServiceConfig) (*Service, error) {
	engine, err := NewEngine(cfg.Timeline)
	if err != nil {
		return nil, err
	}
	return &Service{
		logs:       cfg.Logs,
		activities: cfg.Activities,
		engine:     engine,
		logger:     cfg.Logger,
	}, nil
}

// CreateLog creates a daily log for a trip.
func (s *Service) CreateLog(ctx context.Context, tripID string, input *models.DailyLogCreateRequest) (*models.DailyLog, error) {
	var errs []models.FieldError

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		errs = append(errs, models.FieldError{Field: "date", Message: "must be a date in YYYY-MM-DD format"})
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	now := time.Now()
	log := &DailyLog{
		ID:                 "log_" + uuid.New().String()[:22],
		TripID:             tripID,
		Date:               date,
		DriverName:         input.DriverName,
		CoDriverName:       input.CoDriverName,
		HomeTerminal:       input.HomeTerminal,
		CarrierName:        input.CarrierName,
		TractorNumber:      input.TractorNumber,
		TrailerNumbers:     input.TrailerNumbers,
		ShipperName:        input.ShipperName,
		Commodity:          input.Commodity,
		ShippingDocNumbers: input.ShippingDocNumbers,
		TotalTruckMileage:  input.TotalTruckMileage,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.logs.Create(ctx, log); err != nil {
		return nil, err
	}

	result := s.toAPILog(log)
	return &result, nil
}

// EnsureLogForDate returns the trip's log for a date, creating an empty one
// with the given header fields when none exists yet.
func (s *Service) EnsureLogForDate(ctx context.Context, tripID string, date time.Time, driverName, homeTerminal, carrierName string) (*models.DailyLog, error) {
	existing, err := s.logs.GetByTripAndDate(ctx, tripID, date.Format("2006-01-02"))
	if err == nil {
		result := s.toAPILog(existing)
		return &result, nil
	}
	if !errors.Is(err, ErrLogNotFound) {
		return nil, err
	}

	created, err := s.CreateLog(ctx, tripID, &models.DailyLogCreateRequest{
		Date:         date.Format("2006-01-02"),
		DriverName:   driverName,
		HomeTerminal: homeTerminal,
		CarrierName:  carrierName,
	})
	if errors.Is(err, ErrDuplicateLogDate) {
		// Lost a race with a concurrent create; the log exists now.
		existing, getErr := s.logs.GetByTripAndDate(ctx, tripID, date.Format("2006-01-02"))
		if getErr != nil {
			return nil, getErr
		}
		result := s.toAPILog(existing)
		return &result, nil
	}
	return created, err
}

// GetLog retrieves a daily log by ID.
func (s *Service) GetLog(ctx context.Context, logID string) (*models.DailyLog, error) {
	log, err := s.logs.Get(ctx, logID)
	if err != nil {
		return nil, err
	}
	result := s.toAPILog(log)
	return &result, nil
}

// ListLogs retrieves all logs of a trip ordered by date.
func (s *Service) ListLogs(ctx context.Context, tripID string) ([]models.DailyLog, error) {
	logs, err := s.logs.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	items := make([]models.DailyLog, 0, len(logs))
	for _, log := range logs {
		items = append(items, s.toAPILog(log))
	}
	return items, nil
}

// UpdateLog updates the header fields of a daily log. Duty totals and total
// miles driven are derived from activities and cannot be set directly.
func (s *Service) UpdateLog(ctx context.Context, logID string, input *models.DailyLogUpdateRequest) (*models.DailyLog, error) {
	log, err := s.logs.Get(ctx, logID)
	if err != nil {
		return nil, err
	}

	if input.DriverName != nil {
		log.DriverName = *input.DriverName
	}
	if input.DriverSignature != nil {
		log.DriverSignature = *input.DriverSignature
	}
	if input.CoDriverName != nil {
		log.CoDriverName = *input.CoDriverName
	}
	if input.HomeTerminal != nil {
		log.HomeTerminal = *input.HomeTerminal
	}
	if input.CarrierName != nil {
		log.CarrierName = *input.CarrierName
	}
	if input.TractorNumber != nil {
		log.TractorNumber = *input.TractorNumber
	}
	if input.TrailerNumbers != nil {
		log.TrailerNumbers = input.TrailerNumbers
	}
	if input.ShipperName != nil {
		log.ShipperName = *input.ShipperName
	}
	if input.Commodity != nil {
		log.Commodity = *input.Commodity
	}
	if input.ShippingDocNumbers != nil {
		log.ShippingDocNumbers = input.ShippingDocNumbers
	}
	if input.TotalTruckMileage != nil {
		log.TotalTruckMileage = *input.TotalTruckMileage
	}
	log.UpdatedAt = time.Now()

	if err := s.logs.Update(ctx, log); err != nil {
		return nil, err
	}

	result := s.toAPILog(log)
	return &result, nil
}

// DeleteLog removes a daily log and its activities.
func (s *Service) DeleteLog(ctx context.Context, logID string) error {
	return s.logs.Delete(ctx, logID)
}

// ComposeDay loads a log with its ordered activities.
func (s *Service) ComposeDay(ctx context.Context, logID string) (DailyLogWithActivities, error) {
	log, err := s.logs.Get(ctx, logID)
	if err != nil {
		return DailyLogWithActivities{}, err
	}
	activities, err := s.activities.ListByLog(ctx, logID)
	if err != nil {
		return DailyLogWithActivities{}, err
	}

	day := DailyLogWithActivities{Log: *log, Activities: make([]Activity, 0, len(activities))}
	for _, activity := range activities {
		day.Activities = append(day.Activities, *activity)
	}
	return day, nil
}

// View assembles the full logbook view model for a day: sheet header, clock
// totals, timeline geometry, remarks and the structural validation result.
func (s *Service) View(ctx context.Context, logID string) (*models.LogbookView, error) {
	day, err := s.ComposeDay(ctx, logID)
	if err != nil {
		return nil, err
	}

	timeline, err := s.engine.Layout(day.Activities)
	if err != nil {
		return nil, err
	}

	view := &models.LogbookView{
		Log:        s.toAPILog(&day.Log),
		Header:     toAPIHeader(HeaderView(day.Log)),
		Totals:     toAPITotals(Totals(day.Log)),
		Timeline:   toAPITimeline(timeline),
		Remarks:    toAPIRemarks(Remarks(day.Activities)),
		Validation: toAPIValidation(Validate(day)),
	}
	return view, nil
}

// GetActivity retrieves an activity by ID.
func (s *Service) GetActivity(ctx context.Context, activityID string) (*models.Activity, error) {
	activity, err := s.activities.Get(ctx, activityID)
	if err != nil {
		return nil, err
	}
	result := s.toAPIActivity(activity)
	return &result, nil
}

// ListActivities retrieves a log's activities in timeline order.
func (s *Service) ListActivities(ctx context.Context, logID string) ([]models.Activity, error) {
	if _, err := s.logs.Get(ctx, logID); err != nil {
		return nil, err
	}
	activities, err := s.activities.ListByLog(ctx, logID)
	if err != nil {
		return nil, err
	}

	items := make([]models.Activity, 0, len(activities))
	for _, activity := range activities {
		items = append(items, s.toAPIActivity(activity))
	}
	return items, nil
}

// InsertActivity adds an activity to a log's timeline. Activities after the
// insertion point shift forward by the new activity's duration, wrapping at
// midnight; totals are recomputed afterwards.
func (s *Service) InsertActivity(ctx context.Context, logID string, input *models.ActivityCreateRequest) (*models.Activity, error) {
	if _, err := s.logs.Get(ctx, logID); err != nil {
		return nil, err
	}

	if fieldErrors := validateActivityCreate(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	existing, err := s.activities.ListByLog(ctx, logID)
	if err != nil {
		return nil, err
	}

	position := len(existing)
	if input.Position != nil {
		position = *input.Position
		if position < 0 || position > len(existing) {
			return nil, &ValidationError{Errors: []models.FieldError{
				{Field: "position", Message: fmt.Sprintf("must be between 0 and %d", len(existing))},
			}}
		}
	}

	if position < len(existing) && normalizeTime(input.StartTime) >= existing[position].StartTime {
		return nil, &ValidationError{Errors: []models.FieldError{
			{Field: "startTime", Message: "must be before the activity currently at this position"},
		}}
	}

	duration := durationMinutes(input.StartTime, input.EndTime)
	now := time.Now()
	activity := &Activity{
		ID:              "act_" + uuid.New().String()[:22],
		DailyLogID:      logID,
		Status:          ActivityStatus(input.Status),
		StartTime:       normalizeTime(input.StartTime),
		EndTime:         normalizeTime(input.EndTime),
		DurationMinutes: duration,
		Location:        fromAPILocation(input.Location),
		Remark:          input.Remark,
		MilesDriven:     input.MilesDriven,
		Sequence:        position,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if input.EndLocation != nil {
		end := fromAPILocation(input.EndLocation)
		activity.EndLocation = &end
	}

	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}

	// Shift everything at and after the insertion point forward.
	for i := position; i < len(existing); i++ {
		shifted := existing[i]
		shifted.StartTime = addMinutes(shifted.StartTime, duration)
		shifted.EndTime = addMinutes(shifted.EndTime, duration)
		shifted.Sequence = i + 1
		shifted.UpdatedAt = now
		if err := s.activities.Update(ctx, shifted); err != nil {
			return nil, err
		}
	}

	if err := s.RecomputeTotals(ctx, logID); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("log_id", logID).
		Str("activity_id", activity.ID).
		Int("position", position).
		Msg("activity inserted")

	result := s.toAPIActivity(activity)
	return &result, nil
}

// UpdateActivity modifies an activity. A change in duration shifts every
// later activity on the timeline by the difference.
func (s *Service) UpdateActivity(ctx context.Context, activityID string, input *models.ActivityUpdateRequest) (*models.Activity, error) {
	activity, err := s.activities.Get(ctx, activityID)
	if err != nil {
		return nil, err
	}

	if fieldErrors := validateActivityUpdate(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	oldDuration := activity.DurationMinutes

	if input.Status != nil {
		activity.Status = ActivityStatus(*input.Status)
	}
	if input.StartTime != nil {
		activity.StartTime = normalizeTime(*input.StartTime)
	}
	if input.EndTime != nil {
		activity.EndTime = normalizeTime(*input.EndTime)
	}
	if input.Location != nil {
		activity.Location = fromAPILocation(input.Location)
	}
	if input.EndLocation != nil {
		end := fromAPILocation(input.EndLocation)
		activity.EndLocation = &end
	}
	if input.Remark != nil {
		activity.Remark = *input.Remark
	}
	if input.MilesDriven != nil {
		activity.MilesDriven = input.MilesDriven
	}
	activity.DurationMinutes = durationMinutes(activity.StartTime, activity.EndTime)
	if activity.DurationMinutes == 0 {
		return nil, &ValidationError{Errors: []models.FieldError{
			{Field: "endTime", Message: "must be after startTime"},
		}}
	}
	activity.UpdatedAt = time.Now()

	if err := s.activities.Update(ctx, activity); err != nil {
		return nil, err
	}

	// Cascade the duration change into later activities.
	if delta := activity.DurationMinutes - oldDuration; delta != 0 {
		siblings, err := s.activities.ListByLog(ctx, activity.DailyLogID)
		if err != nil {
			return nil, err
		}
		for _, sibling := range siblings {
			if sibling.Sequence <= activity.Sequence {
				continue
			}
			sibling.StartTime = addMinutes(sibling.StartTime, delta)
			sibling.EndTime = addMinutes(sibling.EndTime, delta)
			sibling.UpdatedAt = activity.UpdatedAt
			if err := s.activities.Update(ctx, sibling); err != nil {
				return nil, err
			}
		}
	}

	if err := s.RecomputeTotals(ctx, activity.DailyLogID); err != nil {
		return nil, err
	}

	result := s.toAPIActivity(activity)
	return &result, nil
}

// DeleteActivity removes an activity and closes the resulting gap by
// extending the previous activity forward, or the next one backward when the
// first activity of the day is deleted. The only activity of a day cannot be
// deleted.
func (s *Service) DeleteActivity(ctx context.Context, activityID string) error {
	activity, err := s.activities.Get(ctx, activityID)
	if err != nil {
		return err
	}

	siblings, err := s.activities.ListByLog(ctx, activity.DailyLogID)
	if err != nil {
		return err
	}
	if len(siblings) == 1 {
		return ErrLastActivity
	}

	index := -1
	for i, sibling := range siblings {
		if sibling.ID == activityID {
			index = i
			break
		}
	}
	if index == -1 {
		return ErrActivityNotFound
	}

	now := time.Now()
	if index == 0 {
		next := siblings[1]
		next.StartTime = activity.StartTime
		next.DurationMinutes = durationMinutes(next.StartTime, next.EndTime)
		next.UpdatedAt = now
		if err := s.activities.Update(ctx, next); err != nil {
			return err
		}
	} else {
		prev := siblings[index-1]
		prev.EndTime = activity.EndTime
		prev.DurationMinutes = durationMinutes(prev.StartTime, prev.EndTime)
		prev.UpdatedAt = now
		if err := s.activities.Update(ctx, prev); err != nil {
			return err
		}
	}

	if err := s.activities.Delete(ctx, activityID); err != nil {
		return err
	}

	// Close the sequence gap.
	for _, sibling := range siblings[index+1:] {
		sibling.Sequence--
		sibling.UpdatedAt = now
		if err := s.activities.Update(ctx, sibling); err != nil {
			return err
		}
	}

	return s.RecomputeTotals(ctx, activity.DailyLogID)
}

// RecomputeTotals rebuilds a log's duty-hour totals and total miles driven
// from its activities.
func (s *Service) RecomputeTotals(ctx context.Context, logID string) error {
	log, err := s.logs.Get(ctx, logID)
	if err != nil {
		return err
	}
	activities, err := s.activities.ListByLog(ctx, logID)
	if err != nil {
		return err
	}

	var offDuty, sleeper, driving, onDuty int
	var miles float64
	for _, activity := range activities {
		switch activity.Status {
		case StatusOffDuty:
			offDuty += activity.DurationMinutes
		case StatusSleeperBerth:
			sleeper += activity.DurationMinutes
		case StatusDriving:
			driving += activity.DurationMinutes
			if activity.MilesDriven != nil {
				miles += *activity.MilesDriven
			}
		case StatusOnDutyNotDriving:
			onDuty += activity.DurationMinutes
		}
	}

	log.TotalOffDutyHours = float64(offDuty) / 60
	log.TotalSleeperBerthHours = float64(sleeper) / 60
	log.TotalDrivingHours = float64(driving) / 60
	log.TotalOnDutyHours = float64(onDuty) / 60
	log.TotalMilesDriven = miles
	log.UpdatedAt = time.Now()

	return s.logs.Update(ctx, log)
}

// LatestActivity returns the most recent activity across a trip's logs, or
// ErrActivityNotFound when the trip has none.
func (s *Service) LatestActivity(ctx context.Context, tripID string) (*Activity, error) {
	return s.activities.LatestByTrip(ctx, tripID)
}

// DrivingMinutes sums driving time across all of a trip's logs.
func (s *Service) DrivingMinutes(ctx context.Context, tripID string) (int, error) {
	return s.activities.DrivingMinutesByTrip(ctx, tripID)
}

// validateActivityCreate validates the create activity input.
func validateActivityCreate(input *models.ActivityCreateRequest) []models.FieldError {
	var errs []models.FieldError

	if !ActivityStatus(input.Status).Valid() {
		errs = append(errs, models.FieldError{Field: "status", Message: "must be one of off_duty, sleeper_berth, driving, on_duty_not_driving"})
	}
	startOK := timeOfDayRegex.MatchString(input.StartTime)
	endOK := timeOfDayRegex.MatchString(input.EndTime) || isEndOfDay(input.EndTime)
	if !startOK {
		errs = append(errs, models.FieldError{Field: "startTime", Message: "must be in HH:MM format"})
	}
	if !endOK {
		errs = append(errs, models.FieldError{Field: "endTime", Message: "must be in HH:MM format"})
	}
	if startOK && endOK && durationMinutes(input.StartTime, input.EndTime) == 0 {
		errs = append(errs, models.FieldError{Field: "endTime", Message: "must be after startTime"})
	}
	if input.MilesDriven != nil && ActivityStatus(input.Status) != StatusDriving {
		errs = append(errs, models.FieldError{Field: "milesDriven", Message: "only driving activities can record miles"})
	}
	errs = append(errs, validateAPILocation(input.Location, "location")...)
	errs = append(errs, validateAPILocation(input.EndLocation, "endLocation")...)

	return errs
}

// validateActivityUpdate validates the update activity input.
func validateActivityUpdate(input *models.ActivityUpdateRequest) []models.FieldError {
	var errs []models.FieldError

	if input.Status != nil && !ActivityStatus(*input.Status).Valid() {
		errs = append(errs, models.FieldError{Field: "status", Message: "must be one of off_duty, sleeper_berth, driving, on_duty_not_driving"})
	}
	if input.StartTime != nil && !timeOfDayRegex.MatchString(*input.StartTime) {
		errs = append(errs, models.FieldError{Field: "startTime", Message: "must be in HH:MM format"})
	}
	if input.EndTime != nil && !timeOfDayRegex.MatchString(*input.EndTime) && !isEndOfDay(*input.EndTime) {
		errs = append(errs, models.FieldError{Field: "endTime", Message: "must be in HH:MM format"})
	}
	errs = append(errs, validateAPILocation(input.Location, "location")...)
	errs = append(errs, validateAPILocation(input.EndLocation, "endLocation")...)

	return errs
}

// validateAPILocation checks coordinate ranges of an optional location.
func validateAPILocation(loc *models.ActivityLocation, prefix string) []models.FieldError {
	if loc == nil {
		return nil
	}

	var errs []models.FieldError
	if loc.Lat != nil && (*loc.Lat < -90 || *loc.Lat > 90) {
		errs = append(errs, models.FieldError{Field: prefix + ".lat", Message: "must be between -90 and 90"})
	}
	if loc.Lon != nil && (*loc.Lon < -180 || *loc.Lon > 180) {
		errs = append(errs, models.FieldError{Field: prefix + ".lon", Message: "must be between -180 and 180"})
	}
	return errs
}

// timeToMinutes converts "HH:MM[:SS]" into minutes since midnight, ignoring
// seconds. Callers validate the format first.
func timeToMinutes(t string) int {
	parts := strings.Split(t, ":")
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

// minutesToTime converts minutes since midnight into "HH:MM", wrapping at
// midnight.
func minutesToTime(m int) string {
	m = ((m % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// durationMinutes returns the midnight-aware duration between two wall-clock
// times. An end before the start means the interval crosses midnight.
func durationMinutes(start, end string) int {
	d := timeToMinutes(end) - timeToMinutes(start)
	if d < 0 {
		d += minutesPerDay
	}
	return d
}

// addMinutes shifts a wall-clock time by a number of minutes, wrapping at
// midnight in both directions.
func addMinutes(t string, minutes int) string {
	return minutesToTime(timeToMinutes(t) + minutes)
}

// normalizeTime reduces "HH:MM:SS" to "HH:MM" and zero-pads single-digit
// hours so string ordering matches time ordering. The 24:00 end-of-day
// boundary is kept as-is rather than wrapped to 00:00.
func normalizeTime(t string) string {
	if isEndOfDay(t) {
		return "24:00"
	}
	return minutesToTime(timeToMinutes(t))
}

// toAPILog converts a domain DailyLog to an API DailyLog.
func (s *Service) toAPILog(log *DailyLog) models.DailyLog {
	return models.DailyLog{
		ID:                     log.ID,
		TripID:                 log.TripID,
		Date:                   log.Date.Format("2006-01-02"),
		TotalOffDutyHours:      log.TotalOffDutyHours,
		TotalSleeperBerthHours: log.TotalSleeperBerthHours,
		TotalDrivingHours:      log.TotalDrivingHours,
		TotalOnDutyHours:       log.TotalOnDutyHours,
		DriverName:             log.DriverName,
		DriverSignature:        log.DriverSignature,
		CoDriverName:           log.CoDriverName,
		HomeTerminal:           log.HomeTerminal,
		CarrierName:            log.CarrierName,
		TractorNumber:          log.TractorNumber,
		TrailerNumbers:         log.TrailerNumbers,
		ShipperName:            log.ShipperName,
		Commodity:              log.Commodity,
		ShippingDocNumbers:     log.ShippingDocNumbers,
		TotalMilesDriven:       log.TotalMilesDriven,
		TotalTruckMileage:      log.TotalTruckMileage,
		CreatedAt:              models.Timestamp(log.CreatedAt),
		UpdatedAt:              models.Timestamp(log.UpdatedAt),
	}
}

// toAPIActivity converts a domain Activity to an API Activity.
func (s *Service) toAPIActivity(activity *Activity) models.Activity {
	result := models.Activity{
		ID:              activity.ID,
		DailyLogID:      activity.DailyLogID,
		Status:          string(activity.Status),
		StartTime:       activity.StartTime,
		EndTime:         activity.EndTime,
		DurationMinutes: activity.DurationMinutes,
		Location:        toAPILocation(activity.Location),
		Remark:          activity.Remark,
		MilesDriven:     activity.MilesDriven,
		Sequence:        activity.Sequence,
		CreatedAt:       models.Timestamp(activity.CreatedAt),
		UpdatedAt:       models.Timestamp(activity.UpdatedAt),
	}
	if activity.EndLocation != nil {
		end := toAPILocation(*activity.EndLocation)
		result.EndLocation = &end
	}
	return result
}

func toAPILocation(loc Location) models.ActivityLocation {
	return models.ActivityLocation{
		Address: loc.Address,
		City:    loc.City,
		State:   loc.State,
		Lat:     loc.Lat,
		Lon:     loc.Lon,
	}
}

func fromAPILocation(loc *models.ActivityLocation) Location {
	if loc == nil {
		return Location{}
	}
	return Location{
		Address: loc.Address,
		City:    loc.City,
		State:   loc.State,
		Lat:     loc.Lat,
		Lon:     loc.Lon,
	}
}

func toAPIHeader(h Header) models.LogbookHeader {
	return models.LogbookHeader{
		Date:               h.Date,
		DriverName:         h.DriverName,
		DriverSignature:    h.DriverSignature,
		CoDriverName:       h.CoDriverName,
		HomeTerminal:       h.HomeTerminal,
		CarrierName:        h.CarrierName,
		TractorNumber:      h.TractorNumber,
		TrailerNumbers:     h.TrailerNumbers,
		ShipperName:        h.ShipperName,
		Commodity:          h.Commodity,
		ShippingDocNumbers: h.ShippingDocNumbers,
		TotalMilesDriven:   h.TotalMilesDriven,
		TotalTruckMileage:  h.TotalTruckMileage,
	}
}

func toAPIClock(c Clock) models.Clock {
	return models.Clock{Hours: c.Hours, Minutes: c.Minutes, Display: c.String()}
}

func toAPITotals(t ClockTotals) models.ClockTotals {
	return models.ClockTotals{
		OffDuty:      toAPIClock(t.OffDuty),
		SleeperBerth: toAPIClock(t.SleeperBerth),
		Driving:      toAPIClock(t.Driving),
		OnDuty:       toAPIClock(t.OnDuty),
		Total:        toAPIClock(t.Total),
	}
}

func toAPIValidation(v ValidationResult) models.ValidationResult {
	return models.ValidationResult{
		IsValid:  v.IsValid,
		Errors:   v.Errors,
		Warnings: v.Warnings,
	}
}

func toAPIRemarks(remarks []Remark) []models.Remark {
	items := make([]models.Remark, 0, len(remarks))
	for _, r := range remarks {
		items = append(items, models.Remark{
			ActivityID: r.ActivityID,
			Location:   r.Location,
			Note:       r.Note,
			Line:       r.Line,
		})
	}
	return items
}

func toAPITimeline(tl *Timeline) models.Timeline {
	result := models.Timeline{
		Width:      tl.Width,
		Height:     tl.Height,
		Segments:   make([]models.TimelineSegment, 0, len(tl.Segments)),
		Markers:    make([]models.TimelineMarker, 0, len(tl.Markers)),
		Connectors: make([]models.TimelineConnector, 0, len(tl.Connectors)),
		Brackets:   make([]models.TimelineBracket, 0, len(tl.Brackets)),
	}

	for _, seg := range tl.Segments {
		result.Segments = append(result.Segments, models.TimelineSegment{
			ActivityID: seg.ActivityID,
			Status:     string(seg.Status),
			X1:         seg.X1,
			X2:         seg.X2,
			Y:          seg.Y,
		})
	}
	for _, m := range tl.Markers {
		result.Markers = append(result.Markers, models.TimelineMarker{ActivityID: m.ActivityID, X: m.X, Y: m.Y})
	}
	for _, c := range tl.Connectors {
		result.Connectors = append(result.Connectors, models.TimelineConnector{X: c.X, Y1: c.Y1, Y2: c.Y2})
	}
	for _, b := range tl.Brackets {
		result.Brackets = append(result.Brackets, models.TimelineBracket{ActivityID: b.ActivityID, X: b.X, Y: b.Y})
	}

	result.Grid = models.TimelineGrid{
		HourLines:    toAPIGridLines(tl.Grid.HourLines),
		RowLines:     toAPIGridLines(tl.Grid.RowLines),
		QuarterTicks: toAPIGridLines(tl.Grid.QuarterTicks),
		HourLabels:   toAPILabels(tl.Grid.HourLabels),
		StatusLabels: toAPILabels(tl.Grid.StatusLabels),
	}
	return result
}

func toAPIGridLines(lines []GridLine) []models.GridLine {
	items := make([]models.GridLine, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.GridLine{X1: l.X1, Y1: l.Y1, X2: l.X2, Y2: l.Y2, Bold: l.Bold})
	}
	return items
}

func toAPILabels(labels []AxisLabel) []models.AxisLabel {
	items := make([]models.AxisLabel, 0, len(labels))
	for _, l := range labels {
		items = append(items, models.AxisLabel{Text: l.Text, X: l.X, Y: l.Y})
	}
	return items
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
