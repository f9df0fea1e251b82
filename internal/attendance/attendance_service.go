package attendance

import (
	"context"
	"sort"
	"time"

	attendanceerrors "go-fieldtrack/internal/attendance/errors"
	autherrors "go-fieldtrack/internal/auth/errors"
	"go-fieldtrack/internal/clock"
	"go-fieldtrack/internal/domain"
	"go-fieldtrack/internal/events"
	"go-fieldtrack/internal/geo"
	"go-fieldtrack/internal/shared/contextutil"
	"go-fieldtrack/internal/shared/ids"
	"go-fieldtrack/internal/state"

	"go.uber.org/zap"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	PunchIn(ctx context.Context, coord geo.Coordinate) (AttendanceResponse, error)
	PunchOut(ctx context.Context, coord geo.Coordinate) (AttendanceResponse, error)
	Today(ctx context.Context) (TodayResponse, error)
	// List returns every record for admins and the caller's own records
	// otherwise, newest date first.
	List(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)
}

type service struct {
	state     *state.State
	publisher events.Publisher
	logger    *zap.Logger
}

func NewService(st *state.State, publisher events.Publisher, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &service{state: st, publisher: publisher, logger: l}
}

func (s *service) getLogger(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) location() *time.Location {
	return s.state.Clock().Now().Location()
}

func (s *service) PunchIn(ctx context.Context, coord geo.Coordinate) (AttendanceResponse, error) {
	log := s.getLogger(ctx)

	user, ok := s.state.Session()
	if !ok {
		return AttendanceResponse{}, autherrors.ErrNoSession
	}
	if err := coord.Validate(); err != nil {
		return AttendanceResponse{}, err
	}

	now := s.state.Clock().Now()
	today := now.Format(clock.DateLayout)

	var rec domain.AttendanceRecord
	err := s.state.MutateAs(ctx, "attendance.punch_in", user.ID, func(snap *domain.Snapshot) error {
		if _, exists := snap.AttendanceFor(user.ID, today); exists {
			return attendanceerrors.ErrAlreadyPunchedIn
		}
		rec = domain.AttendanceRecord{
			ID:     ids.New(),
			UserID: user.ID,
			Date:   today,
			PunchIn: &domain.PunchEvent{
				Timestamp: domain.Millis(now),
				Location:  coord.Point(),
			},
			Status: domain.AttendancePresent,
		}
		snap.Attendance = append(snap.Attendance, rec)
		return nil
	})
	if err != nil {
		log.Warn("punch in rejected", zap.String("user_id", user.ID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	log.Info("punched in", zap.String("user_id", user.ID), zap.String("record_id", rec.ID))
	s.publish(ctx, events.AttendancePunchedEvent{
		EventType:  events.TypeAttendancePunchedIn,
		RecordID:   rec.ID,
		UserID:     user.ID,
		Date:       today,
		Lat:        coord.Lat,
		Lng:        coord.Lng,
		OccurredAt: now,
	})

	return mapToResponse(rec, user.Name, s.location()), nil
}

func (s *service) PunchOut(ctx context.Context, coord geo.Coordinate) (AttendanceResponse, error) {
	log := s.getLogger(ctx)

	user, ok := s.state.Session()
	if !ok {
		return AttendanceResponse{}, autherrors.ErrNoSession
	}
	if err := coord.Validate(); err != nil {
		return AttendanceResponse{}, err
	}

	now := s.state.Clock().Now()
	today := now.Format(clock.DateLayout)

	var rec domain.AttendanceRecord
	err := s.state.MutateAs(ctx, "attendance.punch_out", user.ID, func(snap *domain.Snapshot) error {
		for i := range snap.Attendance {
			a := &snap.Attendance[i]
			if a.UserID != user.ID || a.Date != today || a.PunchIn == nil {
				continue
			}
			if a.PunchOut != nil {
				return attendanceerrors.ErrAlreadyPunchedOut
			}
			ts := domain.Millis(now)
			// The wall clock may have stepped back since punch-in.
			if ts < a.PunchIn.Timestamp {
				ts = a.PunchIn.Timestamp
			}
			a.PunchOut = &domain.PunchEvent{Timestamp: ts, Location: coord.Point()}
			rec = *a
			return nil
		}
		return attendanceerrors.ErrNotPunchedIn
	})
	if err != nil {
		log.Warn("punch out rejected", zap.String("user_id", user.ID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	log.Info("punched out", zap.String("user_id", user.ID), zap.String("record_id", rec.ID))
	s.publish(ctx, events.AttendancePunchedEvent{
		EventType:  events.TypeAttendancePunchedOut,
		RecordID:   rec.ID,
		UserID:     user.ID,
		Date:       today,
		Lat:        coord.Lat,
		Lng:        coord.Lng,
		OccurredAt: now,
	})

	return mapToResponse(rec, user.Name, s.location()), nil
}

func (s *service) Today(ctx context.Context) (TodayResponse, error) {
	user, ok := s.state.Session()
	if !ok {
		return TodayResponse{}, autherrors.ErrNoSession
	}

	loc := s.location()
	today := clock.Today(s.state.Clock())

	var (
		rec    domain.AttendanceRecord
		exists bool
	)
	s.state.View(func(snap domain.Snapshot) {
		rec, exists = snap.AttendanceFor(user.ID, today)
		rec = rec.Clone()
	})

	resp := TodayResponse{Date: today, State: DayIdle, EntryTime: EntryTime(nil, loc)}
	if !exists {
		return resp, nil
	}

	r := mapToResponse(rec, user.Name, loc)
	resp.Record = &r
	resp.State = DayStateOf(&rec)
	resp.EntryTime = EntryTime(&rec, loc)
	resp.Hours = r.HoursWorked
	return resp, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error) {
	user, ok := s.state.Session()
	if !ok {
		return nil, autherrors.ErrNoSession
	}
	if filter.Date != "" {
		if _, err := time.Parse(clock.DateLayout, filter.Date); err != nil {
			return nil, attendanceerrors.ErrInvalidDateFormat
		}
	}
	if !user.IsAdmin() {
		filter.UserID = user.ID
	}

	loc := s.location()
	var res []AttendanceResponse
	s.state.View(func(snap domain.Snapshot) {
		names := make(map[string]string, len(snap.Users))
		for _, u := range snap.Users {
			names[u.ID] = u.Name
		}
		res = make([]AttendanceResponse, 0, len(snap.Attendance))
		for _, a := range snap.Attendance {
			if filter.UserID != "" && a.UserID != filter.UserID {
				continue
			}
			if filter.Date != "" && a.Date != filter.Date {
				continue
			}
			res = append(res, mapToResponse(a, names[a.UserID], loc))
		}
	})

	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Date != res[j].Date {
			return res[i].Date > res[j].Date
		}
		return punchTimestamp(res[i]) > punchTimestamp(res[j])
	})
	return res, nil
}

func punchTimestamp(r AttendanceResponse) int64 {
	if r.PunchIn == nil {
		return 0
	}
	return r.PunchIn.Timestamp
}

// publish is best effort: the change is already saved.
func (s *service) publish(ctx context.Context, e events.AttendancePunchedEvent) {
	if err := s.publisher.Publish(ctx, e.Message()); err != nil {
		s.getLogger(ctx).Warn("failed to publish attendance event",
			zap.String("event_type", e.EventType),
			zap.String("record_id", e.RecordID),
			zap.Error(err),
		)
	}
}
