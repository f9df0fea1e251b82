package dashboard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"go-fieldtrack/internal/attendance"
	autherrors "go-fieldtrack/internal/auth/errors"
	"go-fieldtrack/internal/clock"
	"go-fieldtrack/internal/domain"
	"go-fieldtrack/internal/geo"
	"go-fieldtrack/internal/report"
	"go-fieldtrack/internal/shared/apperror"
	"go-fieldtrack/internal/shared/contextutil"
	"go-fieldtrack/internal/state"

	"go.uber.org/zap"
)

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	Overview(ctx context.Context) (OverviewResponse, error)
	Map(ctx context.Context) (MapResponse, error)
	Home(ctx context.Context) (HomeResponse, error)
	// ExportAttendance writes every attendance record as an XLSX workbook
	// to w and returns the suggested file name.
	ExportAttendance(ctx context.Context, w io.Writer) (string, error)
}

type service struct {
	state  *state.State
	logger *zap.Logger
}

func NewService(st *state.State, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{state: st, logger: l}
}

func (s *service) getLogger(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) requireAdmin() (domain.User, error) {
	actor, ok := s.state.Session()
	if !ok {
		return domain.User{}, autherrors.ErrNoSession
	}
	if !actor.IsAdmin() {
		return domain.User{}, autherrors.ErrForbidden
	}
	return actor, nil
}

func (s *service) Overview(ctx context.Context) (OverviewResponse, error) {
	if _, err := s.requireAdmin(); err != nil {
		return OverviewResponse{}, err
	}

	now := s.state.Clock().Now()
	today := now.Format(clock.DateLayout)

	resp := OverviewResponse{Date: today}
	s.state.View(func(snap domain.Snapshot) {
		employees := snap.Employees()
		resp.Stats = stats(snap, employees, today)
		resp.Roster = make([]RosterEntry, 0, len(employees))
		for _, u := range employees {
			rec, found := snap.AttendanceFor(u.ID, today)
			resp.Roster = append(resp.Roster, RosterEntry{
				ID:      u.ID,
				Name:    u.Name,
				Details: u.Details,
				Online:  found && rec.OnDuty(),
			})
		}
		resp.Map = buildMap(employees, now.Location())
	})
	return resp, nil
}

func (s *service) Map(ctx context.Context) (MapResponse, error) {
	if _, err := s.requireAdmin(); err != nil {
		return MapResponse{}, err
	}

	loc := s.state.Clock().Now().Location()
	var resp MapResponse
	s.state.View(func(snap domain.Snapshot) {
		resp = buildMap(snap.Employees(), loc)
	})
	return resp, nil
}

func (s *service) Home(ctx context.Context) (HomeResponse, error) {
	actor, ok := s.state.Session()
	if !ok {
		return HomeResponse{}, autherrors.ErrNoSession
	}

	now := s.state.Clock().Now()
	today := now.Format(clock.DateLayout)

	resp := HomeResponse{
		Greeting: firstName(actor.Name),
		Name:     actor.Name,
		Details:  actor.Details,
		Date:     today,
	}
	s.state.View(func(snap domain.Snapshot) {
		var rec *domain.AttendanceRecord
		if r, found := snap.AttendanceFor(actor.ID, today); found {
			rec = &r
		}
		resp.State = attendance.DayStateOf(rec)
		resp.EntryTime = attendance.EntryTime(rec, now.Location())
		if rec != nil {
			if h, ok := attendance.HoursWorked(*rec); ok {
				resp.Hours = &h
			}
		}
		for _, t := range snap.Tasks {
			if t.AssignedTo == actor.ID && t.Status == domain.TaskPending {
				resp.PendingTasks++
			}
		}
	})
	return resp, nil
}

func (s *service) ExportAttendance(ctx context.Context, w io.Writer) (string, error) {
	log := s.getLogger(ctx)

	if _, err := s.requireAdmin(); err != nil {
		return "", err
	}

	now := s.state.Clock().Now()
	var rows []report.AttendanceRow
	s.state.View(func(snap domain.Snapshot) {
		rows = exportRows(snap, now.Location())
	})

	if err := report.WriteAttendance(w, rows); err != nil {
		log.Error("failed to render attendance export", zap.Error(err))
		return "", apperror.Wrap(err, apperror.CodeInternalError, "Failed to export attendance", http.StatusInternalServerError)
	}

	log.Info("attendance exported", zap.Int("rows", len(rows)))
	return fmt.Sprintf("attendance-%s.xlsx", now.Format(clock.DateLayout)), nil
}

func stats(snap domain.Snapshot, employees []domain.User, today string) StatsResponse {
	st := StatsResponse{Total: len(employees)}
	onShift := make(map[string]bool, len(employees))
	for _, e := range employees {
		onShift[e.ID] = false
	}
	for _, a := range snap.Attendance {
		active, isEmployee := onShift[a.UserID]
		if !isEmployee || active || a.Date != today || a.PunchOut != nil {
			continue
		}
		onShift[a.UserID] = true
		st.Active++
	}
	for _, t := range snap.Tasks {
		if t.Status == domain.TaskCompleted {
			st.TasksDone++
		}
	}
	return st
}

// buildMap places one marker per employee with a known location and centers
// on the first of them.
func buildMap(employees []domain.User, loc *time.Location) MapResponse {
	resp := MapResponse{
		Center:  geo.DefaultCenter,
		Zoom:    geo.DefaultZoom,
		Markers: []MarkerResponse{},
	}
	for _, u := range employees {
		if u.LastLocation == nil {
			continue
		}
		resp.Markers = append(resp.Markers, MarkerResponse{
			UserID:    u.ID,
			Name:      u.Name,
			Role:      string(u.Role),
			Details:   u.Details,
			Lat:       u.LastLocation.Lat,
			Lng:       u.LastLocation.Lng,
			Time:      domain.FromMillis(u.LastLocation.Timestamp).In(loc).Format("15:04:05"),
			Timestamp: u.LastLocation.Timestamp,
		})
	}
	if len(resp.Markers) > 0 {
		resp.Center = geo.Coordinate{Lat: resp.Markers[0].Lat, Lng: resp.Markers[0].Lng}
	}
	return resp
}

func exportRows(snap domain.Snapshot, loc *time.Location) []report.AttendanceRow {
	records := make([]domain.AttendanceRecord, len(snap.Attendance))
	copy(records, snap.Attendance)
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return punchInMillis(records[i]) > punchInMillis(records[j])
	})

	rows := make([]report.AttendanceRow, 0, len(records))
	for _, a := range records {
		row := report.AttendanceRow{
			Date:   a.Date,
			UserID: a.UserID,
			Status: string(a.Status),
		}
		if u, found := snap.FindUser(a.UserID); found {
			row.Name = u.Name
		}
		if a.PunchIn != nil {
			row.PunchIn = domain.FromMillis(a.PunchIn.Timestamp).In(loc).Format("15:04")
			row.PunchInLat, row.PunchInLng = ptr(a.PunchIn.Location.Lat), ptr(a.PunchIn.Location.Lng)
		}
		if a.PunchOut != nil {
			row.PunchOut = domain.FromMillis(a.PunchOut.Timestamp).In(loc).Format("15:04")
			row.PunchOutLat, row.PunchOutLng = ptr(a.PunchOut.Location.Lat), ptr(a.PunchOut.Location.Lng)
		}
		if h, ok := attendance.HoursWorked(a); ok {
			row.Hours = &h
		}
		rows = append(rows, row)
	}
	return rows
}

func punchInMillis(a domain.AttendanceRecord) int64 {
	if a.PunchIn == nil {
		return 0
	}
	return a.PunchIn.Timestamp
}

func ptr(v float64) *float64 {
	return &v
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}
