package task

import (
	"context"
	"strings"
	"time"

	autherrors "go-fieldtrack/internal/auth/errors"
	"go-fieldtrack/internal/clock"
	"go-fieldtrack/internal/domain"
	"go-fieldtrack/internal/events"
	"go-fieldtrack/internal/geo"
	"go-fieldtrack/internal/shared/contextutil"
	"go-fieldtrack/internal/shared/ids"
	"go-fieldtrack/internal/state"
	taskerrors "go-fieldtrack/internal/task/errors"

	"go.uber.org/zap"
)

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type Service interface {
	Assign(ctx context.Context, req AssignTaskRequest) (TaskResponse, error)
	Complete(ctx context.Context, taskID string, proof ProofInput) (TaskResponse, error)
	// List returns every task to admins and the caller's tasks otherwise.
	List(ctx context.Context) ([]TaskResponse, error)
	Mine(ctx context.Context) (MyTasksResponse, error)
}

type service struct {
	state     *state.State
	publisher events.Publisher
	logger    *zap.Logger
}

func NewService(st *state.State, publisher events.Publisher, logger ...*zap.Logger) Service {
	l := zap.L().Named("task.service")
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

func (s *service) Assign(ctx context.Context, req AssignTaskRequest) (TaskResponse, error) {
	log := s.getLogger(ctx)

	actor, ok := s.state.Session()
	if !ok {
		return TaskResponse{}, autherrors.ErrNoSession
	}
	if !actor.IsAdmin() {
		return TaskResponse{}, autherrors.ErrForbidden
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return TaskResponse{}, taskerrors.ErrTitleRequired
	}
	assignee := strings.TrimSpace(req.AssignedTo)
	if assignee == "" {
		return TaskResponse{}, taskerrors.ErrAssigneeRequired
	}

	now := s.state.Clock().Now()
	dueDate := strings.TrimSpace(req.DueDate)
	if dueDate == "" {
		dueDate = now.Format(clock.DateLayout)
	} else if _, err := time.Parse(clock.DateLayout, dueDate); err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidDueDate
	}

	point := geo.DefaultCenter
	if req.Lat != nil || req.Lng != nil {
		c, err := geo.FromReport(req.Lat, req.Lng, "")
		if err != nil {
			return TaskResponse{}, err
		}
		point = c
	}

	var (
		t            domain.Task
		assigneeName string
	)
	err := s.state.MutateAs(ctx, "task.assign", actor.ID, func(snap *domain.Snapshot) error {
		u, found := snap.FindUser(assignee)
		if !found || u.Role != domain.RoleEmployee {
			return taskerrors.ErrAssigneeNotFound
		}
		assigneeName = u.Name
		t = domain.Task{
			ID:          ids.New(),
			AssignedTo:  assignee,
			Title:       title,
			Description: req.Description,
			Location: domain.TaskLocation{
				Lat:     point.Lat,
				Lng:     point.Lng,
				Address: req.Address,
			},
			Status:  domain.TaskPending,
			DueDate: dueDate,
		}
		snap.Tasks = append(snap.Tasks, t)
		return nil
	})
	if err != nil {
		log.Warn("task assignment rejected", zap.String("assigned_to", assignee), zap.Error(err))
		return TaskResponse{}, err
	}

	log.Info("task assigned", zap.String("task_id", t.ID), zap.String("assigned_to", assignee))
	s.publish(ctx, events.TaskEvent{
		EventType:  events.TypeTaskAssigned,
		TaskID:     t.ID,
		AssignedTo: t.AssignedTo,
		ActorID:    actor.ID,
		Status:     string(t.Status),
		OccurredAt: now,
	})

	return mapToResponse(t, assigneeName, now.Location()), nil
}

// Complete marks a pending task done with proof. Only the assignee or an
// admin may complete it.
func (s *service) Complete(ctx context.Context, taskID string, proof ProofInput) (TaskResponse, error) {
	log := s.getLogger(ctx)

	actor, ok := s.state.Session()
	if !ok {
		return TaskResponse{}, autherrors.ErrNoSession
	}
	if err := proof.Location.Validate(); err != nil {
		return TaskResponse{}, err
	}

	note := strings.TrimSpace(proof.Note)
	if note == "" {
		note = DefaultProofNote
	}
	now := s.state.Clock().Now()

	var (
		t            domain.Task
		assigneeName string
	)
	err := s.state.MutateAs(ctx, "task.complete", actor.ID, func(snap *domain.Snapshot) error {
		for i := range snap.Tasks {
			task := &snap.Tasks[i]
			if task.ID != taskID {
				continue
			}
			if task.AssignedTo != actor.ID && !actor.IsAdmin() {
				return autherrors.ErrForbidden
			}
			if task.Status == domain.TaskCompleted {
				return taskerrors.ErrTaskAlreadyCompleted
			}
			task.Status = domain.TaskCompleted
			task.Proof = &domain.Proof{
				Note:      note,
				PhotoURL:  proof.PhotoURL,
				Timestamp: domain.Millis(now),
				Location:  proof.Location.Point(),
			}
			t = *task
			if u, found := snap.FindUser(task.AssignedTo); found {
				assigneeName = u.Name
			}
			return nil
		}
		return taskerrors.ErrTaskNotFound
	})
	if err != nil {
		log.Warn("task completion rejected", zap.String("task_id", taskID), zap.Error(err))
		return TaskResponse{}, err
	}

	log.Info("task completed", zap.String("task_id", t.ID), zap.String("actor_id", actor.ID))
	s.publish(ctx, events.TaskEvent{
		EventType:  events.TypeTaskCompleted,
		TaskID:     t.ID,
		AssignedTo: t.AssignedTo,
		ActorID:    actor.ID,
		Status:     string(t.Status),
		OccurredAt: now,
	})

	return mapToResponse(t, assigneeName, now.Location()), nil
}

func (s *service) List(ctx context.Context) ([]TaskResponse, error) {
	actor, ok := s.state.Session()
	if !ok {
		return nil, autherrors.ErrNoSession
	}
	return s.collect(func(t domain.Task) bool {
		return actor.IsAdmin() || t.AssignedTo == actor.ID
	}), nil
}

func (s *service) Mine(ctx context.Context) (MyTasksResponse, error) {
	actor, ok := s.state.Session()
	if !ok {
		return MyTasksResponse{}, autherrors.ErrNoSession
	}

	resp := MyTasksResponse{Pending: []TaskResponse{}, Completed: []TaskResponse{}}
	for _, t := range s.collect(func(t domain.Task) bool { return t.AssignedTo == actor.ID }) {
		switch domain.TaskStatus(t.Status) {
		case domain.TaskPending:
			resp.Pending = append(resp.Pending, t)
		case domain.TaskCompleted:
			resp.Completed = append(resp.Completed, t)
		}
	}
	return resp, nil
}

func (s *service) collect(keep func(domain.Task) bool) []TaskResponse {
	loc := s.state.Clock().Now().Location()
	var res []TaskResponse
	s.state.View(func(snap domain.Snapshot) {
		names := make(map[string]string, len(snap.Users))
		for _, u := range snap.Users {
			names[u.ID] = u.Name
		}
		res = make([]TaskResponse, 0, len(snap.Tasks))
		for _, t := range snap.Tasks {
			if keep(t) {
				res = append(res, mapToResponse(t, names[t.AssignedTo], loc))
			}
		}
	})
	return res
}

// publish is best effort: the change is already saved.
func (s *service) publish(ctx context.Context, e events.TaskEvent) {
	if err := s.publisher.Publish(ctx, e.Message()); err != nil {
		s.getLogger(ctx).Warn("failed to publish task event",
			zap.String("event_type", e.EventType),
			zap.String("task_id", e.TaskID),
			zap.Error(err),
		)
	}
}
