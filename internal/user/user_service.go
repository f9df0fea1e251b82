package user

import (
	"context"
	"strings"

	autherrors "go-fieldtrack/internal/auth/errors"
	"go-fieldtrack/internal/domain"
	"go-fieldtrack/internal/state"
	usererrors "go-fieldtrack/internal/user/errors"

	"go.uber.org/zap"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	// GetAll lists the roster in seed order, optionally narrowed to one role.
	GetAll(ctx context.Context, role string) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
}

type service struct {
	state  *state.State
	logger *zap.Logger
}

func NewService(st *state.State, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{state: st, logger: l}
}

func (s *service) requireAdmin() error {
	actor, ok := s.state.Session()
	if !ok {
		return autherrors.ErrNoSession
	}
	if !actor.IsAdmin() {
		return autherrors.ErrForbidden
	}
	return nil
}

func (s *service) GetAll(ctx context.Context, role string) ([]UserResponse, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}

	filter := domain.Role(strings.ToUpper(strings.TrimSpace(role)))
	if filter != "" && !filter.Valid() {
		return nil, usererrors.ErrInvalidRole
	}

	loc := s.state.Clock().Now().Location()
	var resp []UserResponse
	s.state.View(func(snap domain.Snapshot) {
		resp = make([]UserResponse, 0, len(snap.Users))
		for _, u := range snap.Users {
			if filter == "" || u.Role == filter {
				resp = append(resp, mapToResponse(u, loc))
			}
		}
	})
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if err := s.requireAdmin(); err != nil {
		return UserResponse{}, err
	}

	loc := s.state.Clock().Now().Location()
	var (
		resp  UserResponse
		found bool
	)
	s.state.View(func(snap domain.Snapshot) {
		var u domain.User
		if u, found = snap.FindUser(id); found {
			resp = mapToResponse(u, loc)
		}
	})
	if !found {
		return UserResponse{}, usererrors.ErrUserNotFound
	}
	return resp, nil
}
