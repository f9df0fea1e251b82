package auth

import (
	"context"
	"strings"

	autherrors "go-fieldtrack/internal/auth/errors"
	"go-fieldtrack/internal/domain"
	"go-fieldtrack/internal/rbac"
	"go-fieldtrack/internal/shared/contextutil"
	"go-fieldtrack/internal/state"

	"go.uber.org/zap"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, phone string, role domain.Role) (SessionResponse, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (SessionResponse, error)
}

type service struct {
	state  *state.State
	rbac   rbac.Service
	logger *zap.Logger
}

func NewService(st *state.State, rbacService rbac.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{state: st, rbac: rbacService, logger: l}
}

func (s *service) getLogger(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

// Login signs in the single roster entry with this phone and role. Anything
// else, including a phone shared by two entries, leaves the session as it
// was.
func (s *service) Login(ctx context.Context, phone string, role domain.Role) (SessionResponse, error) {
	log := s.getLogger(ctx)

	if strings.TrimSpace(phone) == "" {
		return SessionResponse{}, autherrors.ErrPhoneRequired
	}

	var (
		match   domain.User
		matches int
	)
	s.state.View(func(snap domain.Snapshot) {
		for _, u := range snap.Users {
			if u.Phone == phone && u.Role == role {
				match = u.Clone()
				matches++
			}
		}
	})

	if matches != 1 {
		log.Warn("login rejected", zap.String("role", string(role)), zap.Int("matches", matches))
		return SessionResponse{}, autherrors.ErrInvalidCredentials
	}

	s.state.SetSession(match.ID)
	log.Info("signed in", zap.String("user_id", match.ID), zap.String("role", string(match.Role)))

	return s.sessionResponse(match)
}

func (s *service) Logout(ctx context.Context) error {
	s.state.ClearSession()
	s.getLogger(ctx).Info("signed out")
	return nil
}

func (s *service) Current(ctx context.Context) (SessionResponse, error) {
	u, ok := s.state.Session()
	if !ok {
		return SessionResponse{}, autherrors.ErrNoSession
	}
	return s.sessionResponse(u)
}

func (s *service) sessionResponse(u domain.User) (SessionResponse, error) {
	perms, err := s.rbac.Permissions(string(u.Role))
	if err != nil {
		return SessionResponse{}, err
	}
	return SessionResponse{
		User:        mapToUserResponse(u),
		Landing:     landingFor(u.Role),
		Permissions: perms,
	}, nil
}
