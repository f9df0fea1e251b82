package location

import (
	"context"

	autherrors "go-fieldtrack/internal/auth/errors"
	"go-fieldtrack/internal/domain"
	"go-fieldtrack/internal/geo"
	"go-fieldtrack/internal/shared/contextutil"
	"go-fieldtrack/internal/state"

	"go.uber.org/zap"
)

//go:generate mockgen -source=location_service.go -destination=mock/location_service_mock.go -package=mock
type Service interface {
	// Update records the session user's current position, stamped now.
	Update(ctx context.Context, coord geo.Coordinate) (LocationResponse, error)
}

type service struct {
	state  *state.State
	logger *zap.Logger
}

func NewService(st *state.State, logger ...*zap.Logger) Service {
	l := zap.L().Named("location.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{state: st, logger: l}
}

func (s *service) getLogger(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) Update(ctx context.Context, coord geo.Coordinate) (LocationResponse, error) {
	log := s.getLogger(ctx)

	actor, ok := s.state.Session()
	if !ok {
		return LocationResponse{}, autherrors.ErrNoSession
	}
	if err := coord.Validate(); err != nil {
		return LocationResponse{}, err
	}

	now := s.state.Clock().Now()
	point := domain.StampedPoint{Lat: coord.Lat, Lng: coord.Lng, Timestamp: domain.Millis(now)}

	err := s.state.MutateAs(ctx, "location.update", actor.ID, func(snap *domain.Snapshot) error {
		for i := range snap.Users {
			if snap.Users[i].ID == actor.ID {
				p := point
				snap.Users[i].LastLocation = &p
				return nil
			}
		}
		return autherrors.ErrNoSession
	})
	if err != nil {
		log.Warn("location update rejected", zap.String("user_id", actor.ID), zap.Error(err))
		return LocationResponse{}, err
	}

	log.Debug("location updated", zap.String("user_id", actor.ID))
	return mapToResponse(actor.ID, point, now.Location()), nil
}
