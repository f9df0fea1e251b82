package auth_test

import (
	"context"
	"testing"
	"time"

	"go-fieldtrack/internal/auth"
	autherrors "go-fieldtrack/internal/auth/errors"
	"go-fieldtrack/internal/clock"
	"go-fieldtrack/internal/domain"
	rbacMock "go-fieldtrack/internal/rbac/mock"
	"go-fieldtrack/internal/state"
	"go-fieldtrack/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newState(t *testing.T, st store.Store) *state.State {
	t.Helper()
	s, err := state.Load(context.Background(), st, clock.Fixed(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)),
		state.WithLogger(zap.NewNop()))
	require.NoError(t, err)
	return s
}

func TestService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRBAC := rbacMock.NewMockService(ctrl)
	mockRBAC.EXPECT().Permissions(gomock.Any()).Return([]string{"auth:read"}, nil).AnyTimes()

	ctx := context.Background()

	t.Run("admin phone with admin role", func(t *testing.T) {
		st := newState(t, store.NewMemoryStore(""))
		service := auth.NewService(st, mockRBAC, zap.NewNop())

		resp, err := service.Login(ctx, "9999999999", domain.RoleAdmin)

		require.NoError(t, err)
		assert.Equal(t, "u1", resp.User.ID)
		assert.Equal(t, auth.LandingAdmin, resp.Landing)
		u, ok := st.Session()
		require.True(t, ok)
		assert.Equal(t, "u1", u.ID)
	})

	t.Run("employee lands on the app", func(t *testing.T) {
		st := newState(t, store.NewMemoryStore(""))
		service := auth.NewService(st, mockRBAC, zap.NewNop())

		resp, err := service.Login(ctx, "8888888888", domain.RoleEmployee)

		require.NoError(t, err)
		assert.Equal(t, "Rohan (Field)", resp.User.Name)
		assert.Equal(t, auth.LandingEmployee, resp.Landing)
	})

	t.Run("role mismatch fails and keeps the session", func(t *testing.T) {
		st := newState(t, store.NewMemoryStore(""))
		service := auth.NewService(st, mockRBAC, zap.NewNop())
		st.SetSession("u3")

		_, err := service.Login(ctx, "9999999999", domain.RoleEmployee)

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
		u, ok := st.Session()
		require.True(t, ok)
		assert.Equal(t, "u3", u.ID)
	})

	t.Run("unknown phone fails", func(t *testing.T) {
		st := newState(t, store.NewMemoryStore(""))
		service := auth.NewService(st, mockRBAC, zap.NewNop())

		_, err := service.Login(ctx, "0000000000", domain.RoleEmployee)

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
		_, ok := st.Session()
		assert.False(t, ok)
	})

	t.Run("phone is matched exactly", func(t *testing.T) {
		st := newState(t, store.NewMemoryStore(""))
		service := auth.NewService(st, mockRBAC, zap.NewNop())

		_, err := service.Login(ctx, " 8888888888", domain.RoleEmployee)
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("empty phone", func(t *testing.T) {
		st := newState(t, store.NewMemoryStore(""))
		service := auth.NewService(st, mockRBAC, zap.NewNop())

		_, err := service.Login(ctx, "  ", domain.RoleAdmin)
		assert.ErrorIs(t, err, autherrors.ErrPhoneRequired)
	})

	t.Run("ambiguous phone fails", func(t *testing.T) {
		mem := store.NewMemoryStore("")
		snap := state.Seed("2026-10-15")
		snap.Users = append(snap.Users, domain.User{ID: "u4", Name: "Dup", Role: domain.RoleEmployee, Phone: "8888888888"})
		require.NoError(t, mem.Save(ctx, snap))
		st := newState(t, mem)
		service := auth.NewService(st, mockRBAC, zap.NewNop())

		_, err := service.Login(ctx, "8888888888", domain.RoleEmployee)
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestService_LogoutAndCurrent(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRBAC := rbacMock.NewMockService(ctrl)
	mockRBAC.EXPECT().Permissions("EMPLOYEE").Return([]string{"attendance:create"}, nil)

	ctx := context.Background()
	mem := store.NewMemoryStore("")
	st := newState(t, mem)
	service := auth.NewService(st, mockRBAC, zap.NewNop())
	before := st.Snapshot()

	st.SetSession("u2")
	resp, err := service.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u2", resp.User.ID)
	assert.Equal(t, []string{"attendance:create"}, resp.Permissions)

	require.NoError(t, service.Logout(ctx))
	_, err = service.Current(ctx)
	assert.ErrorIs(t, err, autherrors.ErrNoSession)

	// Logging out twice is fine and never touches the collections.
	require.NoError(t, service.Logout(ctx))
	assert.Equal(t, before, st.Snapshot())
}
