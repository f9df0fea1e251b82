package task

import (
	"context"
	"testing"
	"time"

	autherrors "go-fieldtrack/internal/auth/errors"
	"go-fieldtrack/internal/clock"
	"go-fieldtrack/internal/domain"
	"go-fieldtrack/internal/events"
	eventsmock "go-fieldtrack/internal/events/mock"
	"go-fieldtrack/internal/geo"
	"go-fieldtrack/internal/state"
	"go-fieldtrack/internal/store"
	taskerrors "go-fieldtrack/internal/task/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var now = time.Date(2026, 10, 15, 11, 45, 0, 0, time.UTC)

func newTestService(t *testing.T, publisher events.Publisher) (*state.State, Service) {
	t.Helper()
	st, err := state.Load(context.Background(), store.NewMemoryStore(""), clock.Fixed(now), state.WithLogger(zap.NewNop()))
	require.NoError(t, err)
	return st, NewService(st, publisher, zap.NewNop())
}

func assertProofIffCompleted(t *testing.T, snap domain.Snapshot) {
	t.Helper()
	for _, task := range snap.Tasks {
		assert.Equal(t, task.Status == domain.TaskCompleted, task.Proof != nil, "task %s", task.ID)
	}
}

func TestService_Assign(t *testing.T) {
	ctx := context.Background()
	lat, lng := 12.95, 77.6

	t.Run("admin assigns to an employee", func(t *testing.T) {
		st, svc := newTestService(t, nil)
		st.SetSession("u1")

		resp, err := svc.Assign(ctx, AssignTaskRequest{
			AssignedTo:  "u3",
			Title:       "  Site survey ",
			Description: "Check the rack space.",
			Lat:         &lat,
			Lng:         &lng,
			Address:     "HSR Layout",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "Site survey", resp.Title)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "2026-10-15", resp.DueDate)
		assert.Equal(t, "Amit (Field)", resp.AssigneeName)
		assert.Equal(t, LocationResponse{Lat: lat, Lng: lng, Address: "HSR Layout"}, resp.Location)
		assert.Nil(t, resp.Proof)

		snap := st.Snapshot()
		require.Len(t, snap.Tasks, 3)
		assert.Equal(t, resp.ID, snap.Tasks[2].ID)
	})

	t.Run("defaults", func(t *testing.T) {
		st, svc := newTestService(t, nil)
		st.SetSession("u1")

		resp, err := svc.Assign(ctx, AssignTaskRequest{AssignedTo: "u2", Title: "Call back", DueDate: "2026-10-20"})
		require.NoError(t, err)
		assert.Equal(t, "2026-10-20", resp.DueDate)
		assert.Equal(t, geo.DefaultCenter.Lat, resp.Location.Lat)
		assert.Equal(t, "", resp.Location.Address)
		assert.Equal(t, "", resp.Description)
	})

	t.Run("ids are unique", func(t *testing.T) {
		st, svc := newTestService(t, nil)
		st.SetSession("u1")

		seen := map[string]bool{"t1": true, "t2": true}
		for i := 0; i < 20; i++ {
			resp, err := svc.Assign(ctx, AssignTaskRequest{AssignedTo: "u2", Title: "Visit"})
			require.NoError(t, err)
			assert.False(t, seen[resp.ID], "duplicate id %s", resp.ID)
			seen[resp.ID] = true
		}
	})

	tests := []struct {
		name    string
		session string
		req     AssignTaskRequest
		wantErr error
	}{
		{"no session", "", AssignTaskRequest{AssignedTo: "u2", Title: "x"}, autherrors.ErrNoSession},
		{"employee may not assign", "u2", AssignTaskRequest{AssignedTo: "u3", Title: "x"}, autherrors.ErrForbidden},
		{"empty title", "u1", AssignTaskRequest{AssignedTo: "u2", Title: "   "}, taskerrors.ErrTitleRequired},
		{"empty assignee", "u1", AssignTaskRequest{Title: "x"}, taskerrors.ErrAssigneeRequired},
		{"unknown assignee", "u1", AssignTaskRequest{AssignedTo: "u9", Title: "x"}, taskerrors.ErrAssigneeNotFound},
		{"admin is not an assignee", "u1", AssignTaskRequest{AssignedTo: "u1", Title: "x"}, taskerrors.ErrAssigneeNotFound},
		{"bad due date", "u1", AssignTaskRequest{AssignedTo: "u2", Title: "x", DueDate: "tomorrow"}, taskerrors.ErrInvalidDueDate},
		{"half a location", "u1", AssignTaskRequest{AssignedTo: "u2", Title: "x", Lat: &lat}, geo.ErrLocationUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, svc := newTestService(t, nil)
			if tt.session != "" {
				st.SetSession(tt.session)
			}
			before := st.Snapshot()

			_, err := svc.Assign(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, st.Snapshot())
		})
	}
}

func TestService_Complete(t *testing.T) {
	ctx := context.Background()
	site := geo.Coordinate{Lat: 12.9716, Lng: 77.5946}

	t.Run("assignee completes with proof", func(t *testing.T) {
		st, svc := newTestService(t, nil)
		st.SetSession("u2")

		resp, err := svc.Complete(ctx, "t1", ProofInput{PhotoURL: "https://example.test/p.jpg", Location: site})
		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", resp.Status)
		require.NotNil(t, resp.Proof)
		assert.Equal(t, DefaultProofNote, resp.Proof.Note)
		assert.Equal(t, now.UnixMilli(), resp.Proof.Timestamp)
		assert.Equal(t, site.Lat, resp.Proof.Lat)

		assertProofIffCompleted(t, st.Snapshot())
	})

	t.Run("admin may complete any task", func(t *testing.T) {
		st, svc := newTestService(t, nil)
		st.SetSession("u1")

		resp, err := svc.Complete(ctx, "t2", ProofInput{Note: "Verified by phone", Location: site})
		require.NoError(t, err)
		assert.Equal(t, "Verified by phone", resp.Proof.Note)
	})

	t.Run("other employee may not", func(t *testing.T) {
		st, svc := newTestService(t, nil)
		st.SetSession("u3")

		_, err := svc.Complete(ctx, "t1", ProofInput{Location: site})
		assert.ErrorIs(t, err, autherrors.ErrForbidden)
		assertProofIffCompleted(t, st.Snapshot())
	})

	t.Run("twice", func(t *testing.T) {
		st, svc := newTestService(t, nil)
		st.SetSession("u2")

		first, err := svc.Complete(ctx, "t1", ProofInput{Note: "first", Location: site})
		require.NoError(t, err)
		_, err = svc.Complete(ctx, "t1", ProofInput{Note: "second", Location: site})
		assert.ErrorIs(t, err, taskerrors.ErrTaskAlreadyCompleted)
		assert.Equal(t, first.Proof.Note, st.Snapshot().Tasks[0].Proof.Note)
	})

	t.Run("unknown task", func(t *testing.T) {
		st, svc := newTestService(t, nil)
		st.SetSession("u2")
		before := st.Snapshot()

		_, err := svc.Complete(ctx, "nope", ProofInput{Location: site})
		assert.ErrorIs(t, err, taskerrors.ErrTaskNotFound)
		assert.Equal(t, before, st.Snapshot())
	})

	t.Run("no session", func(t *testing.T) {
		_, svc := newTestService(t, nil)
		_, err := svc.Complete(ctx, "t1", ProofInput{Location: site})
		assert.ErrorIs(t, err, autherrors.ErrNoSession)
	})
}

func TestService_ListAndMine(t *testing.T) {
	ctx := context.Background()
	st, svc := newTestService(t, nil)

	st.SetSession("u1")
	_, err := svc.Assign(ctx, AssignTaskRequest{AssignedTo: "u2", Title: "Second visit"})
	require.NoError(t, err)
	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Rohan (Field)", all[0].AssigneeName)

	st.SetSession("u2")
	_, err = svc.Complete(ctx, "t1", ProofInput{Location: geo.DefaultCenter})
	require.NoError(t, err)

	own, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	mine, err := svc.Mine(ctx)
	require.NoError(t, err)
	require.Len(t, mine.Pending, 1)
	require.Len(t, mine.Completed, 1)
	assert.Equal(t, "Second visit", mine.Pending[0].Title)
	assert.Equal(t, "t1", mine.Completed[0].ID)

	st.SetSession("u3")
	mine, err = svc.Mine(ctx)
	require.NoError(t, err)
	assert.Len(t, mine.Pending, 1)
	assert.Empty(t, mine.Completed)
}

func TestService_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	publisher := eventsmock.NewMockPublisher(ctrl)

	var types []string
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg events.Message) error {
		assert.Equal(t, events.TaskTopic, msg.Topic)
		types = append(types, msg.EventType)
		return nil
	}).Times(2)

	st, svc := newTestService(t, publisher)
	st.SetSession("u1")
	resp, err := svc.Assign(ctx, AssignTaskRequest{AssignedTo: "u2", Title: "Visit"})
	require.NoError(t, err)
	st.SetSession("u2")
	_, err = svc.Complete(ctx, resp.ID, ProofInput{Location: geo.DefaultCenter})
	require.NoError(t, err)

	assert.Equal(t, []string{events.TypeTaskAssigned, events.TypeTaskCompleted}, types)
}
