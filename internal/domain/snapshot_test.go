package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Users: []User{
			{ID: "u1", Name: "Naitik (Admin)", Role: RoleAdmin, Phone: "9999999999"},
			{ID: "u2", Name: "Rohan (Field)", Role: RoleEmployee, Phone: "8888888888",
				LastLocation: &StampedPoint{Lat: 12.9, Lng: 77.5, Timestamp: 1760000000000}},
		},
		Tasks: []Task{
			{ID: "t1", AssignedTo: "u2", Title: "Visit", Status: TaskCompleted,
				Proof: &Proof{Note: "done", Timestamp: 1760000001000, Location: Point{Lat: 12.97, Lng: 77.59}}},
		},
		Attendance: []AttendanceRecord{
			{ID: "a1", UserID: "u2", Date: "2026-10-15", Status: AttendancePresent,
				PunchIn: &PunchEvent{Timestamp: 1760000000000, Location: Point{Lat: 12.9, Lng: 77.5}}},
		},
	}
}

func TestSnapshot_CloneIsDeep(t *testing.T) {
	orig := sampleSnapshot()
	cp := orig.Clone()
	require.Equal(t, orig, cp)

	cp.Users[1].LastLocation.Lat = 0
	cp.Tasks[0].Proof.Note = "changed"
	cp.Attendance[0].PunchIn.Timestamp = 0
	cp.Users[0].Name = "someone else"

	assert.Equal(t, 12.9, orig.Users[1].LastLocation.Lat)
	assert.Equal(t, "done", orig.Tasks[0].Proof.Note)
	assert.Equal(t, int64(1760000000000), orig.Attendance[0].PunchIn.Timestamp)
	assert.Equal(t, "Naitik (Admin)", orig.Users[0].Name)
}

func TestSnapshot_JSONLayout(t *testing.T) {
	raw, err := json.Marshal(sampleSnapshot())
	require.NoError(t, err)

	var generic map[string][]map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Contains(t, generic, "users")
	assert.Contains(t, generic, "tasks")
	assert.Contains(t, generic, "attendance")
	assert.Contains(t, generic["attendance"][0], "userId")
	assert.Contains(t, generic["attendance"][0], "punchIn")
	assert.NotContains(t, generic["attendance"][0], "punchOut")
	assert.Contains(t, generic["tasks"][0], "assignedTo")
	assert.Contains(t, generic["users"][1], "lastLocation")
}

func TestSnapshot_Lookups(t *testing.T) {
	s := sampleSnapshot()

	u, ok := s.FindUser("u2")
	assert.True(t, ok)
	assert.Equal(t, "Rohan (Field)", u.Name)

	_, ok = s.FindUser("u9")
	assert.False(t, ok)

	assert.Len(t, s.Employees(), 1)

	rec, ok := s.AttendanceFor("u2", "2026-10-15")
	assert.True(t, ok)
	assert.True(t, rec.OnDuty())

	_, ok = s.AttendanceFor("u2", "2026-10-16")
	assert.False(t, ok)
}

func TestMillis(t *testing.T) {
	ts := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	assert.True(t, ts.Equal(FromMillis(Millis(ts))))
}
