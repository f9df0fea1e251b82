package state

import (
	"go-fieldtrack/internal/domain"
)

// SeedUsers is the roster a fresh installation starts with.
func SeedUsers() []domain.User {
	return []domain.User{
		{ID: "u1", Name: "Naitik (Admin)", Role: domain.RoleAdmin, Phone: "9999999999"},
		{ID: "u2", Name: "Rohan (Field)", Role: domain.RoleEmployee, Phone: "8888888888", Details: "Sales Executive"},
		{ID: "u3", Name: "Amit (Field)", Role: domain.RoleEmployee, Phone: "7777777777", Details: "Service Engineer"},
	}
}

// SeedTasks returns the two demo tasks, due on today.
func SeedTasks(today string) []domain.Task {
	return []domain.Task{
		{
			ID:          "t1",
			AssignedTo:  "u2",
			Title:       "Visit Tech Park Client",
			Description: "Verify server installation requirements.",
			Location:    domain.TaskLocation{Lat: 12.9716, Lng: 77.5946, Address: "MG Road, Bangalore"},
			Status:      domain.TaskPending,
			DueDate:     today,
		},
		{
			ID:          "t2",
			AssignedTo:  "u3",
			Title:       "Delivery @ Koramangala",
			Description: "Deliver spare parts package.",
			Location:    domain.TaskLocation{Lat: 12.9352, Lng: 77.6245, Address: "Koramangala 4th Block"},
			Status:      domain.TaskPending,
			DueDate:     today,
		},
	}
}

// Seed is the state used when nothing usable has been stored.
func Seed(today string) domain.Snapshot {
	return domain.Snapshot{
		Users:      SeedUsers(),
		Tasks:      SeedTasks(today),
		Attendance: []domain.AttendanceRecord{},
	}
}
