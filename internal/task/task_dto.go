package task

import (
	"time"

	"go-fieldtrack/internal/domain"
	"go-fieldtrack/internal/geo"
)

type AssignTaskRequest struct {
	AssignedTo  string   `json:"assigned_to" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Address     string   `json:"address"`
	// DueDate defaults to today.
	DueDate string `json:"due_date"`
}

type CompleteTaskRequest struct {
	Note          string   `json:"note"`
	PhotoURL      string   `json:"photo_url" binding:"omitempty,url"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	LocationError string   `json:"location_error"`
}

// ProofInput is the evidence attached when a task is completed.
type ProofInput struct {
	Note     string
	PhotoURL string
	Location geo.Coordinate
}

// DefaultProofNote is recorded when the assignee leaves no note.
const DefaultProofNote = "Task completed"

type LocationResponse struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

type ProofResponse struct {
	Note      string  `json:"note"`
	PhotoURL  string  `json:"photo_url,omitempty"`
	At        string  `json:"at"`
	Timestamp int64   `json:"timestamp"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

type TaskResponse struct {
	ID           string           `json:"id"`
	AssignedTo   string           `json:"assigned_to"`
	AssigneeName string           `json:"assignee_name,omitempty"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Location     LocationResponse `json:"location"`
	Status       string           `json:"status"`
	DueDate      string           `json:"due_date"`
	Proof        *ProofResponse   `json:"proof,omitempty"`
}

type MyTasksResponse struct {
	Pending   []TaskResponse `json:"pending"`
	Completed []TaskResponse `json:"completed"`
}

func mapToResponse(t domain.Task, assigneeName string, loc *time.Location) TaskResponse {
	resp := TaskResponse{
		ID:           t.ID,
		AssignedTo:   t.AssignedTo,
		AssigneeName: assigneeName,
		Title:        t.Title,
		Description:  t.Description,
		Location: LocationResponse{
			Lat:     t.Location.Lat,
			Lng:     t.Location.Lng,
			Address: t.Location.Address,
		},
		Status:  string(t.Status),
		DueDate: t.DueDate,
	}
	if t.Proof != nil {
		resp.Proof = &ProofResponse{
			Note:      t.Proof.Note,
			PhotoURL:  t.Proof.PhotoURL,
			At:        domain.FromMillis(t.Proof.Timestamp).In(loc).Format(time.RFC3339),
			Timestamp: t.Proof.Timestamp,
			Lat:       t.Proof.Location.Lat,
			Lng:       t.Proof.Location.Lng,
		}
	}
	return resp
}
