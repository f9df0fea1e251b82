package location

import (
	"time"

	"go-fieldtrack/internal/domain"
)

type UpdateLocationRequest struct {
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	LocationError string   `json:"location_error"`
}

type LocationResponse struct {
	UserID    string  `json:"user_id"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	At        string  `json:"at"`
	Timestamp int64   `json:"timestamp"`
}

func mapToResponse(userID string, p domain.StampedPoint, loc *time.Location) LocationResponse {
	return LocationResponse{
		UserID:    userID,
		Lat:       p.Lat,
		Lng:       p.Lng,
		At:        domain.FromMillis(p.Timestamp).In(loc).Format(time.RFC3339),
		Timestamp: p.Timestamp,
	}
}
