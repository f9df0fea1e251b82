// Package geo validates coordinates reported by clients and describes how
// clients should acquire them.
package geo

import (
	"math"
	"net/http"
	"strings"
	"time"

	"go-fieldtrack/internal/domain"
	"go-fieldtrack/internal/shared/apperror"
)

var ErrLocationUnavailable = apperror.New(
	apperror.CodeLocationUnavailable,
	"Location is unavailable. Enable location access and try again",
	http.StatusUnprocessableEntity,
)

var ErrInvalidCoordinate = apperror.Validation("Coordinates are out of range")

// DefaultCenter is where the map opens when no employee has reported a
// location yet.
var DefaultCenter = Coordinate{Lat: 12.9716, Lng: 77.5946}

const DefaultZoom = 13

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) ||
		c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

func (c Coordinate) Point() domain.Point {
	return domain.Point{Lat: c.Lat, Lng: c.Lng}
}

// FromReport turns what a client reported into a coordinate. A reported
// acquisition error or a missing component means no fix was obtained.
func FromReport(lat, lng *float64, reportedErr string) (Coordinate, error) {
	if strings.TrimSpace(reportedErr) != "" || lat == nil || lng == nil {
		return Coordinate{}, ErrLocationUnavailable
	}
	c := Coordinate{Lat: *lat, Lng: *lng}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// AcquireOptions are the positioning parameters clients use for a fix.
type AcquireOptions struct {
	EnableHighAccuracy bool  `json:"enableHighAccuracy"`
	TimeoutMs          int64 `json:"timeout"`
	MaximumAgeMs       int64 `json:"maximumAge"`
}

const AcquireTimeout = 10 * time.Second

func DefaultAcquireOptions() AcquireOptions {
	return AcquireOptions{
		EnableHighAccuracy: true,
		TimeoutMs:          AcquireTimeout.Milliseconds(),
		MaximumAgeMs:       0,
	}
}
