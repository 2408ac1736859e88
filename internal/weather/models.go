package weather

import (
	"errors"
	"time"
)

var (
	// ErrCityNotFound is returned when the upstream does not know the requested city.
	ErrCityNotFound = errors.New("city not found")
	// ErrUnauthorized is returned when the upstream rejects the API key.
	ErrUnauthorized = errors.New("weather api key rejected")
	// ErrQuotaExceeded is returned when the upstream reports rate limiting.
	ErrQuotaExceeded = errors.New("weather api quota exceeded")
	// ErrIncompletePayload is returned when a response lacks a field the card needs.
	ErrIncompletePayload = errors.New("incomplete weather payload")
)

// Snapshot is the result of one successful current-conditions fetch.
// It is never mutated after construction; a newer fetch replaces it wholesale.
type Snapshot struct {
	City        string    `json:"city"`
	Temperature float64   `json:"temperatureC"`
	TempMin     float64   `json:"tempMinC"`
	TempMax     float64   `json:"tempMaxC"`
	Pressure    int       `json:"pressureHpa"`
	WindSpeed   float64   `json:"windSpeedMs"`
	Icon        string    `json:"icon"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Sunrise     int64     `json:"sunrise"` // unix seconds
	Sunset      int64     `json:"sunset"`  // unix seconds
	FetchedAt   time.Time `json:"fetchedAt"`
}
