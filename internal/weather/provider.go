package weather

import (
	"context"
)

// Provider abstracts the current-conditions source (OpenWeatherMap in production).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, city string) (Snapshot, error)
}

// Locator resolves the caller's city, typically from its public IP.
// An empty city with a nil error means the lookup worked but had no answer.
type Locator interface {
	Locate(ctx context.Context) (string, error)
}
