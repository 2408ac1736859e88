package weather

import (
	"time"

	"github.com/i474232898/weather-card/internal/common"
)

// IconURL builds the OpenWeatherMap icon URL for a condition code.
func IconURL(code string) string {
	return "http://openweathermap.org/img/wn/" + code + "@2x.png"
}

// View is everything the card needs to render. When Loading is set only
// Draft is meaningful.
type View struct {
	Loading bool   `json:"loading"`
	Draft   string `json:"draft"`

	City        string    `json:"city,omitempty"`
	Date        string    `json:"date,omitempty"`
	Temperature int       `json:"temperatureC"`
	TempMax     int       `json:"tempMaxC"`
	TempMin     int       `json:"tempMinC"`
	WindSpeed   float64   `json:"windSpeedMs"`
	Pressure    int       `json:"pressureHpa"`
	IconURL     string    `json:"iconUrl,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	Description string    `json:"description,omitempty"`
	TimeOfDay   TimeOfDay `json:"timeOfDay,omitempty"`
	Background  string    `json:"background,omitempty"`
	TextColor   string    `json:"textColor,omitempty"`
	FetchedAt   time.Time `json:"fetchedAt,omitempty"`
}

// NewView builds the render model. A nil snapshot yields the loading state.
// The date line uses now, not the snapshot time, matching what the card shows.
func NewView(snap *Snapshot, tod TimeOfDay, draft string, now time.Time) View {
	if snap == nil {
		return View{Loading: true, Draft: draft}
	}
	return View{
		Draft:       draft,
		City:        snap.City,
		Date:        now.Format("Monday, January 2"),
		Temperature: common.RoundHalfUp(snap.Temperature),
		TempMax:     common.RoundHalfUp(snap.TempMax),
		TempMin:     common.RoundHalfUp(snap.TempMin),
		WindSpeed:   snap.WindSpeed,
		Pressure:    snap.Pressure,
		IconURL:     IconURL(snap.Icon),
		Summary:     snap.Summary,
		Description: snap.Description,
		TimeOfDay:   tod,
		Background:  tod.BackgroundPath(),
		TextColor:   tod.TextColor(),
		FetchedAt:   snap.FetchedAt,
	}
}
