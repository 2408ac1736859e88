package weather

const (
	morningSpan = 4 * 60 * 60 // seconds after sunrise
	eveningSpan = 2 * 60 * 60 // seconds before sunset
)

// TimeOfDay is the coarse bucket used to pick the card background and text contrast.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// ClassifyTimeOfDay buckets now (unix seconds) against the day's sunrise and sunset.
//
// The intervals are half-open and tested in order morning, afternoon, evening;
// anything left over is night. On very short days the afternoon interval is
// empty or inverted and those instants fall through to evening or night.
func ClassifyTimeOfDay(sunrise, sunset, now int64) TimeOfDay {
	switch {
	case now >= sunrise && now < sunrise+morningSpan:
		return Morning
	case now >= sunrise+morningSpan && now < sunset-eveningSpan:
		return Afternoon
	case now >= sunset-eveningSpan && now < sunset:
		return Evening
	default:
		return Night
	}
}

// BackgroundPath returns the static asset path for the bucket.
func (t TimeOfDay) BackgroundPath() string {
	return "/backgrounds/" + string(t) + ".jpeg"
}

// TextColor returns the foreground color that contrasts with the bucket's background.
func (t TimeOfDay) TextColor() string {
	if t == Afternoon {
		return "#000"
	}
	return "#FFF"
}
