package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const hour = 60 * 60

func TestClassifyTimeOfDayBoundaries(t *testing.T) {
	const (
		sunrise = int64(1700000000)
		sunset  = int64(1700030000)
	)

	cases := []struct {
		name string
		now  int64
		want TimeOfDay
	}{
		{"before sunrise", sunrise - 1, Night},
		{"at sunrise", sunrise, Morning},
		{"end of morning", sunrise + 4*hour - 1, Morning},
		{"start of afternoon", sunrise + 4*hour, Afternoon},
		{"end of afternoon", sunset - 2*hour - 1, Afternoon},
		{"start of evening", sunset - 2*hour, Evening},
		{"last second of evening", sunset - 1, Evening},
		{"at sunset", sunset, Night},
		{"well after sunset", sunset + 6*hour, Night},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyTimeOfDay(sunrise, sunset, tc.now))
		})
	}
}

func TestClassifyTimeOfDayIsPure(t *testing.T) {
	for now := int64(1699990000); now < 1700040000; now += 977 {
		first := ClassifyTimeOfDay(1700000000, 1700030000, now)
		second := ClassifyTimeOfDay(1700000000, 1700030000, now)
		assert.Equal(t, first, second)
		assert.Contains(t, []TimeOfDay{Morning, Afternoon, Evening, Night}, first)
	}
}

func TestClassifyTimeOfDayShortDayNeverAfternoon(t *testing.T) {
	// five hours of daylight: sunset-2h lands before sunrise+4h
	sunrise := int64(1700000000)
	sunset := sunrise + 5*hour

	for now := sunrise - hour; now <= sunset+hour; now += 60 {
		assert.NotEqual(t, Afternoon, ClassifyTimeOfDay(sunrise, sunset, now), "now=%d", now)
	}

	// the morning test wins where it overlaps the evening window
	assert.Equal(t, Morning, ClassifyTimeOfDay(sunrise, sunset, sunset-2*hour))
	assert.Equal(t, Evening, ClassifyTimeOfDay(sunrise, sunset, sunrise+4*hour))
}

func TestTimeOfDayPresentation(t *testing.T) {
	assert.Equal(t, "/backgrounds/morning.jpeg", Morning.BackgroundPath())
	assert.Equal(t, "/backgrounds/night.jpeg", Night.BackgroundPath())
	assert.Equal(t, "#000", Afternoon.TextColor())
	assert.Equal(t, "#FFF", Evening.TextColor())
	assert.Equal(t, "#FFF", Morning.TextColor())
}
