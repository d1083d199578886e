package ephemeris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlatOffset(t *testing.T) {
	assert.Equal(t, 0.0, flatOffset(nil, nil))

	tz := -8.0
	assert.Equal(t, -8.0, flatOffset(&tz, nil))

	tz = 10.0
	dst := true
	assert.Equal(t, 11.0, flatOffset(&tz, &dst))

	dst = false
	assert.Equal(t, 10.0, flatOffset(&tz, &dst))
}

func TestEventDayJD(t *testing.T) {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	utDay := timeToJD(date)

	// No offset, or a modest offset either way, keeps the UT day aligned
	// with the requested date.
	assert.InDelta(t, utDay, eventDayJD(date, 0), 1e-9)
	assert.InDelta(t, utDay, eventDayJD(date, -8), 1e-9)
	assert.InDelta(t, utDay, eventDayJD(date, 10), 1e-9)

	// Far-eastern offsets put the local noon before 0h UT: the previous UT
	// day is evaluated. Far-western offsets select the next one.
	assert.InDelta(t, utDay-1, eventDayJD(date, 13), 1e-9)
	assert.InDelta(t, utDay+1, eventDayJD(date, -13), 1e-9)
}

func TestLocalDaySec(t *testing.T) {
	assert.Equal(t, 0.0, localDaySec(0, 0))
	assert.Equal(t, 6*3600.0, localDaySec(3*3600, 3))

	// 22:00 UT at +3 wraps forward to 01:00 local.
	assert.Equal(t, 3600.0, localDaySec(22*3600, 3))

	// 01:00 UT at -5 wraps back to 20:00 local.
	assert.Equal(t, 20*3600.0, localDaySec(3600, -5))
}
