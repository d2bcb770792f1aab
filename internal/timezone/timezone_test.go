package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("America/Sao_Paulo"))
	assert.True(t, IsValid("UTC"))

	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus"))
}

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("not-a-zone").String())
	assert.Equal(t, "UTC", Location("UTC").String())
}

func TestNowIn(t *testing.T) {
	assert.Equal(t, DefaultTimezone, NowIn("bogus").Location().String())
	assert.Equal(t, "UTC", NowIn("UTC").Location().String())
}

func TestMidnight(t *testing.T) {
	loc := Location(DefaultTimezone)
	at := time.Date(2025, 3, 10, 22, 45, 12, 999, loc)

	got := Midnight(at)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}
