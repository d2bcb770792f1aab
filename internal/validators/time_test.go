package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHourMinute(t *testing.T) {
	assert.True(t, IsHourMinute("09:00"))
	assert.True(t, IsHourMinute("23:59"))
	assert.True(t, IsHourMinute("00:00"))

	assert.False(t, IsHourMinute("24:00"))
	assert.False(t, IsHourMinute("09:60"))
	assert.False(t, IsHourMinute("9:00"))
	assert.False(t, IsHourMinute("09h00"))
	assert.False(t, IsHourMinute(""))
}

func TestIsISODate(t *testing.T) {
	assert.True(t, IsISODate("2025-03-10"))
	assert.True(t, IsISODate("2024-02-29"))

	assert.False(t, IsISODate("2025-13-10"))
	assert.False(t, IsISODate("2025-02-30"))
	assert.False(t, IsISODate("10/03/2025"))
	assert.False(t, IsISODate("2025-3-10"))
	assert.False(t, IsISODate(""))
}
