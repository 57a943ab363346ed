package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepeatDueAt60TPS(t *testing.T) {
	var fired []int
	for ticks := 0; ticks <= 48; ticks++ {
		if repeatDue(ticks, 60) {
			fired = append(fired, ticks)
		}
	}
	assert.Equal(t, []int{36, 42, 48}, fired)
}

func TestRepeatDueScalesWithTPS(t *testing.T) {
	// Half a second is 15 ticks at 30 TPS and 60 ticks at 120 TPS.
	assert.False(t, repeatDue(15, 30))
	assert.True(t, repeatDue(18, 30))
	assert.False(t, repeatDue(36, 120))
	assert.False(t, repeatDue(60, 120))
	assert.True(t, repeatDue(72, 120))
}

func TestRepeatDueNeverAtZeroTPS(t *testing.T) {
	assert.False(t, repeatDue(100, 0))
}

func TestConfigDefaults(t *testing.T) {
	var c Config
	c.defaults()
	assert.Equal(t, 60, c.TPS)
	assert.Equal(t, 1, c.Scale)
	assert.NotEmpty(t, c.Title)
}
