package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	for level := 1; level <= 4; level++ {
		p, err := ParsePriority(level)
		require.NoError(t, err)
		assert.NotEmpty(t, p.Glyph())
	}

	for _, level := range []int{0, 5, -1} {
		_, err := ParsePriority(level)
		assert.ErrorIs(t, err, ErrUnknownPriority)
	}
}

func TestApplyPriority(t *testing.T) {
	tests := []struct {
		name    string
		channel string
		level   Priority
		want    string
	}{
		{"plain name", "unban-piet", PriorityHigh, "🔴 unban-piet"},
		{"replaces existing glyph", "🔴 unban-piet", PriorityLow, "🟢 unban-piet"},
		{"same glyph is stable", "🟠 unban-piet", PriorityMedium, "🟠 unban-piet"},
		{"waiting tier", "donatie-jan", PriorityWaiting, "⏳ donatie-jan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyPriority(tt.level, tt.channel))
		})
	}
}

func TestStripPriority(t *testing.T) {
	assert.Equal(t, "unban-piet", StripPriority("🔴 unban-piet"))
	assert.Equal(t, "unban-piet", StripPriority("unban-piet"))
}
