package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) *ClockLedger {
	t.Helper()
	return NewClockLedger(filepath.Join(t.TempDir(), "clock_data.json"))
}

func TestClockInOut(t *testing.T) {
	ledger := newTestLedger(t)
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, ledger.ClockIn("Piet", start))

	elapsed, err := ledger.ClockOut("Piet", start.Add(3661*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 3661*time.Second, elapsed)
	assert.Equal(t, "1u 1m 1s", FormatClockDuration(elapsed))

	entry, ok, err := ledger.Entry("Piet")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(3661), entry.TotalTime)
	assert.Nil(t, entry.ClockedIn)
}

func TestDoubleClockInRejected(t *testing.T) {
	ledger := newTestLedger(t)
	now := time.Now()

	require.NoError(t, ledger.ClockIn("Piet", now))
	assert.ErrorIs(t, ledger.ClockIn("Piet", now.Add(time.Minute)), ErrAlreadyClockedIn)
}

func TestClockOutWithoutSession(t *testing.T) {
	ledger := newTestLedger(t)

	_, err := ledger.ClockOut("Spook", time.Now())
	assert.ErrorIs(t, err, ErrNotClockedIn)
}

func TestTotalsAccumulateAcrossSessions(t *testing.T) {
	ledger := newTestLedger(t)
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, ledger.ClockIn("Piet", start))
	_, err := ledger.ClockOut("Piet", start.Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, ledger.ClockIn("Piet", start.Add(2*time.Hour)))
	_, err = ledger.ClockOut("Piet", start.Add(2*time.Hour+30*time.Minute))
	require.NoError(t, err)

	entry, ok, err := ledger.Entry("Piet")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(5400), entry.TotalTime)
}

func TestLeaderboardSortsDescending(t *testing.T) {
	ledger := newTestLedger(t)
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for name, minutes := range map[string]int{"Piet": 30, "Jan": 90, "Kees": 60} {
		require.NoError(t, ledger.ClockIn(name, start))
		_, err := ledger.ClockOut(name, start.Add(time.Duration(minutes)*time.Minute))
		require.NoError(t, err)
	}

	ranks, err := ledger.Leaderboard()
	require.NoError(t, err)
	require.Len(t, ranks, 3)
	assert.Equal(t, "Jan", ranks[0].Name)
	assert.Equal(t, "Kees", ranks[1].Name)
	assert.Equal(t, "Piet", ranks[2].Name)
}

func TestLedgerFileLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clock_data.json")
	ledger := NewClockLedger(path)
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, ledger.ClockIn("Piet", start))

	payload, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(payload, &raw))
	require.Contains(t, raw, "Piet")
	assert.Contains(t, raw["Piet"], "totalTime")
	assert.Contains(t, raw["Piet"], "clockedIn")
	assert.EqualValues(t, start.UnixMilli(), raw["Piet"]["clockedIn"])
}
