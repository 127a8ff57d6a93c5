package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/alkmaar-rp/supportbot/internal/domain"
)

// Clock ledger errors.
var (
	ErrAlreadyClockedIn = errors.New("already clocked in")
	ErrNotClockedIn     = errors.New("not clocked in")
)

// ClockLedger is the flat persisted staff time-clock: one JSON object
// mapping display name to accumulated time and open-session start. The
// whole file is rewritten on every mutation; a process mutex makes each
// read-modify-write atomic within this process.
type ClockLedger struct {
	mu   sync.Mutex
	path string
}

// NewClockLedger uses the given file path; the file is created on first
// clock-in.
func NewClockLedger(path string) *ClockLedger {
	return &ClockLedger{path: path}
}

// ClockIn opens a session for a name at the given instant. An entry is
// created on first use and never deleted.
func (l *ClockLedger) ClockIn(name string, now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := l.load()
	if err != nil {
		return err
	}
	entry := data[name]
	if entry.ClockedIn != nil {
		return ErrAlreadyClockedIn
	}
	start := now.UnixMilli()
	entry.ClockedIn = &start
	data[name] = entry
	return l.save(data)
}

// ClockOut closes the open session, adds the elapsed whole seconds to the
// accumulated total and returns the session duration.
func (l *ClockLedger) ClockOut(name string, now time.Time) (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := l.load()
	if err != nil {
		return 0, err
	}
	entry, ok := data[name]
	if !ok || entry.ClockedIn == nil {
		return 0, ErrNotClockedIn
	}
	seconds := (now.UnixMilli() - *entry.ClockedIn) / 1000
	if seconds < 0 {
		seconds = 0
	}
	entry.TotalTime += seconds
	entry.ClockedIn = nil
	data[name] = entry
	if err := l.save(data); err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}

// Leaderboard returns all entries sorted descending by accumulated time.
// Tie order between equal totals is unspecified.
func (l *ClockLedger) Leaderboard() ([]domain.ClockRank, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := l.load()
	if err != nil {
		return nil, err
	}
	ranks := make([]domain.ClockRank, 0, len(data))
	for name, entry := range data {
		ranks = append(ranks, domain.ClockRank{Name: name, TotalTime: entry.TotalTime})
	}
	sort.Slice(ranks, func(i, j int) bool {
		return ranks[i].TotalTime > ranks[j].TotalTime
	})
	return ranks, nil
}

// Entry returns a copy of one ledger entry.
func (l *ClockLedger) Entry(name string) (domain.ClockEntry, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := l.load()
	if err != nil {
		return domain.ClockEntry{}, false, err
	}
	entry, ok := data[name]
	return entry, ok, nil
}

func (l *ClockLedger) load() (map[string]domain.ClockEntry, error) {
	payload, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]domain.ClockEntry), nil
		}
		return nil, fmt.Errorf("read clock data: %w", err)
	}
	data := make(map[string]domain.ClockEntry)
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("parse clock data: %w", err)
	}
	return data, nil
}

func (l *ClockLedger) save(data map[string]domain.ClockEntry) error {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.path, payload, 0o644)
}

// FormatClockDuration renders a duration the way the clock surface shows
// it: whole hours, minutes and seconds, e.g. "1u 1m 1s".
func FormatClockDuration(d time.Duration) string {
	total := int64(d.Seconds())
	return fmt.Sprintf("%du %dm %ds", total/3600, (total%3600)/60, total%60)
}
