package domain

// ClockEntry is one staff member's ledger entry. Entries are keyed by
// display name, not by a stable account ID: a display-name change
// fragments history into two entries. That keying is preserved as-is.
type ClockEntry struct {
	// TotalTime is accumulated seconds, updated only at clock-out.
	TotalTime int64 `json:"totalTime"`
	// ClockedIn is the open session's start in epoch milliseconds,
	// nil when no session is open.
	ClockedIn *int64 `json:"clockedIn"`
}

// ClockRank is one leaderboard row.
type ClockRank struct {
	Name      string `json:"name"`
	TotalTime int64  `json:"totalTime"`
}
