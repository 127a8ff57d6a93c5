package dto

// ClockRequest payload for clock-in and clock-out.
type ClockRequest struct {
	Naam string `json:"naam"`
}

// ClockOutResponse payload. Duur is the closed session's formatted
// duration, e.g. "1u 1m 1s".
type ClockOutResponse struct {
	Naam string `json:"naam"`
	Duur string `json:"duur"`
}
