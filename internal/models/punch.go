package models

// PunchType is the tag the upstream service stores on each punch.
// It is informational only: pairing is chronological.
type PunchType string

const (
	PunchTypeEntry PunchType = "entrada"
	PunchTypeExit  PunchType = "saida"
)

// PunchEvent is a single clock-in/clock-out record as returned by the
// time-entry service
type PunchEvent struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`      // YYYY-MM-DD
	Time      string    `json:"time"`      // HH:MM:SS.mmm, local wall clock
	Type      PunchType `json:"type"`      // entrada | saida
	Timestamp string    `json:"timestamp"` // YYYY-MM-DD HH:MM:SS.mmm, never reparsed
}

// EntriesResponse is the envelope returned by GET /timecard/entries/
type EntriesResponse struct {
	Success bool         `json:"success"`
	Entries []PunchEvent `json:"entries,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// PunchLocation is the optional geolocation captured by the client
type PunchLocation struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   string   `json:"address,omitempty"`
}

// PunchSubmission is the body forwarded to POST /timecard/punch/
type PunchSubmission struct {
	IPAddress string        `json:"ip_address"`
	Location  PunchLocation `json:"location"`
	UserAgent string        `json:"user_agent"`
	Timestamp string        `json:"timestamp"` // YYYY-MM-DD HH:MM:SS.mmm local time
}

// PunchResponse is the upstream answer to a punch submission
type PunchResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Entry   *PunchEvent `json:"entry,omitempty"`
}
