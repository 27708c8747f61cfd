package storage

import "time"

// TimeTracking holds the recorded times for one visit. TotalHours is
// recomputed on save from the other fields, the stored value is never
// trusted from the client.
type TimeTracking struct {
	Departure   string  `json:"departure"`
	Arrival     string  `json:"arrival"`
	End         string  `json:"end"`
	BreakTime   string  `json:"break_time"`
	TravelHours float64 `json:"travel_hours"`
	WorkHours   float64 `json:"work_hours"`
	TotalHours  float64 `json:"total_hours"`
}

type Consumable struct {
	Supplier   string  `json:"supplier"`
	Product    string  `json:"product"`
	Unit       string  `json:"unit"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// WorkLog is one "fiche de suivi": a recorded visit on a site. A nil
// ProjectID marks a blank worksheet ("fiche vierge") for a one-off client,
// in which case ClientName/ClientAddress carry the client details.
type WorkLog struct {
	ID                string        `json:"id"`
	Date              time.Time     `json:"date"`
	ProjectID         *string       `json:"project_id"`
	TeamID            *string       `json:"team_id"`
	Personnel         []string      `json:"personnel"`
	TimeTracking      *TimeTracking `json:"time_tracking"`
	HourlyRate        *float64      `json:"hourly_rate"`
	Invoiced          bool          `json:"invoiced"`
	QuoteSigned       bool          `json:"is_quote_signed"`
	SignedQuoteAmount float64       `json:"signed_quote_amount"`
	Consumables       []Consumable  `json:"consumables"`
	Tasks             string        `json:"tasks"`
	WasteManagement   string        `json:"waste_management"`
	Notes             string        `json:"notes"`
	ClientName        string        `json:"client_name"`
	ClientAddress     string        `json:"client_address"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// IsBlankSheet reports whether the log is not tied to a maintained project.
func (w *WorkLog) IsBlankSheet() bool {
	return w.ProjectID == nil || *w.ProjectID == ""
}

// WorkLogFilter narrows storage reads. Zero values mean "no restriction".
type WorkLogFilter struct {
	Year      int        `json:"year"`
	ProjectID string     `json:"project_id"`
	TeamID    string     `json:"team_id"`
	From      *time.Time `json:"from"`
	To        *time.Time `json:"to"`
}
