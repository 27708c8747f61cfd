package storage

import "time"

const (
	ProjectTypeResidence  = "residence"
	ProjectTypeParticular = "particular"
	ProjectTypeEnterprise = "enterprise"
)

// Project is a maintained site ("chantier") under contract. AnnualVisits and
// AnnualTotalHours are contract targets; actual progress is always derived
// from the associated work logs, never stored.
type Project struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Address          string     `json:"address"`
	ClientName       string     `json:"client_name"`
	ContactPhone     string     `json:"contact_phone"`
	ContactEmail     string     `json:"contact_email"`
	TeamID           *string    `json:"team_id"`
	ProjectType      string     `json:"project_type"`
	AnnualVisits     int        `json:"annual_visits"`
	AnnualTotalHours float64    `json:"annual_total_hours"`
	VisitDuration    float64    `json:"visit_duration"`
	Irrigation       bool       `json:"irrigation"`
	Mowing           bool       `json:"mowing"`
	ContractDetails  string     `json:"contract_details"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	IsArchived       bool       `json:"is_archived"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	TeamID          string `json:"team_id"`
	ProjectType     string `json:"project_type"`
	IncludeArchived bool   `json:"include_archived"`
}
