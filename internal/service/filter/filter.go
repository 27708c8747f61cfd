// Package filter applies the advanced work-log filters as a conjunction of
// independent predicates. Unset criteria never restrict the result, so the
// zero Spec is a pass-through and criteria order is irrelevant.
package filter

import (
	"strings"
	"time"

	"paysage-backend/internal/service/stats"
	"paysage-backend/internal/storage"
)

const (
	StatusAll = "all"

	InvoiceInvoiced = "invoiced"
	InvoicePending  = "pending"

	QuoteSigned   = "signed"
	QuoteUnsigned = "unsigned"

	NotesYes = "yes"
	NotesNo  = "no"
)

// Spec describes one filter pass. String statuses accept "" as an alias for
// "all"; nil numeric bounds are open.
type Spec struct {
	Search        string     `json:"search"`
	From          *time.Time `json:"from"`
	To            *time.Time `json:"to"`
	InvoiceStatus string     `json:"invoice_status"`
	QuoteStatus   string     `json:"quote_status"`
	MinHours      *float64   `json:"min_hours"`
	MaxHours      *float64   `json:"max_hours"`
	MinAmount     *float64   `json:"min_amount"`
	MaxAmount     *float64   `json:"max_amount"`
	HasNotes      string     `json:"has_notes"`
	TeamIDs       []string   `json:"team_ids"`
	ProjectIDs    []string   `json:"project_ids"`
}

// Apply returns the logs matching every set criterion.
func Apply(logs []storage.WorkLog, spec Spec) []storage.WorkLog {
	var out []storage.WorkLog
	for _, l := range logs {
		if Matches(l, spec) {
			out = append(out, l)
		}
	}
	return out
}

// Matches reports whether one log satisfies the whole spec.
func Matches(l storage.WorkLog, spec Spec) bool {
	if !matchesSearch(l, spec.Search) {
		return false
	}

	if spec.From != nil && l.Date.Before(stats.StartOfDay(*spec.From)) {
		return false
	}
	if spec.To != nil && l.Date.After(stats.EndOfDay(*spec.To)) {
		return false
	}

	switch spec.InvoiceStatus {
	case "", StatusAll:
	case InvoiceInvoiced:
		if !l.Invoiced {
			return false
		}
	case InvoicePending:
		if l.Invoiced {
			return false
		}
	}

	switch spec.QuoteStatus {
	case "", StatusAll:
	case QuoteSigned:
		if !l.QuoteSigned {
			return false
		}
	case QuoteUnsigned:
		if l.QuoteSigned {
			return false
		}
	}

	hours := stats.LogHours(l)
	if spec.MinHours != nil && hours < *spec.MinHours {
		return false
	}
	if spec.MaxHours != nil && hours > *spec.MaxHours {
		return false
	}

	amount := stats.Revenue(l)
	if spec.MinAmount != nil && amount < *spec.MinAmount {
		return false
	}
	if spec.MaxAmount != nil && amount > *spec.MaxAmount {
		return false
	}

	switch spec.HasNotes {
	case "", StatusAll:
	case NotesYes:
		if strings.TrimSpace(l.Notes) == "" {
			return false
		}
	case NotesNo:
		if strings.TrimSpace(l.Notes) != "" {
			return false
		}
	}

	if len(spec.TeamIDs) > 0 {
		if l.TeamID == nil || !contains(spec.TeamIDs, *l.TeamID) {
			return false
		}
	}

	if len(spec.ProjectIDs) > 0 {
		if l.ProjectID == nil || !contains(spec.ProjectIDs, *l.ProjectID) {
			return false
		}
	}

	return true
}

// matchesSearch does a case-insensitive substring match over the log's
// searchable text fields.
func matchesSearch(l storage.WorkLog, search string) bool {
	search = strings.TrimSpace(strings.ToLower(search))
	if search == "" {
		return true
	}

	fields := []string{
		l.Notes,
		l.Tasks,
		l.ClientName,
		l.ClientAddress,
	}
	fields = append(fields, l.Personnel...)

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
