// Package stats is the single source of derived metrics for work logs and
// projects. Every dashboard, report and export goes through these functions
// so the formulas cannot drift between screens.
//
// Conventions: a log's hours are per-visit wall clock and are never
// multiplied by crew size when summing hours; billed value multiplies by
// crew size with a floor of one. Missing fields are zero, never an error.
package stats

import (
	"fmt"
	"strings"
	"time"

	"paysage-backend/internal/storage"
)

// DefaultHourlyRate applies when a work log carries no rate override.
const DefaultHourlyRate = 45.0

// FilterByYear keeps logs whose date falls in the given calendar year.
func FilterByYear(logs []storage.WorkLog, year int) []storage.WorkLog {
	var out []storage.WorkLog
	for _, l := range logs {
		if l.Date.Year() == year {
			out = append(out, l)
		}
	}
	return out
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last second of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// FilterByRange keeps logs whose date falls in the closed interval
// [from, to], compared on calendar days.
func FilterByRange(logs []storage.WorkLog, from, to time.Time) []storage.WorkLog {
	start := StartOfDay(from)
	end := EndOfDay(to)

	var out []storage.WorkLog
	for _, l := range logs {
		if !l.Date.Before(start) && !l.Date.After(end) {
			out = append(out, l)
		}
	}
	return out
}

// LogHours returns the visit's recorded total hours, zero when absent.
func LogHours(l storage.WorkLog) float64 {
	if l.TimeTracking == nil {
		return 0
	}
	return l.TimeTracking.TotalHours
}

// CrewSize returns the billable headcount, never less than one.
func CrewSize(l storage.WorkLog) int {
	if len(l.Personnel) == 0 {
		return 1
	}
	return len(l.Personnel)
}

// Rate returns the hourly rate, defaulting when unset.
func Rate(l storage.WorkLog) float64 {
	if l.HourlyRate == nil || *l.HourlyRate == 0 {
		return DefaultHourlyRate
	}
	return *l.HourlyRate
}

// Revenue is rate x hours x crew size for one visit.
func Revenue(l storage.WorkLog) float64 {
	return Rate(l) * LogHours(l) * float64(CrewSize(l))
}

// ConsumablesCost sums the consumable line totals of one visit.
func ConsumablesCost(l storage.WorkLog) float64 {
	var total float64
	for _, c := range l.Consumables {
		total += c.TotalPrice
	}
	return total
}

// ProfitMargin returns the margin percentage, zero when revenue is zero.
func ProfitMargin(revenue, cost float64) float64 {
	if revenue == 0 {
		return 0
	}
	return (revenue - cost) / revenue * 100
}

// TotalHours sums the per-visit hours of a collection.
func TotalHours(logs []storage.WorkLog) float64 {
	var total float64
	for _, l := range logs {
		total += LogHours(l)
	}
	return total
}

// TotalRevenue sums the billed value of a collection.
func TotalRevenue(logs []storage.WorkLog) float64 {
	var total float64
	for _, l := range logs {
		total += Revenue(l)
	}
	return total
}

// CompletionByVisits returns the percentage of the project's annual visit
// target reached by the given logs; zero when the target is unset.
func CompletionByVisits(p storage.Project, logs []storage.WorkLog) float64 {
	if p.AnnualVisits <= 0 {
		return 0
	}
	return float64(len(logs)) / float64(p.AnnualVisits) * 100
}

// CompletionByHours returns the percentage of the project's annual hours
// target reached by the given logs; zero when the target is unset.
func CompletionByHours(p storage.Project, logs []storage.WorkLog) float64 {
	if p.AnnualTotalHours <= 0 {
		return 0
	}
	return TotalHours(logs) / p.AnnualTotalHours * 100
}

// ComputeTotalHours derives a visit's total hours from the recorded clock
// times ("15:04") minus the break. Unparseable or inverted times yield zero.
func ComputeTotalHours(departure, end, breakTime string) float64 {
	dep, err := parseClock(departure)
	if err != nil {
		return 0
	}
	fin, err := parseClock(end)
	if err != nil {
		return 0
	}

	worked := fin.Sub(dep).Hours()

	if breakTime != "" {
		if br, err := parseClock(breakTime); err == nil {
			midnight := time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)
			worked -= br.Sub(midnight).Hours()
		}
	}

	if worked < 0 {
		return 0
	}
	return worked
}

func parseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty clock value")
	}
	return time.Parse("15:04", s)
}
