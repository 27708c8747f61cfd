package stats

import (
	"time"

	"paysage-backend/internal/storage"
)

type ProjectStats struct {
	ProjectID        string  `json:"project_id"`
	Name             string  `json:"name"`
	VisitCount       int     `json:"visit_count"`
	TotalHours       float64 `json:"total_hours"`
	AnnualVisits     int     `json:"annual_visits"`
	AnnualTotalHours float64 `json:"annual_total_hours"`
	VisitCompletion  float64 `json:"visit_completion"`
	HoursCompletion  float64 `json:"hours_completion"`
	Revenue          float64 `json:"revenue"`
	ConsumablesCost  float64 `json:"consumables_cost"`
	ProfitMargin     float64 `json:"profit_margin"`
	PendingInvoices  int     `json:"pending_invoices"`
}

type TeamStats struct {
	TeamID     string  `json:"team_id"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	VisitCount int     `json:"visit_count"`
	TotalHours float64 `json:"total_hours"`
	Revenue    float64 `json:"revenue"`
}

type PersonnelStats struct {
	Name       string  `json:"name"`
	VisitCount int     `json:"visit_count"`
	TotalHours float64 `json:"total_hours"`
}

type MonthlyStats struct {
	Month      time.Month `json:"month"`
	VisitCount int        `json:"visit_count"`
	TotalHours float64    `json:"total_hours"`
	Revenue    float64    `json:"revenue"`
}

// ComputeProjectStats derives one project's progress and financials from its
// logs. Callers pass logs already narrowed to the project and year.
func ComputeProjectStats(p storage.Project, logs []storage.WorkLog) ProjectStats {
	ps := ProjectStats{
		ProjectID:        p.ID,
		Name:             p.Name,
		AnnualVisits:     p.AnnualVisits,
		AnnualTotalHours: p.AnnualTotalHours,
		VisitCount:       len(logs),
		TotalHours:       TotalHours(logs),
		VisitCompletion:  CompletionByVisits(p, logs),
		HoursCompletion:  CompletionByHours(p, logs),
	}

	for _, l := range logs {
		ps.Revenue += Revenue(l)
		ps.ConsumablesCost += ConsumablesCost(l)
		if !l.Invoiced {
			ps.PendingInvoices++
		}
	}
	ps.ProfitMargin = ProfitMargin(ps.Revenue, ps.ConsumablesCost)

	return ps
}

// ComputeTeamStats groups logs per team. A log's team is its explicit
// team_id, falling back to the team of its project.
func ComputeTeamStats(teams []storage.Team, projects []storage.Project, logs []storage.WorkLog) []TeamStats {
	projectTeam := make(map[string]string, len(projects))
	for _, p := range projects {
		if p.TeamID != nil {
			projectTeam[p.ID] = *p.TeamID
		}
	}

	byTeam := make(map[string]*TeamStats, len(teams))
	out := make([]TeamStats, 0, len(teams))
	for _, t := range teams {
		out = append(out, TeamStats{TeamID: t.ID, Name: t.Name, Color: t.Color})
	}
	for i := range out {
		byTeam[out[i].TeamID] = &out[i]
	}

	for _, l := range logs {
		teamID := ""
		if l.TeamID != nil {
			teamID = *l.TeamID
		} else if l.ProjectID != nil {
			teamID = projectTeam[*l.ProjectID]
		}

		ts, ok := byTeam[teamID]
		if !ok {
			continue
		}
		ts.VisitCount++
		ts.TotalHours += LogHours(l)
		ts.Revenue += Revenue(l)
	}

	return out
}

// ComputePersonnelStats groups logs per person. Each person present on a
// visit is credited the visit's full hours.
func ComputePersonnelStats(logs []storage.WorkLog) []PersonnelStats {
	byName := make(map[string]*PersonnelStats)
	var order []string

	for _, l := range logs {
		hours := LogHours(l)
		for _, name := range l.Personnel {
			ps, ok := byName[name]
			if !ok {
				ps = &PersonnelStats{Name: name}
				byName[name] = ps
				order = append(order, name)
			}
			ps.VisitCount++
			ps.TotalHours += hours
		}
	}

	out := make([]PersonnelStats, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}

// ComputeMonthlyStats buckets a year's logs per calendar month. All twelve
// months are present so charts get a stable x-axis.
func ComputeMonthlyStats(logs []storage.WorkLog) []MonthlyStats {
	out := make([]MonthlyStats, 12)
	for i := range out {
		out[i].Month = time.Month(i + 1)
	}

	for _, l := range logs {
		m := &out[int(l.Date.Month())-1]
		m.VisitCount++
		m.TotalHours += LogHours(l)
		m.Revenue += Revenue(l)
	}

	return out
}
