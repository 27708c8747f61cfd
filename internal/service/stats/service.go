package stats

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"paysage-backend/internal/storage"
)

type StatsStorage interface {
	GetWorkLogs(ctx context.Context, filter storage.WorkLogFilter) ([]storage.WorkLog, error)
	GetProjects(ctx context.Context, filter storage.ProjectFilter) ([]storage.Project, error)
	GetProject(ctx context.Context, id string) (*storage.Project, error)
	GetTeams(ctx context.Context) ([]storage.Team, error)
}

type Service struct {
	storage StatsStorage
}

func NewService(storage StatsStorage) *Service {
	return &Service{storage: storage}
}

// Dashboard is the aggregate view for one year, consumed by the frontend
// dashboard cards and charts.
type Dashboard struct {
	Year            int              `json:"year"`
	TotalVisits     int              `json:"total_visits"`
	TotalHours      float64          `json:"total_hours"`
	TotalRevenue    float64          `json:"total_revenue"`
	ConsumablesCost float64          `json:"consumables_cost"`
	ProfitMargin    float64          `json:"profit_margin"`
	PendingInvoices int              `json:"pending_invoices"`
	Projects        []ProjectStats   `json:"projects"`
	Teams           []TeamStats      `json:"teams"`
	Personnel       []PersonnelStats `json:"personnel"`
	Monthly         []MonthlyStats   `json:"monthly"`
}

func (s *Service) Dashboard(ctx context.Context, year int) (*Dashboard, error) {
	const op = "service.stats.Dashboard"

	var (
		logs     []storage.WorkLog
		projects []storage.Project
		teams    []storage.Team
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		logs, err = s.storage.GetWorkLogs(gCtx, storage.WorkLogFilter{Year: year})
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = s.storage.GetProjects(gCtx, storage.ProjectFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.storage.GetTeams(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d := &Dashboard{
		Year:        year,
		TotalVisits: len(logs),
		TotalHours:  TotalHours(logs),
		Teams:       ComputeTeamStats(teams, projects, logs),
		Personnel:   ComputePersonnelStats(logs),
		Monthly:     ComputeMonthlyStats(logs),
	}

	logsByProject := make(map[string][]storage.WorkLog)
	for _, l := range logs {
		d.TotalRevenue += Revenue(l)
		d.ConsumablesCost += ConsumablesCost(l)
		if !l.Invoiced {
			d.PendingInvoices++
		}
		if l.ProjectID != nil {
			logsByProject[*l.ProjectID] = append(logsByProject[*l.ProjectID], l)
		}
	}
	d.ProfitMargin = ProfitMargin(d.TotalRevenue, d.ConsumablesCost)

	for _, p := range projects {
		d.Projects = append(d.Projects, ComputeProjectStats(p, logsByProject[p.ID]))
	}

	return d, nil
}

// TeamStats computes the per-team breakdown for one year.
func (s *Service) TeamStats(ctx context.Context, year int) ([]TeamStats, error) {
	const op = "service.stats.TeamStats"

	var (
		logs     []storage.WorkLog
		projects []storage.Project
		teams    []storage.Team
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		logs, err = s.storage.GetWorkLogs(gCtx, storage.WorkLogFilter{Year: year})
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = s.storage.GetProjects(gCtx, storage.ProjectFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.storage.GetTeams(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ComputeTeamStats(teams, projects, logs), nil
}

// PersonnelStats computes per-person totals for one year.
func (s *Service) PersonnelStats(ctx context.Context, year int) ([]PersonnelStats, error) {
	const op = "service.stats.PersonnelStats"

	logs, err := s.storage.GetWorkLogs(ctx, storage.WorkLogFilter{Year: year})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ComputePersonnelStats(logs), nil
}

// ProjectDashboard computes one project's yearly stats.
func (s *Service) ProjectDashboard(ctx context.Context, projectID string, year int) (*ProjectStats, error) {
	const op = "service.stats.ProjectDashboard"

	var (
		project *storage.Project
		logs    []storage.WorkLog
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		project, err = s.storage.GetProject(gCtx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		logs, err = s.storage.GetWorkLogs(gCtx, storage.WorkLogFilter{Year: year, ProjectID: projectID})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps := ComputeProjectStats(*project, logs)
	return &ps, nil
}
