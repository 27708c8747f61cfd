package export

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"paysage-backend/internal/service/stats"
	"paysage-backend/internal/storage"
)

type ExportStorage interface {
	GetWorkLogs(ctx context.Context, filter storage.WorkLogFilter) ([]storage.WorkLog, error)
	GetWorkLogsByProjects(ctx context.Context, projectIDs []string) ([]storage.WorkLog, error)
	GetProjects(ctx context.Context, filter storage.ProjectFilter) ([]storage.Project, error)
}

type Service struct {
	storage ExportStorage
}

func NewService(storage ExportStorage) *Service {
	return &Service{storage: storage}
}

// Document is a generated download payload.
type Document struct {
	Content     []byte
	ContentType string
	Extension   string
}

// GenerateWorkLogReport fetches the filtered logs and renders them in the
// requested format. A report across several projects fetches them in one
// IN-clause pass and narrows by date in memory.
func (s *Service) GenerateWorkLogReport(ctx context.Context, format string, filter storage.WorkLogFilter, projectIDs []string, cfg FieldConfig) (*Document, error) {
	const op = "service.export.GenerateWorkLogReport"

	var (
		logs     []storage.WorkLog
		projects []storage.Project
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		logs, err = s.fetchWorkLogs(gCtx, filter, projectIDs)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = s.storage.GetProjects(gCtx, storage.ProjectFilter{IncludeArchived: true})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byID := make(map[string]storage.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	return render(format, BuildDataset(logs, byID, cfg))
}

func (s *Service) fetchWorkLogs(ctx context.Context, filter storage.WorkLogFilter, projectIDs []string) ([]storage.WorkLog, error) {
	if len(projectIDs) < 2 {
		if len(projectIDs) == 1 {
			filter.ProjectID = projectIDs[0]
		}
		return s.storage.GetWorkLogs(ctx, filter)
	}

	logs, err := s.storage.GetWorkLogsByProjects(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	if filter.Year != 0 {
		logs = stats.FilterByYear(logs, filter.Year)
	}
	if filter.From != nil && filter.To != nil {
		logs = stats.FilterByRange(logs, *filter.From, *filter.To)
	}
	if filter.TeamID != "" {
		kept := logs[:0]
		for _, l := range logs {
			if l.TeamID != nil && *l.TeamID == filter.TeamID {
				kept = append(kept, l)
			}
		}
		logs = kept
	}

	return logs, nil
}

// GenerateProjectReport renders the project list in the requested format.
func (s *Service) GenerateProjectReport(ctx context.Context, format string, includeArchived bool) (*Document, error) {
	const op = "service.export.GenerateProjectReport"

	projects, err := s.storage.GetProjects(ctx, storage.ProjectFilter{IncludeArchived: includeArchived})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return render(format, BuildProjectDataset(projects))
}

func render(format string, ds Dataset) (*Document, error) {
	switch format {
	case FormatExcel:
		content, err := WriteExcel(ds)
		if err != nil {
			return nil, err
		}
		return &Document{
			Content:     content,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Extension:   "xlsx",
		}, nil
	case FormatCSV:
		content, err := WriteCSV(ds)
		if err != nil {
			return nil, err
		}
		return &Document{Content: content, ContentType: "text/csv; charset=utf-8", Extension: "csv"}, nil
	case FormatPDF:
		content, err := WritePDF(ds)
		if err != nil {
			return nil, err
		}
		return &Document{Content: content, ContentType: "application/pdf", Extension: "pdf"}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}
