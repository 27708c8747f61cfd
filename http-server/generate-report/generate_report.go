package generate_report

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"paysage-backend/internal/service/export"
	"paysage-backend/internal/storage"
)

type ReportGenerator interface {
	GenerateWorkLogReport(ctx context.Context, format string, filter storage.WorkLogFilter, projectIDs []string, cfg export.FieldConfig) (*export.Document, error)
	GenerateProjectReport(ctx context.Context, format string, includeArchived bool) (*export.Document, error)
}

// GenerateWorkLogReport streams a work-log report in the format given by the
// {format} route param (excel|csv|pdf). The date range defaults to the
// current month.
func GenerateWorkLogReport(log *slog.Logger, gen ReportGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateWorkLogReport"

		format := chi.URLParam(r, "format")
		q := r.URL.Query()

		now := time.Now()
		startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

		from, err := dateOrDefault(q.Get("from"), startOfMonth)
		if err != nil {
			http.Error(w, "invalid from date", http.StatusBadRequest)
			return
		}
		to, err := dateOrDefault(q.Get("to"), now)
		if err != nil {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			return
		}

		filter := storage.WorkLogFilter{
			ProjectID: q.Get("project_id"),
			TeamID:    q.Get("team_id"),
			From:      &from,
			To:        &to,
		}
		projectIDs := splitIDs(q.Get("project_ids"))

		cfg := export.FieldConfig{
			Financials:   q.Get("financials") != "false",
			TimeTracking: q.Get("time_tracking") != "false",
			Consumables:  q.Get("consumables") == "true",
			Notes:        q.Get("notes") == "true",
		}

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		doc, err := gen.GenerateWorkLogReport(ctx, format, filter, projectIDs, cfg)
		if err != nil {
			log.Error("failed to generate report", slog.String("op", op), slog.String("format", format), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		serveDocument(w, doc, fmt.Sprintf("fiches_suivi_%s", time.Now().Format("2006-01-02_150405")))
	}
}

// GenerateProjectReport streams the project list in the requested format.
func GenerateProjectReport(log *slog.Logger, gen ReportGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateProjectReport"

		format := chi.URLParam(r, "format")
		includeArchived := r.URL.Query().Get("archived") == "true"

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		doc, err := gen.GenerateProjectReport(ctx, format, includeArchived)
		if err != nil {
			log.Error("failed to generate project report", slog.String("op", op), slog.String("format", format), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		serveDocument(w, doc, fmt.Sprintf("chantiers_%s", time.Now().Format("2006-01-02_150405")))
	}
}

func serveDocument(w http.ResponseWriter, doc *export.Document, baseName string) {
	fileName := fmt.Sprintf("%s.%s", baseName, doc.Extension)

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
	w.Write(doc.Content)
}

func splitIDs(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func dateOrDefault(raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	return time.Parse("2006-01-02", raw)
}
