package get

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"paysage-backend/internal/service/filter"
	"paysage-backend/internal/storage"
)

type WorkLogReader interface {
	GetWorkLogs(ctx context.Context, filter storage.WorkLogFilter) ([]storage.WorkLog, error)
	GetWorkLog(ctx context.Context, id string) (*storage.WorkLog, error)
}

// GetWorkLogs lists work logs. Storage narrows by year/project/team/range;
// the advanced criteria (search, statuses, bounds) are applied in memory on
// the fetched set.
func GetWorkLogs(log *slog.Logger, store WorkLogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.worklogs.GetWorkLogs"

		storeFilter, spec, err := parseFilters(r)
		if err != nil {
			log.Error("invalid work log filter", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		logs, err := store.GetWorkLogs(ctx, storeFilter)
		if err != nil {
			log.Error("failed to list work logs", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		logs = filter.Apply(logs, spec)
		if logs == nil {
			logs = []storage.WorkLog{}
		}

		render.JSON(w, r, logs)
	}
}

func GetWorkLog(log *slog.Logger, store WorkLogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.worklogs.GetWorkLog"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		workLog, err := store.GetWorkLog(ctx, id)
		if err != nil {
			log.Error("work log not found", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		render.JSON(w, r, workLog)
	}
}

func parseFilters(r *http.Request) (storage.WorkLogFilter, filter.Spec, error) {
	q := r.URL.Query()

	var storeFilter storage.WorkLogFilter
	if y := q.Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return storeFilter, filter.Spec{}, errInvalidParam("year", y)
		}
		storeFilter.Year = year
	}
	storeFilter.ProjectID = q.Get("project_id")
	storeFilter.TeamID = q.Get("team_id")

	spec := filter.Spec{
		Search:        q.Get("search"),
		InvoiceStatus: q.Get("invoice_status"),
		QuoteStatus:   q.Get("quote_status"),
		HasNotes:      q.Get("has_notes"),
		TeamIDs:       splitParam(q.Get("team_ids")),
		ProjectIDs:    splitParam(q.Get("project_ids")),
	}

	var err error
	if spec.From, err = parseDateParam(q.Get("from")); err != nil {
		return storeFilter, spec, errInvalidParam("from", q.Get("from"))
	}
	if spec.To, err = parseDateParam(q.Get("to")); err != nil {
		return storeFilter, spec, errInvalidParam("to", q.Get("to"))
	}
	if spec.MinHours, err = parseFloatParam(q.Get("min_hours")); err != nil {
		return storeFilter, spec, errInvalidParam("min_hours", q.Get("min_hours"))
	}
	if spec.MaxHours, err = parseFloatParam(q.Get("max_hours")); err != nil {
		return storeFilter, spec, errInvalidParam("max_hours", q.Get("max_hours"))
	}
	if spec.MinAmount, err = parseFloatParam(q.Get("min_amount")); err != nil {
		return storeFilter, spec, errInvalidParam("min_amount", q.Get("min_amount"))
	}
	if spec.MaxAmount, err = parseFloatParam(q.Get("max_amount")); err != nil {
		return storeFilter, spec, errInvalidParam("max_amount", q.Get("max_amount"))
	}

	return storeFilter, spec, nil
}

func parseDateParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseFloatParam(v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func splitParam(v string) []string {
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

func errInvalidParam(name, value string) error {
	return fmt.Errorf("invalid %s parameter: %q", name, value)
}
