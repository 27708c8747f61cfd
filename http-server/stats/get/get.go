package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"paysage-backend/internal/service/stats"
)

type StatsProvider interface {
	Dashboard(ctx context.Context, year int) (*stats.Dashboard, error)
	ProjectDashboard(ctx context.Context, projectID string, year int) (*stats.ProjectStats, error)
	TeamStats(ctx context.Context, year int) ([]stats.TeamStats, error)
	PersonnelStats(ctx context.Context, year int) ([]stats.PersonnelStats, error)
}

// GetDashboard serves the yearly aggregates behind the dashboard cards and
// charts. Defaults to the current year.
func GetDashboard(log *slog.Logger, service StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.stats.GetDashboard"

		year, err := yearParam(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		dashboard, err := service.Dashboard(ctx, year)
		if err != nil {
			log.Error("failed to compute dashboard", slog.String("op", op), slog.Int("year", year), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, dashboard)
	}
}

func GetProjectDashboard(log *slog.Logger, service StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.stats.GetProjectDashboard"

		projectID := chi.URLParam(r, "id")

		year, err := yearParam(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		projectStats, err := service.ProjectDashboard(ctx, projectID, year)
		if err != nil {
			log.Error("failed to compute project stats", slog.String("op", op), slog.String("id", projectID), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, projectStats)
	}
}

// GetTeamStats serves the per-team yearly breakdown.
func GetTeamStats(log *slog.Logger, service StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.stats.GetTeamStats"

		year, err := yearParam(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		teamStats, err := service.TeamStats(ctx, year)
		if err != nil {
			log.Error("failed to compute team stats", slog.String("op", op), slog.Int("year", year), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if teamStats == nil {
			teamStats = []stats.TeamStats{}
		}

		render.JSON(w, r, teamStats)
	}
}

// GetPersonnelStats serves per-person yearly totals.
func GetPersonnelStats(log *slog.Logger, service StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.stats.GetPersonnelStats"

		year, err := yearParam(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		personnelStats, err := service.PersonnelStats(ctx, year)
		if err != nil {
			log.Error("failed to compute personnel stats", slog.String("op", op), slog.Int("year", year), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if personnelStats == nil {
			personnelStats = []stats.PersonnelStats{}
		}

		render.JSON(w, r, personnelStats)
	}
}

func yearParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return time.Now().Year(), nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidYear(raw)
	}
	return year, nil
}

type errInvalidYear string

func (e errInvalidYear) Error() string { return "invalid year parameter: " + string(e) }
