package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"paysage-backend/internal/storage"
)

type ProjectReader interface {
	GetProjects(ctx context.Context, filter storage.ProjectFilter) ([]storage.Project, error)
	GetProject(ctx context.Context, id string) (*storage.Project, error)
}

func GetProjects(log *slog.Logger, store ProjectReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.projects.GetProjects"

		q := r.URL.Query()
		filter := storage.ProjectFilter{
			TeamID:          q.Get("team_id"),
			ProjectType:     q.Get("project_type"),
			IncludeArchived: q.Get("archived") == "true",
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		projects, err := store.GetProjects(ctx, filter)
		if err != nil {
			log.Error("failed to list projects", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		if projects == nil {
			projects = []storage.Project{}
		}

		render.JSON(w, r, projects)
	}
}

func GetProject(log *slog.Logger, store ProjectReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.projects.GetProject"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		project, err := store.GetProject(ctx, id)
		if err != nil {
			log.Error("project not found", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		render.JSON(w, r, project)
	}
}
