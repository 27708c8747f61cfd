package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"paysage-backend/http-server/projects/save"
	"paysage-backend/internal/storage"
)

type ProjectWriter interface {
	UpdateProject(ctx context.Context, p storage.Project) error
	SetProjectArchived(ctx context.Context, id string, archived bool) error
}

type Response struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

func UpdateProject(log *slog.Logger, store ProjectWriter) http.HandlerFunc {
	validate := validator.New()

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.projects.UpdateProject"

		id := chi.URLParam(r, "id")

		var project storage.Project
		if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
			log.Error("invalid project payload", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		project.ID = id

		if err := save.ValidateProject(validate, project); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.UpdateProject(ctx, project); err != nil {
			log.Error("failed to update project", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			render.JSON(w, r, Response{Error: "impossible de mettre à jour le chantier"})
			return
		}

		render.JSON(w, r, Response{ID: id, Status: "ok"})
	}
}

// ArchiveProject archives (archived=true) or restores (archived=false).
func ArchiveProject(log *slog.Logger, store ProjectWriter, archived bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.projects.ArchiveProject"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.SetProjectArchived(ctx, id, archived); err != nil {
			log.Error("failed to change archive state", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			render.JSON(w, r, Response{Error: "impossible de modifier l'archivage du chantier"})
			return
		}

		render.JSON(w, r, Response{ID: id, Status: "ok"})
	}
}
