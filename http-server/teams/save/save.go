package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"paysage-backend/internal/storage"
)

type TeamWriter interface {
	SaveTeam(ctx context.Context, t storage.Team) error
	UpdateTeam(ctx context.Context, t storage.Team) error
}

type Response struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

func SaveTeam(log *slog.Logger, store TeamWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.teams.SaveTeam"

		var team storage.Team
		if err := json.NewDecoder(r.Body).Decode(&team); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		if team.Name == "" {
			http.Error(w, "le nom de l'équipe est requis", http.StatusBadRequest)
			return
		}
		if team.ID == "" {
			team.ID = uuid.NewString()
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.SaveTeam(ctx, team); err != nil {
			log.Error("failed to save team", slog.String("op", op), slog.String("error", err.Error()))
			render.JSON(w, r, Response{Error: "impossible d'enregistrer l'équipe"})
			return
		}

		render.JSON(w, r, Response{ID: team.ID, Status: "ok"})
	}
}

func UpdateTeam(log *slog.Logger, store TeamWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.teams.UpdateTeam"

		id := chi.URLParam(r, "id")

		var team storage.Team
		if err := json.NewDecoder(r.Body).Decode(&team); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		team.ID = id

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.UpdateTeam(ctx, team); err != nil {
			log.Error("failed to update team", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			render.JSON(w, r, Response{Error: "impossible de mettre à jour l'équipe"})
			return
		}

		render.JSON(w, r, Response{ID: id, Status: "ok"})
	}
}
