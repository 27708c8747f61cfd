package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"paysage-backend/internal/storage"
)

type TeamReader interface {
	GetTeams(ctx context.Context) ([]storage.Team, error)
}

func GetTeams(log *slog.Logger, store TeamReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.teams.GetTeams"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		teams, err := store.GetTeams(ctx)
		if err != nil {
			log.Error("failed to list teams", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		if teams == nil {
			teams = []storage.Team{}
		}

		render.JSON(w, r, teams)
	}
}
