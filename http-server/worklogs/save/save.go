package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"paysage-backend/internal/service/stats"
	"paysage-backend/internal/storage"
)

type WorkLogSaver interface {
	SaveWorkLog(ctx context.Context, log storage.WorkLog) error
}

type Response struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

func SaveWorkLog(log *slog.Logger, store WorkLogSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.worklogs.SaveWorkLog"

		var req storage.WorkLog
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid work log payload", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		if req.Date.IsZero() {
			http.Error(w, "date is required", http.StatusBadRequest)
			return
		}

		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		Normalize(&req)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.SaveWorkLog(ctx, req); err != nil {
			log.Error("failed to save work log", slog.String("op", op), slog.String("error", err.Error()))
			render.JSON(w, r, Response{Error: "impossible d'enregistrer la fiche de suivi"})
			return
		}

		render.JSON(w, r, Response{ID: req.ID, Status: "ok"})
	}
}

// Normalize recomputes the derived time fields before persisting; the
// client-supplied totals are never trusted.
func Normalize(log *storage.WorkLog) {
	if log.TimeTracking == nil {
		return
	}
	tt := log.TimeTracking
	if tt.Departure != "" && tt.End != "" {
		tt.TotalHours = stats.ComputeTotalHours(tt.Departure, tt.End, tt.BreakTime)
		tt.WorkHours = tt.TotalHours - tt.TravelHours
		if tt.WorkHours < 0 {
			tt.WorkHours = 0
		}
	}
}
