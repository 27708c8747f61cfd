package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"paysage-backend/http-server/worklogs/save"
	"paysage-backend/internal/storage"
)

type WorkLogWriter interface {
	UpdateWorkLog(ctx context.Context, log storage.WorkLog) error
	DeleteWorkLog(ctx context.Context, id string) error
	SetWorkLogInvoiced(ctx context.Context, id string, invoiced bool) error
}

type Response struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

func UpdateWorkLog(log *slog.Logger, store WorkLogWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.worklogs.UpdateWorkLog"

		id := chi.URLParam(r, "id")

		var req storage.WorkLog
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid work log payload", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		req.ID = id
		save.Normalize(&req)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.UpdateWorkLog(ctx, req); err != nil {
			log.Error("failed to update work log", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			render.JSON(w, r, Response{Error: "impossible de mettre à jour la fiche de suivi"})
			return
		}

		render.JSON(w, r, Response{ID: id, Status: "ok"})
	}
}

func DeleteWorkLog(log *slog.Logger, store WorkLogWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.worklogs.DeleteWorkLog"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.DeleteWorkLog(ctx, id); err != nil {
			log.Error("failed to delete work log", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			render.JSON(w, r, Response{Error: "impossible de supprimer la fiche de suivi"})
			return
		}

		render.JSON(w, r, Response{ID: id, Status: "ok"})
	}
}

type invoicedRequest struct {
	Invoiced bool `json:"invoiced"`
}

func SetInvoiced(log *slog.Logger, store WorkLogWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.worklogs.SetInvoiced"

		id := chi.URLParam(r, "id")

		var req invoicedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.SetWorkLogInvoiced(ctx, id, req.Invoiced); err != nil {
			log.Error("failed to toggle invoiced", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			render.JSON(w, r, Response{Error: "impossible de changer le statut de facturation"})
			return
		}

		render.JSON(w, r, Response{ID: id, Status: "ok"})
	}
}
