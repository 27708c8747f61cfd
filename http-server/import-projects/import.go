package importprojects

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"paysage-backend/internal/service/importer"
)

type ProjectImporter interface {
	ImportProjects(ctx context.Context, filename string, r io.Reader) (*importer.Result, error)
}

// ImportProjects accepts a multipart upload ("file" field, csv or xlsx) and
// answers with the per-row import result. Partial success is a normal
// outcome, not an error.
func ImportProjects(log *slog.Logger, service ProjectImporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.import.ImportProjects"

		if err := r.ParseMultipartForm(10 << 20); err != nil {
			http.Error(w, "invalid upload", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file field", http.StatusBadRequest)
			return
		}
		defer file.Close()

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		result, err := service.ImportProjects(ctx, header.Filename, file)
		if err != nil {
			log.Error("failed to import projects", slog.String("op", op), slog.String("file", header.Filename), slog.String("error", err.Error()))
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		render.JSON(w, r, result)
	}
}
