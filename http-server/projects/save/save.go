package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"paysage-backend/internal/storage"
)

type ProjectSaver interface {
	SaveProject(ctx context.Context, p storage.Project) error
}

type Response struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

func SaveProject(log *slog.Logger, store ProjectSaver) http.HandlerFunc {
	validate := validator.New()

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.projects.SaveProject"

		var project storage.Project
		if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
			log.Error("invalid project payload", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		if err := ValidateProject(validate, project); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if project.ProjectType == "" {
			project.ProjectType = storage.ProjectTypeResidence
		}
		if project.ID == "" {
			project.ID = uuid.NewString()
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.SaveProject(ctx, project); err != nil {
			log.Error("failed to save project", slog.String("op", op), slog.String("error", err.Error()))
			render.JSON(w, r, Response{Error: "impossible d'enregistrer le chantier"})
			return
		}

		render.JSON(w, r, Response{ID: project.ID, Status: "ok"})
	}
}

// ValidateProject checks the fields a form can get wrong; shared with the
// update handler.
func ValidateProject(validate *validator.Validate, p storage.Project) error {
	if err := validate.Var(p.Name, "required"); err != nil {
		return errMissingName
	}
	if err := validate.Var(p.ContactEmail, "omitempty,email"); err != nil {
		return errBadEmail
	}
	if err := validate.Var(p.ProjectType, "omitempty,oneof=residence particular enterprise"); err != nil {
		return errBadType
	}
	return nil
}

var (
	errMissingName = validationError("le nom du projet est requis")
	errBadEmail    = validationError("email invalide")
	errBadType     = validationError("type de projet invalide")
)

type validationError string

func (e validationError) Error() string { return string(e) }
