// Package importer loads projects from an uploaded Excel or CSV file,
// row by row. A bad row is reported and skipped, the rest go through:
// partial success is the contract, there is no all-or-nothing import.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"paysage-backend/internal/storage"
)

type ImportStorage interface {
	BulkSaveProjects(ctx context.Context, projects []storage.Project) error
}

type Service struct {
	storage  ImportStorage
	validate *validator.Validate
}

func NewService(storage ImportStorage) *Service {
	return &Service{
		storage:  storage,
		validate: validator.New(),
	}
}

// RowError reports one rejected upload row.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Result reports what the import did; Successful and Errors together cover
// every data row of the file.
type Result struct {
	RowsRead   int               `json:"rows_read"`
	Successful []storage.Project `json:"successful"`
	Errors     []RowError        `json:"errors"`
}

// projectRow is the validated shape of one upload row.
type projectRow struct {
	Name             string  `validate:"required"`
	ClientName       string
	Address          string
	ContactPhone     string
	ContactEmail     string  `validate:"omitempty,email"`
	ProjectType      string  `validate:"omitempty,oneof=residence particular enterprise"`
	AnnualVisits     int     `validate:"gte=0"`
	AnnualTotalHours float64 `validate:"gte=0"`
}

// ImportProjects parses the upload and persists the valid rows.
func (s *Service) ImportProjects(ctx context.Context, filename string, r io.Reader) (*Result, error) {
	const op = "service.importer.ImportProjects"

	reader, err := ReaderForFormat(filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records, err := reader.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &Result{RowsRead: len(records)}

	for _, record := range records {
		project, rowErr := s.mapRecord(record)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		result.Successful = append(result.Successful, *project)
	}

	if len(result.Successful) > 0 {
		if err := s.storage.BulkSaveProjects(ctx, result.Successful); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return result, nil
}

func (s *Service) mapRecord(record Record) (*storage.Project, *RowError) {
	row := projectRow{
		Name:         record.Get("Nom du projet", "Nom", "Projet"),
		ClientName:   record.Get("Client", "Nom du client"),
		Address:      record.Get("Adresse"),
		ContactPhone: record.Get("Téléphone", "Tel"),
		ContactEmail: record.Get("Email", "E-mail"),
		ProjectType:  normalizeProjectType(record.Get("Type", "Type de projet")),
	}

	if v := record.Get("Visites annuelles", "Visites"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, &RowError{Row: record.RowNumber, Message: fmt.Sprintf("visites annuelles invalides: %q", v)}
		}
		row.AnnualVisits = n
	}

	if v := record.Get("Heures annuelles totales", "Heures annuelles"); v != "" {
		h, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
		if err != nil {
			return nil, &RowError{Row: record.RowNumber, Message: fmt.Sprintf("heures annuelles invalides: %q", v)}
		}
		row.AnnualTotalHours = h
	}

	if err := s.validate.Struct(row); err != nil {
		return nil, &RowError{Row: record.RowNumber, Message: rowErrorMessage(err)}
	}

	projectType := row.ProjectType
	if projectType == "" {
		projectType = storage.ProjectTypeResidence
	}

	return &storage.Project{
		ID:               uuid.NewString(),
		Name:             row.Name,
		ClientName:       row.ClientName,
		Address:          row.Address,
		ContactPhone:     row.ContactPhone,
		ContactEmail:     row.ContactEmail,
		ProjectType:      projectType,
		AnnualVisits:     row.AnnualVisits,
		AnnualTotalHours: row.AnnualTotalHours,
	}, nil
}

func normalizeProjectType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "residence", "résidence":
		return storage.ProjectTypeResidence
	case "particular", "particulier":
		return storage.ProjectTypeParticular
	case "enterprise", "entreprise":
		return storage.ProjectTypeEnterprise
	default:
		return ""
	}
}

func rowErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Name":
			return "champ requis manquant: Nom du projet"
		case "ContactEmail":
			return "email invalide"
		default:
			return fmt.Sprintf("champ invalide: %s", verrs[0].Field())
		}
	}
	return err.Error()
}
