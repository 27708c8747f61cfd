// Package export shapes filtered work logs into downloadable documents.
// Column display labels are the French labels the frontend shows; which
// column groups appear is driven by the caller's FieldConfig. A missing
// field renders as an empty cell, never an error.
package export

import (
	"strconv"
	"strings"

	"paysage-backend/internal/service/stats"
	"paysage-backend/internal/storage"
)

const (
	FormatExcel = "excel"
	FormatCSV   = "csv"
	FormatPDF   = "pdf"
)

// FieldConfig toggles the optional column groups of an export.
type FieldConfig struct {
	Financials   bool `json:"financials"`
	TimeTracking bool `json:"time_tracking"`
	Consumables  bool `json:"consumables"`
	Notes        bool `json:"notes"`
}

// Dataset is one shaped export: a header row plus formatted data rows.
type Dataset struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// BuildDataset formats the logs into rows. The projects map resolves
// project names; blank worksheets fall back to their own client fields.
func BuildDataset(logs []storage.WorkLog, projects map[string]storage.Project, cfg FieldConfig) Dataset {
	ds := Dataset{
		Title:   "Fiches de suivi",
		Headers: []string{"Date", "Nom du projet", "Client", "Adresse", "Personnel", "Heures totales"},
	}

	if cfg.TimeTracking {
		ds.Headers = append(ds.Headers, "Départ", "Arrivée", "Fin de chantier", "Pause")
	}
	if cfg.Financials {
		ds.Headers = append(ds.Headers, "Taux horaire", "Montant", "Facturé", "Devis signé")
	}
	if cfg.Consumables {
		ds.Headers = append(ds.Headers, "Coût consommables")
	}
	if cfg.Notes {
		ds.Headers = append(ds.Headers, "Notes")
	}

	for _, l := range logs {
		name, client, address := resolveClient(l, projects)

		row := []string{
			l.Date.Format("02/01/2006"),
			name,
			client,
			address,
			strings.Join(l.Personnel, ", "),
			formatFloat(stats.LogHours(l)),
		}

		if cfg.TimeTracking {
			row = append(row, trackingCells(l.TimeTracking)...)
		}
		if cfg.Financials {
			row = append(row,
				formatFloat(stats.Rate(l)),
				formatFloat(stats.Revenue(l)),
				formatBool(l.Invoiced),
				formatBool(l.QuoteSigned),
			)
		}
		if cfg.Consumables {
			row = append(row, formatFloat(stats.ConsumablesCost(l)))
		}
		if cfg.Notes {
			row = append(row, l.Notes)
		}

		ds.Rows = append(ds.Rows, row)
	}

	return ds
}

// BuildProjectDataset formats a project list for export, with the labels
// used by the bulk import so an exported file can be re-imported.
func BuildProjectDataset(projects []storage.Project) Dataset {
	ds := Dataset{
		Title: "Chantiers",
		Headers: []string{
			"Nom du projet", "Client", "Adresse", "Téléphone", "Email",
			"Type", "Visites annuelles", "Heures annuelles totales", "Archivé",
		},
	}

	for _, p := range projects {
		ds.Rows = append(ds.Rows, []string{
			p.Name,
			p.ClientName,
			p.Address,
			p.ContactPhone,
			p.ContactEmail,
			p.ProjectType,
			strconv.Itoa(p.AnnualVisits),
			formatFloat(p.AnnualTotalHours),
			formatBool(p.IsArchived),
		})
	}

	return ds
}

func resolveClient(l storage.WorkLog, projects map[string]storage.Project) (name, client, address string) {
	if l.ProjectID != nil {
		if p, ok := projects[*l.ProjectID]; ok {
			return p.Name, p.ClientName, p.Address
		}
	}
	// blank worksheet: client details live on the log itself
	return "Fiche vierge", l.ClientName, l.ClientAddress
}

func trackingCells(tt *storage.TimeTracking) []string {
	if tt == nil {
		return []string{"", "", "", ""}
	}
	return []string{tt.Departure, tt.Arrival, tt.End, tt.BreakTime}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatBool(v bool) string {
	if v {
		return "Oui"
	}
	return "Non"
}
