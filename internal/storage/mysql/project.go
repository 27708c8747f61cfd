package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"paysage-backend/internal/storage"
)

const projectColumns = `id, name, address, client_name, contact_phone, contact_email,
		team_id, project_type, annual_visits, annual_total_hours, visit_duration,
		irrigation, mowing, contract_details, start_date, end_date, is_archived, created_at`

func (s *Storage) SaveProject(ctx context.Context, p storage.Project) error {
	const op = "storage.mysql.SaveProject"

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects
		(id, name, address, client_name, contact_phone, contact_email, team_id,
		 project_type, annual_visits, annual_total_hours, visit_duration,
		 irrigation, mowing, contract_details, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID, p.Name, p.Address, p.ClientName, p.ContactPhone, p.ContactEmail,
		p.TeamID, p.ProjectType, p.AnnualVisits, p.AnnualTotalHours,
		p.VisitDuration, p.Irrigation, p.Mowing, p.ContractDetails,
		p.StartDate, p.EndDate,
	)
	if err != nil {
		return fmt.Errorf("%s: insert project %q: %w", op, p.Name, err)
	}

	return nil
}

// BulkSaveProjects inserts imported projects in one transaction.
func (s *Storage) BulkSaveProjects(ctx context.Context, projects []storage.Project) error {
	const op = "storage.mysql.BulkSaveProjects"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO projects
		(id, name, address, client_name, contact_phone, contact_email, team_id,
		 project_type, annual_visits, annual_total_hours, visit_duration,
		 irrigation, mowing, contract_details, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer stmt.Close()

	for _, p := range projects {
		_, err := stmt.ExecContext(ctx,
			p.ID, p.Name, p.Address, p.ClientName, p.ContactPhone, p.ContactEmail,
			p.TeamID, p.ProjectType, p.AnnualVisits, p.AnnualTotalHours,
			p.VisitDuration, p.Irrigation, p.Mowing, p.ContractDetails,
			p.StartDate, p.EndDate,
		)
		if err != nil {
			return fmt.Errorf("%s: insert imported project %q: %w", op, p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

func (s *Storage) UpdateProject(ctx context.Context, p storage.Project) error {
	const op = "storage.mysql.UpdateProject"

	res, err := s.db.ExecContext(ctx, `
		UPDATE projects SET
			name = ?, address = ?, client_name = ?, contact_phone = ?,
			contact_email = ?, team_id = ?, project_type = ?, annual_visits = ?,
			annual_total_hours = ?, visit_duration = ?, irrigation = ?,
			mowing = ?, contract_details = ?, start_date = ?, end_date = ?
		WHERE id = ?
	`,
		p.Name, p.Address, p.ClientName, p.ContactPhone, p.ContactEmail,
		p.TeamID, p.ProjectType, p.AnnualVisits, p.AnnualTotalHours,
		p.VisitDuration, p.Irrigation, p.Mowing, p.ContractDetails,
		p.StartDate, p.EndDate, p.ID,
	)
	if err != nil {
		return fmt.Errorf("%s: update project id=%s: %w", op, p.ID, err)
	}

	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("%s: project id=%s not found: %w", op, p.ID, sql.ErrNoRows)
	}

	return nil
}

// SetProjectArchived archives or restores a project. Projects are never
// hard-deleted in the normal flow.
func (s *Storage) SetProjectArchived(ctx context.Context, id string, archived bool) error {
	const op = "storage.mysql.SetProjectArchived"

	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET is_archived = ? WHERE id = ?`, archived, id)
	if err != nil {
		return fmt.Errorf("%s: id=%s: %w", op, id, err)
	}

	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("%s: project id=%s not found: %w", op, id, sql.ErrNoRows)
	}

	return nil
}

func (s *Storage) GetProject(ctx context.Context, id string) (*storage.Project, error) {
	const op = "storage.mysql.GetProject"

	row := s.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)

	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: project id=%s not found: %w", op, id, err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (s *Storage) GetProjects(ctx context.Context, filter storage.ProjectFilter) ([]storage.Project, error) {
	const op = "storage.mysql.GetProjects"

	query := `SELECT ` + projectColumns + ` FROM projects WHERE 1=1`
	var args []interface{}

	if !filter.IncludeArchived {
		query += ` AND is_archived = FALSE`
	}
	if filter.TeamID != "" {
		query += ` AND team_id = ?`
		args = append(args, filter.TeamID)
	}
	if filter.ProjectType != "" {
		query += ` AND project_type = ?`
		args = append(args, filter.ProjectType)
	}

	query += ` ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var projects []storage.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		projects = append(projects, *p)
	}

	return projects, rows.Err()
}

func scanProject(row rowScanner) (*storage.Project, error) {
	p := &storage.Project{}

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Address,
		&p.ClientName,
		&p.ContactPhone,
		&p.ContactEmail,
		&p.TeamID,
		&p.ProjectType,
		&p.AnnualVisits,
		&p.AnnualTotalHours,
		&p.VisitDuration,
		&p.Irrigation,
		&p.Mowing,
		&p.ContractDetails,
		&p.StartDate,
		&p.EndDate,
		&p.IsArchived,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return p, nil
}
