package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"paysage-backend/internal/storage"
)

const workLogColumns = `id, date, project_id, team_id, personnel, time_tracking, hourly_rate,
		invoiced, quote_signed, signed_quote_amount, consumables, tasks,
		waste_management, notes, client_name, client_address, created_at, updated_at`

func (s *Storage) SaveWorkLog(ctx context.Context, log storage.WorkLog) error {
	const op = "storage.mysql.SaveWorkLog"

	personnelJSON, trackingJSON, consumablesJSON, err := marshalWorkLogJSON(log)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO work_logs
		(id, date, project_id, team_id, personnel, time_tracking, hourly_rate,
		 invoiced, quote_signed, signed_quote_amount, consumables, tasks,
		 waste_management, notes, client_name, client_address)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		log.ID,
		log.Date,
		log.ProjectID,
		log.TeamID,
		personnelJSON,
		trackingJSON,
		log.HourlyRate,
		log.Invoiced,
		log.QuoteSigned,
		log.SignedQuoteAmount,
		consumablesJSON,
		log.Tasks,
		log.WasteManagement,
		log.Notes,
		log.ClientName,
		log.ClientAddress,
	)
	if err != nil {
		return fmt.Errorf("%s: insert work log id=%s: %w", op, log.ID, err)
	}

	return nil
}

func (s *Storage) UpdateWorkLog(ctx context.Context, log storage.WorkLog) error {
	const op = "storage.mysql.UpdateWorkLog"

	personnelJSON, trackingJSON, consumablesJSON, err := marshalWorkLogJSON(log)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE work_logs SET
			date = ?, project_id = ?, team_id = ?, personnel = ?,
			time_tracking = ?, hourly_rate = ?, invoiced = ?, quote_signed = ?,
			signed_quote_amount = ?, consumables = ?, tasks = ?,
			waste_management = ?, notes = ?, client_name = ?, client_address = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`,
		log.Date,
		log.ProjectID,
		log.TeamID,
		personnelJSON,
		trackingJSON,
		log.HourlyRate,
		log.Invoiced,
		log.QuoteSigned,
		log.SignedQuoteAmount,
		consumablesJSON,
		log.Tasks,
		log.WasteManagement,
		log.Notes,
		log.ClientName,
		log.ClientAddress,
		log.ID,
	)
	if err != nil {
		return fmt.Errorf("%s: update work log id=%s: %w", op, log.ID, err)
	}

	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("%s: work log id=%s not found: %w", op, log.ID, sql.ErrNoRows)
	}

	return nil
}

func (s *Storage) DeleteWorkLog(ctx context.Context, id string) error {
	const op = "storage.mysql.DeleteWorkLog"

	res, err := s.db.ExecContext(ctx, `DELETE FROM work_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: delete work log id=%s: %w", op, id, err)
	}

	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("%s: work log id=%s not found: %w", op, id, sql.ErrNoRows)
	}

	return nil
}

func (s *Storage) SetWorkLogInvoiced(ctx context.Context, id string, invoiced bool) error {
	const op = "storage.mysql.SetWorkLogInvoiced"

	_, err := s.db.ExecContext(ctx,
		`UPDATE work_logs SET invoiced = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		invoiced, id)
	if err != nil {
		return fmt.Errorf("%s: id=%s: %w", op, id, err)
	}

	return nil
}

func (s *Storage) GetWorkLog(ctx context.Context, id string) (*storage.WorkLog, error) {
	const op = "storage.mysql.GetWorkLog"

	row := s.db.QueryRowContext(ctx,
		`SELECT `+workLogColumns+` FROM work_logs WHERE id = ?`, id)

	log, err := scanWorkLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: work log id=%s not found: %w", op, id, err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return log, nil
}

func (s *Storage) GetWorkLogs(ctx context.Context, filter storage.WorkLogFilter) ([]storage.WorkLog, error) {
	const op = "storage.mysql.GetWorkLogs"

	query := `SELECT ` + workLogColumns + ` FROM work_logs WHERE 1=1`
	var args []interface{}

	if filter.Year != 0 {
		query += ` AND YEAR(date) = ?`
		args = append(args, filter.Year)
	}
	if filter.ProjectID != "" {
		query += ` AND project_id = ?`
		args = append(args, filter.ProjectID)
	}
	if filter.TeamID != "" {
		query += ` AND team_id = ?`
		args = append(args, filter.TeamID)
	}
	if filter.From != nil {
		query += ` AND date >= ?`
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		query += ` AND date <= ?`
		args = append(args, *filter.To)
	}

	query += ` ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var logs []storage.WorkLog
	for rows.Next() {
		log, err := scanWorkLog(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		logs = append(logs, *log)
	}

	return logs, rows.Err()
}

// GetWorkLogsByProjects fetches logs for a set of project ids in one pass,
// used by multi-project reports.
func (s *Storage) GetWorkLogsByProjects(ctx context.Context, projectIDs []string) ([]storage.WorkLog, error) {
	const op = "storage.mysql.GetWorkLogsByProjects"

	if len(projectIDs) == 0 {
		return nil, nil
	}

	query := `SELECT ` + workLogColumns + ` FROM work_logs
		WHERE project_id IN (` + placeholders(len(projectIDs)) + `) ORDER BY date DESC`

	args := make([]interface{}, len(projectIDs))
	for i, id := range projectIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var logs []storage.WorkLog
	for rows.Next() {
		log, err := scanWorkLog(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		logs = append(logs, *log)
	}

	return logs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkLog(row rowScanner) (*storage.WorkLog, error) {
	log := &storage.WorkLog{}

	var personnelJSON, trackingJSON, consumablesJSON sql.NullString

	err := row.Scan(
		&log.ID,
		&log.Date,
		&log.ProjectID,
		&log.TeamID,
		&personnelJSON,
		&trackingJSON,
		&log.HourlyRate,
		&log.Invoiced,
		&log.QuoteSigned,
		&log.SignedQuoteAmount,
		&consumablesJSON,
		&log.Tasks,
		&log.WasteManagement,
		&log.Notes,
		&log.ClientName,
		&log.ClientAddress,
		&log.CreatedAt,
		&log.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if personnelJSON.Valid && personnelJSON.String != "" {
		if err := json.Unmarshal([]byte(personnelJSON.String), &log.Personnel); err != nil {
			return nil, fmt.Errorf("parse personnel json: %w", err)
		}
	}
	if trackingJSON.Valid && trackingJSON.String != "" {
		if err := json.Unmarshal([]byte(trackingJSON.String), &log.TimeTracking); err != nil {
			return nil, fmt.Errorf("parse time tracking json: %w", err)
		}
	}
	if consumablesJSON.Valid && consumablesJSON.String != "" {
		if err := json.Unmarshal([]byte(consumablesJSON.String), &log.Consumables); err != nil {
			return nil, fmt.Errorf("parse consumables json: %w", err)
		}
	}

	return log, nil
}

func marshalWorkLogJSON(log storage.WorkLog) (personnel, tracking, consumables []byte, err error) {
	personnel, err = json.Marshal(log.Personnel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal personnel: %w", err)
	}
	tracking, err = json.Marshal(log.TimeTracking)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal time tracking: %w", err)
	}
	consumables, err = json.Marshal(log.Consumables)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal consumables: %w", err)
	}
	return personnel, tracking, consumables, nil
}
