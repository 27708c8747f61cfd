package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"paysage-backend/internal/storage"
)

func (s *Storage) GetTeams(ctx context.Context) ([]storage.Team, error) {
	const op = "storage.mysql.GetTeams"

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, color FROM teams ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var teams []storage.Team
	for rows.Next() {
		var t storage.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		teams = append(teams, t)
	}

	return teams, rows.Err()
}

func (s *Storage) SaveTeam(ctx context.Context, t storage.Team) error {
	const op = "storage.mysql.SaveTeam"

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO teams (id, name, color) VALUES (?, ?, ?)`,
		t.ID, t.Name, t.Color)
	if err != nil {
		return fmt.Errorf("%s: insert team %q: %w", op, t.Name, err)
	}

	return nil
}

func (s *Storage) UpdateTeam(ctx context.Context, t storage.Team) error {
	const op = "storage.mysql.UpdateTeam"

	res, err := s.db.ExecContext(ctx,
		`UPDATE teams SET name = ?, color = ? WHERE id = ?`,
		t.Name, t.Color, t.ID)
	if err != nil {
		return fmt.Errorf("%s: update team id=%s: %w", op, t.ID, err)
	}

	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("%s: team id=%s not found: %w", op, t.ID, sql.ErrNoRows)
	}

	return nil
}
