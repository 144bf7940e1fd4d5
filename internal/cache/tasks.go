package cache

import (
	"context"
	"database/sql"

	"taskkeep/internal/service"
	"taskkeep/internal/taskerr"
)

// GetAllTasks returns every cached task. No ordering guarantee.
func (s *Store) GetAllTasks(ctx context.Context) ([]service.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, notes, status, due, updated, completed, parent, position
		FROM tasks
	`)
	if err != nil {
		return nil, taskerr.Storage(err)
	}
	defer rows.Close()

	var tasks []service.Task
	for rows.Next() {
		var t service.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Notes, &t.Status, &t.Due,
			&t.Updated, &t.Completed, &t.Parent, &t.Position); err != nil {
			return nil, taskerr.Storage(err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, taskerr.Storage(err)
	}
	return tasks, nil
}

// PutTasks upserts each task by id, overwriting existing rows in full.
func (s *Store) PutTasks(ctx context.Context, tasks []service.Task) error {
	err := s.transaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO tasks (id, title, notes, status, due, updated, completed, parent, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				notes = excluded.notes,
				status = excluded.status,
				due = excluded.due,
				updated = excluded.updated,
				completed = excluded.completed,
				parent = excluded.parent,
				position = excluded.position
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, t := range tasks {
			if _, err := stmt.ExecContext(ctx, t.ID, t.Title, t.Notes, t.Status,
				t.Due, t.Updated, t.Completed, t.Parent, t.Position); err != nil {
				return err
			}
		}
		return nil
	})
	return taskerr.Storage(err)
}

// DeleteTask removes a single task by id. Deleting a missing id is not
// an error.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	return taskerr.Storage(err)
}
