package cache

import (
	"context"
	"database/sql"
	"encoding/json"

	"taskkeep/internal/service"
	"taskkeep/internal/taskerr"
)

// membershipKey is the keyval entry holding the task-to-list map.
const membershipKey = "task_list_membership"

// GetAllTaskLists returns every cached task list.
func (s *Store) GetAllTaskLists(ctx context.Context) ([]service.TaskList, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, updated FROM task_lists`)
	if err != nil {
		return nil, taskerr.Storage(err)
	}
	defer rows.Close()

	var lists []service.TaskList
	for rows.Next() {
		var l service.TaskList
		if err := rows.Scan(&l.ID, &l.Title, &l.Updated); err != nil {
			return nil, taskerr.Storage(err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, taskerr.Storage(err)
	}
	return lists, nil
}

// PutTaskLists upserts each list by id, overwriting existing rows in full.
func (s *Store) PutTaskLists(ctx context.Context, lists []service.TaskList) error {
	err := s.transaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO task_lists (id, title, updated)
			VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				updated = excluded.updated
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, l := range lists {
			if _, err := stmt.ExecContext(ctx, l.ID, l.Title, l.Updated); err != nil {
				return err
			}
		}
		return nil
	})
	return taskerr.Storage(err)
}

// GetMembership returns the task-to-list membership map, or nil if none
// has been stored yet.
func (s *Store) GetMembership(ctx context.Context) (map[string]string, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM keyval WHERE key = ?`, membershipKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, taskerr.Storage(err)
	}

	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, taskerr.Storage(err)
	}
	return m, nil
}

// PutMembership replaces the entire membership map as a single value.
func (s *Store) PutMembership(ctx context.Context, m map[string]string) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return taskerr.Storage(err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO keyval (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, membershipKey, string(raw))
	return taskerr.Storage(err)
}
