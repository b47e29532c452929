package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dori/zendo/internal/calendar"
	"github.com/dori/zendo/internal/model"
)

// timeLayout is RFC 3339 with fixed-width fractional seconds, so stored
// timestamps sort lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const taskColumns = `id, text, why, completed, created_at, completed_at, mood, category,
	date, due_date, priority, project, label, recurring, is_overdue`

// LoadTasks returns the whole task collection in stored order. A row that
// cannot be decoded fails the whole load.
func (db *DB) LoadTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	return tasks, nil
}

// SaveTasks replaces the stored collection with tasks in one transaction
func (db *DB) SaveTasks(ctx context.Context, tasks []model.Task) error {
	insert := db.rebind(`INSERT INTO tasks (position, ` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	return db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
			return fmt.Errorf("failed to clear tasks: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, insert)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for i, t := range tasks {
			_, err := stmt.ExecContext(ctx,
				i, t.ID, t.Text, t.Why, t.Completed,
				formatTime(t.CreatedAt), formatTime(t.CompletedAt), t.Mood, t.Category,
				t.Date.String(), t.DueDate.String(), t.Priority, t.Project, t.Label,
				t.Recurring, t.IsOverdue,
			)
			if err != nil {
				return fmt.Errorf("failed to save task %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(s scanner) (*model.Task, error) {
	var t model.Task
	var createdAt, completedAt, date, dueDate string

	err := s.Scan(
		&t.ID, &t.Text, &t.Why, &t.Completed, &createdAt, &completedAt,
		&t.Mood, &t.Category, &date, &dueDate, &t.Priority, &t.Project,
		&t.Label, &t.Recurring, &t.IsOverdue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}

	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("task %s: created_at: %w", t.ID, err)
	}
	if t.CompletedAt, err = parseTime(completedAt); err != nil {
		return nil, fmt.Errorf("task %s: completed_at: %w", t.ID, err)
	}
	if t.Date, err = calendar.Parse(date); err != nil {
		return nil, fmt.Errorf("task %s: date: %w", t.ID, err)
	}
	if t.DueDate, err = calendar.Parse(dueDate); err != nil {
		return nil, fmt.Errorf("task %s: due_date: %w", t.ID, err)
	}
	if err := validateTask(&t); err != nil {
		return nil, fmt.Errorf("task %s: %w", t.ID, err)
	}

	return &t, nil
}

func validateTask(t *model.Task) error {
	p := model.Patch{
		Mood:      &t.Mood,
		Category:  &t.Category,
		Priority:  &t.Priority,
		Project:   &t.Project,
		Label:     &t.Label,
		Recurring: &t.Recurring,
	}
	return p.Validate()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}
