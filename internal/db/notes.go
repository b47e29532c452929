package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dori/zendo/internal/model"
)

// ErrEmptyNote is returned when a note would have no content
var ErrEmptyNote = errors.New("note content is empty")

// GetNotes returns all notes, newest first
func (db *DB) GetNotes(ctx context.Context) ([]model.Note, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, content, created_at, updated_at
		FROM notes
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		n, err := scanNoteRow(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}

	return notes, rows.Err()
}

// GetNote returns a single note by ID
func (db *DB) GetNote(ctx context.Context, id string) (*model.Note, error) {
	row := db.QueryRowContext(ctx, db.rebind(`
		SELECT id, content, created_at, updated_at
		FROM notes WHERE id = ?
	`), id)

	n, err := scanNoteRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return n, err
}

// CreateNote stores a new note
func (db *DB) CreateNote(ctx context.Context, content string) (*model.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyNote
	}

	now := time.Now()
	n := &model.Note{
		ID:        uuid.New().String(),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := db.ExecContext(ctx, db.rebind(`
		INSERT INTO notes (id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`), n.ID, n.Content, formatTime(now), formatTime(now))
	if err != nil {
		return nil, err
	}

	return n, nil
}

// UpdateNote replaces the content of a note. It returns nil when the note
// does not exist.
func (db *DB) UpdateNote(ctx context.Context, id, content string) (*model.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyNote
	}

	res, err := db.ExecContext(ctx, db.rebind(`
		UPDATE notes SET content = ?, updated_at = ? WHERE id = ?
	`), content, formatTime(time.Now()), id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}

	return db.GetNote(ctx, id)
}

// DeleteNote deletes a note and reports whether it existed
func (db *DB) DeleteNote(ctx context.Context, id string) (bool, error) {
	res, err := db.ExecContext(ctx, db.rebind(`DELETE FROM notes WHERE id = ?`), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func scanNoteRow(s scanner) (*model.Note, error) {
	var n model.Note
	var createdAt, updatedAt string

	if err := s.Scan(&n.ID, &n.Content, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if n.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if n.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &n, nil
}
