package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/excusedex/internal/constants"
	"github.com/julianstephens/excusedex/internal/models"
	"github.com/julianstephens/excusedex/internal/storage"
)

const excuseColumns = "id, date, task, reason, category, score"

func scanExcuse(row interface{ Scan(...any) error }) (models.Excuse, error) {
	var e models.Excuse
	var category string
	if err := row.Scan(&e.ID, &e.Date, &e.Task, &e.Reason, &category, &e.Score); err != nil {
		return models.Excuse{}, err
	}
	e.Category = constants.Category(category)
	return e, nil
}

func (s *Store) AddExcuse(e models.Excuse) (int64, error) {
	// lib/pq does not support LastInsertId
	var id int64
	err := s.db.QueryRow(
		"INSERT INTO excuses (date, task, reason, category, score) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		e.Date, e.Task, e.Reason, string(e.Category), e.Score,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert excuse: %w", err)
	}
	return id, nil
}

func (s *Store) GetExcuse(id int64) (models.Excuse, error) {
	e, err := scanExcuse(s.db.QueryRow("SELECT "+excuseColumns+" FROM excuses WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Excuse{}, fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
	}
	return e, err
}

func (s *Store) GetAllExcuses() ([]models.Excuse, error) {
	return s.queryExcuses("SELECT " + excuseColumns + " FROM excuses ORDER BY date DESC, id DESC")
}

func (s *Store) GetExcusesByDate(date string) ([]models.Excuse, error) {
	return s.queryExcuses("SELECT "+excuseColumns+" FROM excuses WHERE date = $1 ORDER BY id DESC", date)
}

func (s *Store) queryExcuses(query string, args ...any) ([]models.Excuse, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var excuses []models.Excuse
	for rows.Next() {
		e, err := scanExcuse(rows)
		if err != nil {
			return nil, err
		}
		excuses = append(excuses, e)
	}
	return excuses, rows.Err()
}

func (s *Store) UpdateExcuse(e models.Excuse) error {
	res, err := s.db.Exec(
		"UPDATE excuses SET date = $1, task = $2, reason = $3, category = $4, score = $5 WHERE id = $6",
		e.Date, e.Task, e.Reason, string(e.Category), e.Score, e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update excuse: %w", err)
	}
	return requireAffected(res, e.ID)
}

func (s *Store) DeleteExcuse(id int64) error {
	res, err := s.db.Exec("DELETE FROM excuses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete excuse: %w", err)
	}
	return requireAffected(res, id)
}

func (s *Store) DeleteAllExcuses() (int64, error) {
	res, err := s.db.Exec("DELETE FROM excuses")
	if err != nil {
		return 0, fmt.Errorf("failed to delete excuses: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) CountExcuses() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM excuses").Scan(&count)
	return count, err
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
	}
	return nil
}
