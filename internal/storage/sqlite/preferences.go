package sqlite

import (
	"github.com/julianstephens/excusedex/internal/models"
)

func (s *Store) GetPreferences() (models.Preferences, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Preferences{}, err
	}
	defer rows.Close()

	data := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Preferences{}, err
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Preferences{}, err
	}

	return models.MapToPreferences(data)
}

func (s *Store) SavePreferences(prefs models.Preferences) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range models.PreferencesToMap(prefs) {
		if _, err := stmt.Exec(key, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}
