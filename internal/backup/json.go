package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/julianstephens/excusedex/internal/logger"
	"github.com/julianstephens/excusedex/internal/models"
	"github.com/julianstephens/excusedex/internal/storage"
)

// ErrMalformedBackup is returned when a JSON backup cannot be decoded.
var ErrMalformedBackup = errors.New("malformed backup file")

// Export writes excuses as an indented JSON array.
func Export(w io.Writer, excuses []models.Excuse) error {
	if excuses == nil {
		excuses = []models.Excuse{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(excuses); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// Import decodes and validates a JSON backup. Nothing is returned unless every
// record is valid.
func Import(r io.Reader) ([]models.Excuse, error) {
	var excuses []models.Excuse
	dec := json.NewDecoder(r)
	if err := dec.Decode(&excuses); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after array", ErrMalformedBackup)
	}

	for i, e := range excuses {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformedBackup, i+1, err)
		}
	}
	return excuses, nil
}

// Restore inserts every excuse as a new record and returns how many were added.
// Store-assigned ids replace those from the file.
func Restore(store storage.Provider, excuses []models.Excuse) (int, error) {
	added := 0
	for _, e := range excuses {
		e.ID = 0
		if _, err := store.AddExcuse(e); err != nil {
			return added, fmt.Errorf("failed to restore record %d of %d: %w", added+1, len(excuses), err)
		}
		added++
	}
	logger.Info("backup restored", "records", added)
	return added, nil
}
